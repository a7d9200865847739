package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pair := &models.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}

	tests := []struct {
		name         string
		request      func(t *testing.T) *http.Request
		mockSetup    func(m *MockTokenRefresher)
		expectedCode int
		expectedKind string
	}{
		{
			name: "token from cookie",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
				req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "refresh1"})
				return req
			},
			mockSetup: func(m *MockTokenRefresher) {
				m.EXPECT().Refresh(gomock.Any(), "refresh1").Return(pair, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "token from body",
			request: func(t *testing.T) *http.Request {
				return jsonRequest(t, http.MethodPost, "/refresh-token", RefreshTokenRequest{RefreshToken: "refresh1"})
			},
			mockSetup: func(m *MockTokenRefresher) {
				m.EXPECT().Refresh(gomock.Any(), "refresh1").Return(pair, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "no token",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
			},
			mockSetup: func(m *MockTokenRefresher) {
				m.EXPECT().Refresh(gomock.Any(), "").Return(nil, apperrors.Wrap(apperrors.ErrUnauthorized, "refresh token is required"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedKind: "Unauthorized",
		},
		{
			name: "stale token",
			request: func(t *testing.T) *http.Request {
				return jsonRequest(t, http.MethodPost, "/refresh-token", RefreshTokenRequest{RefreshToken: "old"})
			},
			mockSetup: func(m *MockTokenRefresher) {
				m.EXPECT().Refresh(gomock.Any(), "old").Return(nil, apperrors.ErrTokenStale)
			},
			expectedCode: http.StatusUnauthorized,
			expectedKind: "TokenStale",
		},
		{
			name: "expired token",
			request: func(t *testing.T) *http.Request {
				return jsonRequest(t, http.MethodPost, "/refresh-token", RefreshTokenRequest{RefreshToken: "expired"})
			},
			mockSetup: func(m *MockTokenRefresher) {
				m.EXPECT().Refresh(gomock.Any(), "expired").Return(nil, apperrors.ErrTokenExpired)
			},
			expectedCode: http.StatusUnauthorized,
			expectedKind: "TokenExpired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockTokenRefresher(ctrl)
			tt.mockSetup(mockSvc)

			rr := httptest.NewRecorder()
			NewRefreshTokenHandler(mockSvc)(rr, tt.request(t))

			assert.Equal(t, tt.expectedCode, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.expectedKind, env.Error)
			if tt.expectedKind == "" {
				assert.Contains(t, string(env.Data), `"refreshToken":"refresh2"`)
				assert.Len(t, rr.Result().Cookies(), 2)
			}
		})
	}
}
