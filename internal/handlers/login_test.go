package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	session := &models.Session{
		User:      testUser,
		TokenPair: models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}

	tests := []struct {
		name         string
		body         LoginRequest
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedKind string
	}{
		{
			name: "success by username",
			body: LoginRequest{Username: "alice", Password: "p1"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "alice", "p1").Return(session, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "success by email",
			body: LoginRequest{Email: "alice@x.com", Password: "p1"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "alice@x.com", "p1").Return(session, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: LoginRequest{Username: "alice", Password: "bad"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "alice", "bad").Return(nil, apperrors.ErrInvalidCredential)
			},
			expectedCode: http.StatusUnauthorized,
			expectedKind: "InvalidCredential",
		},
		{
			name: "user does not exist",
			body: LoginRequest{Username: "ghost", Password: "p1"},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "ghost", "p1").Return(nil, apperrors.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedKind: "NotFound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			tt.mockSetup(mockSvc)

			rr := httptest.NewRecorder()
			NewLoginHandler(mockSvc)(rr, jsonRequest(t, http.MethodPost, "/login", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)
			env := decodeEnvelope(t, rr)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, env.Error)
				assert.Empty(t, rr.Result().Cookies())
				return
			}

			var data LoginData
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, "access", data.AccessToken)
			assert.Equal(t, "refresh", data.RefreshToken)
			assert.Equal(t, "alice", data.User.Username)

			cookies := map[string]*http.Cookie{}
			for _, c := range rr.Result().Cookies() {
				cookies[c.Name] = c
			}
			require.Contains(t, cookies, AccessTokenCookie)
			require.Contains(t, cookies, RefreshTokenCookie)
			assert.Equal(t, "access", cookies[AccessTokenCookie].Value)
			assert.Equal(t, "refresh", cookies[RefreshTokenCookie].Value)
			for _, c := range cookies {
				assert.True(t, c.HttpOnly)
				assert.True(t, c.Secure)
				assert.Equal(t, "/", c.Path)
			}
		})
	}
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{invalid json}"))
	rr := httptest.NewRecorder()
	NewLoginHandler(NewMockLoginer(ctrl))(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ValidationError", decodeEnvelope(t, rr).Error)
}
