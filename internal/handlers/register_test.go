package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fields := map[string]string{
		"fullname": "Alice",
		"email":    "alice@x.com",
		"username": "alice",
		"password": "p1",
	}

	tests := []struct {
		name         string
		files        map[string]string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedKind string
	}{
		{
			name:  "success",
			files: map[string]string{"avatar": "a.png", "coverImage": "c.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, in services.RegisterInput) (*models.User, error) {
						assert.Equal(t, "Alice", in.Fullname)
						assert.Equal(t, "alice@x.com", in.Email)
						assert.Equal(t, "alice", in.Username)
						assert.Equal(t, "p1", in.Password)
						require.NotNil(t, in.Avatar)
						require.NotNil(t, in.CoverImage)
						assert.Equal(t, "a.png", in.Avatar.Filename)
						body, err := io.ReadAll(in.Avatar.Content)
						require.NoError(t, err)
						assert.Equal(t, "image-bytes", string(body))
						return testUser, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:  "without cover image",
			files: map[string]string{"avatar": "a.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, in services.RegisterInput) (*models.User, error) {
						assert.Nil(t, in.CoverImage)
						return testUser, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:  "user already exists",
			files: map[string]string{"avatar": "a.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrConflict)
			},
			expectedCode: http.StatusConflict,
			expectedKind: "Conflict",
		},
		{
			name:  "missing avatar",
			files: nil,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, apperrors.Wrap(apperrors.ErrValidation, "avatar file is required"))
			},
			expectedCode: http.StatusBadRequest,
			expectedKind: "ValidationError",
		},
		{
			name:  "internal server error",
			files: map[string]string{"avatar": "a.png"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedKind: "InternalError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewRegisterHandler(mockSvc, 1<<20)
			rr := httptest.NewRecorder()
			handler(rr, multipartRequest(t, http.MethodPost, "/register", fields, tt.files))

			assert.Equal(t, tt.expectedCode, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.expectedCode, env.StatusCode)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, env.Error)
				assert.False(t, env.Success)
				return
			}
			assert.True(t, env.Success)
			assert.NotContains(t, string(env.Data), "password")
			assert.NotContains(t, string(env.Data), "refresh")
		})
	}
}

func TestRegisterHandler_InvalidForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewRegisterHandler(NewMockRegisterer(ctrl), 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ValidationError", decodeEnvelope(t, rr).Error)
}

func TestRegisterHandler_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewRegisterHandler(NewMockRegisterer(ctrl), 16)

	rr := httptest.NewRecorder()
	handler(rr, multipartRequest(t, http.MethodPost, "/register",
		map[string]string{"fullname": "Alice"}, map[string]string{"avatar": "a.png"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
