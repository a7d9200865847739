package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsKind(t *testing.T) {
	err := Wrap(ErrValidation, "all fields are required")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "ValidationError: all fields are required", err.Error())
}

func TestWithCause_Unwraps(t *testing.T) {
	cause := errors.New("put object: timeout")
	err := WithCause(ErrUpload, cause)

	assert.True(t, errors.Is(err, ErrUpload))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "timeout")
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   string
		wantStatus int
	}{
		{"classified", ErrTokenStale, "TokenStale", http.StatusUnauthorized},
		{"wrapped with fmt", fmt.Errorf("refresh: %w", ErrTokenExpired), "TokenExpired", http.StatusUnauthorized},
		{"plain error", errors.New("boom"), "InternalError", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "classified",
			err:        Wrap(ErrUnauthorized, "invalid access token"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"statusCode":401,"error":"Unauthorized","message":"invalid access token","success":false}`,
		},
		{
			name:       "unclassified cause is hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"statusCode":500,"error":"InternalError","message":"internal server error","success":false}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			appErr := Write(rr, tt.err)

			assert.Equal(t, tt.wantStatus, appErr.Status)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
