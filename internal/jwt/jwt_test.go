package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt, 2*time.Second)
}

func TestJWT_GenerateIsUnique(t *testing.T) {
	j := New(WithSecretKey("test-secret"))
	userID := uuid.New()
	ctx := context.Background()

	first, err := j.Generate(ctx, userID)
	require.NoError(t, err)
	second, err := j.Generate(ctx, userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute)) // already expired

	ctx := context.Background()
	token, err := j.Generate(ctx, uuid.New())
	require.NoError(t, err)

	assert.ErrorIs(t, j.Validate(ctx, token), ErrTokenExpired)

	claims, err := j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	for _, token := range []string{"invalid.token.string", "", "abc"} {
		claims, err := j.GetClaims(ctx, token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.Nil(t, claims)
	}
}

func TestJWT_Validate_WrongSecret(t *testing.T) {
	j1 := New(WithSecretKey("secret1"))
	j2 := New(WithSecretKey("secret2"))
	ctx := context.Background()

	token, err := j1.Generate(ctx, uuid.New())
	require.NoError(t, err)

	assert.ErrorIs(t, j2.Validate(ctx, token), ErrTokenInvalid)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithCookieName("accessToken"))
	ctx := context.Background()

	tests := []struct {
		name          string
		cookie        string
		header        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "", "Bearer mytoken123", "mytoken123", false},
		{"LowercaseBearer", "", "bearer mytoken123", "mytoken123", false},
		{"CookieOnly", "cookietoken", "", "cookietoken", false},
		{"CookiePreferred", "cookietoken", "Bearer headertoken", "cookietoken", false},
		{"NoHeader", "", "", "", true},
		{"InvalidFormat", "", "Token mytoken123", "", true},
		{"TooManyParts", "", "Bearer a b c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "accessToken", Value: tt.cookie})
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}

func TestJWT_GetTokenFromRequest_NoCookieConfigured(t *testing.T) {
	j := New()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "ignored"})

	token, err := j.GetTokenFromRequest(context.Background(), req)
	assert.ErrorIs(t, err, ErrTokenMissing)
	assert.Empty(t, token)
}
