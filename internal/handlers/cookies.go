package handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// Cookie names carrying the session tokens.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

func authCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func setAuthCookies(w http.ResponseWriter, pair models.TokenPair) {
	http.SetCookie(w, authCookie(AccessTokenCookie, pair.AccessToken))
	http.SetCookie(w, authCookie(RefreshTokenCookie, pair.RefreshToken))
}

func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := authCookie(name, "")
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}
