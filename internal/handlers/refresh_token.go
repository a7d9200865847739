package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=refresh_token.go -destination=refresh_token_mock.go -package=handlers

// TokenRefresher rotates a session's token pair.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// RefreshTokenRequest is the optional JSON body of a refresh call.
// swagger:model RefreshTokenRequest
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPairResponse wraps a token pair in the response envelope.
// swagger:model TokenPairResponse
type TokenPairResponse struct {
	StatusCode int              `json:"statusCode" example:"200"`
	Data       models.TokenPair `json:"data"`
	Message    string           `json:"message" example:"Access token refreshed"`
	Success    bool             `json:"success" example:"true"`
}

// NewRefreshTokenHandler returns an HTTP handler that rotates the token pair.
// The refresh token is read from the refreshToken cookie, then from the body.
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshTokenRequest body handlers.RefreshTokenRequest false "Refresh token, when not sent as a cookie"
// @Success 200 {object} handlers.TokenPairResponse "New token pair"
// @Failure 401 {object} models.APIError "Missing, invalid, expired or already used refresh token"
// @Router /refresh-token [post]
func NewRefreshTokenHandler(svc TokenRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(RefreshTokenCookie); err == nil {
			token = c.Value
		}
		if token == "" && r.ContentLength != 0 {
			var req RefreshTokenRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, r, err)
				return
			}
			token = req.RefreshToken
		}

		pair, err := svc.Refresh(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		setAuthCookies(w, *pair)
		writeJSON(w, http.StatusOK, pair, "Access token refreshed")
	}
}
