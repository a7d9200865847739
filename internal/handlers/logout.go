package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
)

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

// Logouter ends the session of a user.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler that clears the stored refresh token and the session cookies.
// @Summary User logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "User logged out"
// @Failure 401 {object} models.APIError "Unauthorized"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		if err := svc.Logout(r.Context(), user.UserID); err != nil {
			writeError(w, r, err)
			return
		}

		clearAuthCookies(w)
		writeJSON(w, http.StatusOK, struct{}{}, "User logged out")
	}
}
