package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=current_user.go -destination=current_user_mock.go -package=handlers

// CurrentUserGetter loads the profile of the authenticated user.
type CurrentUserGetter interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// NewGetCurrentUserHandler returns the profile of the user admitted by the auth middleware.
// @Summary Get current user
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserResponse "Current user"
// @Failure 401 {object} models.APIError "Unauthorized"
// @Failure 500 {object} models.APIError "Internal server error"
// @Router /getUser [post]
func NewGetCurrentUserHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := middlewares.UserFromContext(r.Context())
		if current == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		user, err := svc.GetCurrentUser(r.Context(), current.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user, "User fetched successfully")
	}
}
