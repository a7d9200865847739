package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
)

//go:generate mockgen -source=change_password.go -destination=change_password_mock.go -package=handlers

// PasswordChanger replaces the password of a user.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for a password change.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"oldPassword"`

	// New password
	// required: true
	NewPassword string `json:"newPassword"`
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.APIResponse "Password changed"
// @Failure 400 {object} models.APIError "New password missing or equal to the old one"
// @Failure 401 {object} models.APIError "Invalid old password"
// @Router /change-password [post]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		var req ChangePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.ChangePassword(r.Context(), user.UserID, req.OldPassword, req.NewPassword); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
	}
}
