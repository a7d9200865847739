package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=update_account.go -destination=update_account_mock.go -package=handlers

// ProfileUpdater updates the fullname and email of a user.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullname, email string) (*models.User, error)
}

// UpdateAccountRequest represents the JSON body for a profile update.
// swagger:model UpdateAccountRequest
type UpdateAccountRequest struct {
	// Full name
	// required: true
	// default: John Doe
	Fullname string `json:"fullname"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// NewUpdateAccountHandler returns an HTTP handler that updates fullname and email together.
// @Summary Update account details
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateAccountRequest body handlers.UpdateAccountRequest true "New account details"
// @Success 200 {object} handlers.UserResponse "Account details updated"
// @Failure 400 {object} models.APIError "Missing field"
// @Failure 401 {object} models.APIError "Unauthorized"
// @Failure 409 {object} models.APIError "Email already exists"
// @Router /updateAccount [post]
func NewUpdateAccountHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		var req UpdateAccountRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), user.UserID, req.Fullname, req.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, updated, "Account details updated successfully")
	}
}
