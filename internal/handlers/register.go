package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/services"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

// UserResponse wraps a sanitized user in the response envelope.
// swagger:model UserResponse
type UserResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Data       models.User `json:"data"`
	Message    string      `json:"message" example:"User fetched successfully"`
	Success    bool        `json:"success" example:"true"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new account from a multipart form. The avatar is required, the cover image optional.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param fullname formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} handlers.UserResponse "User registered successfully"
// @Failure 400 {object} models.APIError "Missing field or avatar, upload failure"
// @Failure 409 {object} models.APIError "Username or email already exists"
// @Failure 500 {object} models.APIError "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, maxUploadBytes); err != nil {
			writeError(w, r, err)
			return
		}
		defer removeMultipart(r)

		avatar, closeAvatar, err := formFile(r, "avatar")
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer closeAvatar()

		cover, closeCover, err := formFile(r, "coverImage")
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer closeCover()

		user, err := svc.Register(r.Context(), services.RegisterInput{
			Fullname:   r.FormValue("fullname"),
			Email:      r.FormValue("email"),
			Username:   r.FormValue("username"),
			Password:   r.FormValue("password"),
			Avatar:     avatar,
			CoverImage: cover,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, user, "User registered successfully")
	}
}
