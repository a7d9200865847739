package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=media.go -destination=media_mock.go -package=handlers

// AvatarUpdater replaces the avatar of a user.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file *models.MediaFile) (*models.User, error)
}

// CoverImageUpdater replaces the cover image of a user.
type CoverImageUpdater interface {
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *models.MediaFile) (*models.User, error)
}

type mediaUpdateFunc func(ctx context.Context, userID uuid.UUID, file *models.MediaFile) (*models.User, error)

// NewUpdateAvatarHandler returns an HTTP handler that replaces the avatar.
// @Summary Update avatar
// @Tags account
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} handlers.UserResponse "Avatar updated"
// @Failure 400 {object} models.APIError "Missing file or upload failure"
// @Failure 401 {object} models.APIError "Unauthorized"
// @Router /avatar [patch]
func NewUpdateAvatarHandler(svc AvatarUpdater, maxUploadBytes int64) http.HandlerFunc {
	return mediaUpdateHandler("avatar", "Avatar updated successfully", svc.UpdateAvatar, maxUploadBytes)
}

// NewUpdateCoverImageHandler returns an HTTP handler that replaces the cover image.
// @Summary Update cover image
// @Tags account
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} handlers.UserResponse "Cover image updated"
// @Failure 400 {object} models.APIError "Missing file or upload failure"
// @Failure 401 {object} models.APIError "Unauthorized"
// @Router /cover-image [patch]
func NewUpdateCoverImageHandler(svc CoverImageUpdater, maxUploadBytes int64) http.HandlerFunc {
	return mediaUpdateHandler("coverImage", "Cover image updated successfully", svc.UpdateCoverImage, maxUploadBytes)
}

func mediaUpdateHandler(field, message string, update mediaUpdateFunc, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		if err := parseMultipart(w, r, maxUploadBytes); err != nil {
			writeError(w, r, err)
			return
		}
		defer removeMultipart(r)

		file, closeFile, err := formFile(r, field)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer closeFile()

		updated, err := update(r.Context(), user.UserID, file)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, updated, message)
	}
}
