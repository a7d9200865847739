package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// defaultMaxUploadBytes applies when a handler is built without a limit.
const defaultMaxUploadBytes int64 = 10 << 20

// parseMultipart parses a multipart body capped at maxBytes.
// The caller must call r.MultipartForm.RemoveAll when done.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.Wrap(apperrors.ErrValidation, "file is too large")
		}
		return apperrors.Wrap(apperrors.ErrValidation, "invalid multipart form")
	}
	return nil
}

// formFile returns the named file part as a MediaFile, or nil when absent.
// The returned closer must be called once the file has been consumed.
func formFile(r *http.Request, field string) (*models.MediaFile, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, apperrors.Wrap(apperrors.ErrValidation, "invalid "+field+" file")
	}
	return mediaFromPart(file, header), func() { _ = file.Close() }, nil
}

func mediaFromPart(file multipart.File, header *multipart.FileHeader) *models.MediaFile {
	return &models.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
}

func removeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}
