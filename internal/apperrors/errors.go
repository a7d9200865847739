// Package apperrors holds the error taxonomy shared by services, middlewares
// and handlers. Each kind carries the HTTP status it is rendered with.
package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// Error is a classified application error.
type Error struct {
	Kind    string // Stable machine-readable kind, e.g. "Conflict"
	Status  int    // HTTP status code
	Message string // Human-readable message
	err     error  // Optional cause
}

// Error variables
var (
	ErrValidation        = &Error{Kind: "ValidationError", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrConflict          = &Error{Kind: "Conflict", Status: http.StatusConflict, Message: "username or email already exists"}
	ErrNotFound          = &Error{Kind: "NotFound", Status: http.StatusNotFound, Message: "user does not exist"}
	ErrInvalidCredential = &Error{Kind: "InvalidCredential", Status: http.StatusUnauthorized, Message: "invalid username or password"}
	ErrUnauthorized      = &Error{Kind: "Unauthorized", Status: http.StatusUnauthorized, Message: "unauthorized request"}
	ErrTokenInvalid      = &Error{Kind: "TokenInvalid", Status: http.StatusUnauthorized, Message: "refresh token is invalid"}
	ErrTokenExpired      = &Error{Kind: "TokenExpired", Status: http.StatusUnauthorized, Message: "refresh token is expired"}
	ErrTokenStale        = &Error{Kind: "TokenStale", Status: http.StatusUnauthorized, Message: "refresh token is expired or used"}
	ErrUpload            = &Error{Kind: "UploadError", Status: http.StatusBadRequest, Message: "file upload failed"}
	ErrInternal          = &Error{Kind: "InternalError", Status: http.StatusInternalServerError, Message: "internal server error"}
)

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Is matches any error of the same kind, so a wrapped copy still satisfies
// errors.Is(err, ErrConflict).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Wrap returns a copy of kind with a specific message.
func Wrap(kind *Error, message string) *Error {
	return &Error{Kind: kind.Kind, Status: kind.Status, Message: message}
}

// WithCause returns a copy of kind carrying cause. The message stays generic.
func WithCause(kind *Error, cause error) *Error {
	return &Error{Kind: kind.Kind, Status: kind.Status, Message: kind.Message, err: cause}
}

// From classifies err. Unclassified errors become ErrInternal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return WithCause(ErrInternal, err)
}

// Write renders err as the JSON error envelope and returns its classification.
func Write(w http.ResponseWriter, err error) *Error {
	appErr := From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(models.APIError{
		StatusCode: appErr.Status,
		Error:      appErr.Kind,
		Message:    appErr.Message,
		Success:    false,
	})
	return appErr
}
