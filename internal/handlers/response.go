package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// writeJSON renders a successful response envelope.
func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// writeError renders err as an error envelope. Unclassified errors become
// InternalError and their cause is logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr := apperrors.Write(w, err); appErr.Status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
	}
}

// decodeJSON decodes the request body into v, rejecting malformed input.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, "invalid request body")
	}
	return nil
}
