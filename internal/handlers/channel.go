package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=channel.go -destination=channel_mock.go -package=handlers

// ChannelProfiler returns a channel with its subscription counters.
type ChannelProfiler interface {
	GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error)
}

// Subscriber manages the subscriptions of a user.
type Subscriber interface {
	Subscribe(ctx context.Context, subscriberID uuid.UUID, username string) error
	Unsubscribe(ctx context.Context, subscriberID uuid.UUID, username string) error
}

// NewGetChannelProfileHandler returns an HTTP handler for a channel profile.
// @Summary Get channel profile
// @Tags channel
// @Produce json
// @Security BearerAuth
// @Param username path string true "Channel username"
// @Success 200 {object} models.APIResponse{data=models.ChannelProfile} "Channel profile"
// @Failure 401 {object} models.APIError "Unauthorized"
// @Failure 404 {object} models.APIError "Channel does not exist"
// @Router /c/{username} [get]
func NewGetChannelProfileHandler(svc ChannelProfiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		profile, err := svc.GetChannelProfile(r.Context(), user.UserID, chi.URLParam(r, "username"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, profile, "Channel fetched successfully")
	}
}

// NewSubscribeHandler returns an HTTP handler that subscribes the current user to a channel.
// @Summary Subscribe to a channel
// @Tags channel
// @Produce json
// @Security BearerAuth
// @Param username path string true "Channel username"
// @Success 200 {object} models.APIResponse "Subscribed"
// @Failure 400 {object} models.APIError "Cannot subscribe to your own channel"
// @Failure 404 {object} models.APIError "Channel does not exist"
// @Router /c/{username}/subscribe [post]
func NewSubscribeHandler(svc Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		if err := svc.Subscribe(r.Context(), user.UserID, chi.URLParam(r, "username")); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, struct{}{}, "Subscribed successfully")
	}
}

// NewUnsubscribeHandler returns an HTTP handler that removes a subscription.
// @Summary Unsubscribe from a channel
// @Tags channel
// @Produce json
// @Security BearerAuth
// @Param username path string true "Channel username"
// @Success 200 {object} models.APIResponse "Unsubscribed"
// @Failure 404 {object} models.APIError "Channel does not exist"
// @Router /c/{username}/subscribe [delete]
func NewUnsubscribeHandler(svc Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, r, apperrors.ErrUnauthorized)
			return
		}

		if err := svc.Unsubscribe(r.Context(), user.UserID, chi.URLParam(r, "username")); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, struct{}{}, "Unsubscribed successfully")
	}
}
