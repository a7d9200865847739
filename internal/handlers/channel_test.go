package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetChannelProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		mockSvc := NewMockChannelProfiler(ctrl)
		mockSvc.EXPECT().GetChannelProfile(gomock.Any(), testUser.UserID, "bob").Return(&models.ChannelProfile{
			User:              models.User{Username: "bob"},
			SubscribersCount:  2,
			SubscribedToCount: 1,
			IsSubscribed:      true,
		}, nil)

		req := authenticated(withURLParam(httptest.NewRequest(http.MethodGet, "/c/bob", nil), "username", "bob"))
		rr := httptest.NewRecorder()
		NewGetChannelProfileHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var profile map[string]any
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &profile))
		assert.Equal(t, "bob", profile["username"])
		assert.Equal(t, float64(2), profile["subscribersCount"])
		assert.Equal(t, true, profile["isSubscribed"])
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := NewMockChannelProfiler(ctrl)
		mockSvc.EXPECT().GetChannelProfile(gomock.Any(), testUser.UserID, "ghost").
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "channel does not exist"))

		req := authenticated(withURLParam(httptest.NewRequest(http.MethodGet, "/c/ghost", nil), "username", "ghost"))
		rr := httptest.NewRecorder()
		NewGetChannelProfileHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "channel does not exist", decodeEnvelope(t, rr).Message)
	})
}

func TestSubscribeHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSubscriber(ctrl)
	mockSvc.EXPECT().Subscribe(gomock.Any(), testUser.UserID, "bob").Return(nil)
	mockSvc.EXPECT().Subscribe(gomock.Any(), testUser.UserID, "alice").
		Return(apperrors.Wrap(apperrors.ErrValidation, "cannot subscribe to your own channel"))
	mockSvc.EXPECT().Unsubscribe(gomock.Any(), testUser.UserID, "bob").Return(nil)

	rr := httptest.NewRecorder()
	NewSubscribeHandler(mockSvc)(rr, authenticated(withURLParam(httptest.NewRequest(http.MethodPost, "/c/bob/subscribe", nil), "username", "bob")))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	NewSubscribeHandler(mockSvc)(rr, authenticated(withURLParam(httptest.NewRequest(http.MethodPost, "/c/alice/subscribe", nil), "username", "alice")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	NewUnsubscribeHandler(mockSvc)(rr, authenticated(withURLParam(httptest.NewRequest(http.MethodDelete, "/c/bob/subscribe", nil), "username", "bob")))
	assert.Equal(t, http.StatusOK, rr.Code)
}
