package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelService_Subscribe(t *testing.T) {
	subscriberID := uuid.New()
	channelID := uuid.New()

	tests := []struct {
		name     string
		username string
		setup    func(r *services.MockChannelReader, s *services.MockSubscriptionStore)
		wantErr  error
	}{
		{
			name:     "success",
			username: "Bob",
			setup: func(r *services.MockChannelReader, s *services.MockSubscriptionStore) {
				r.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{UserID: channelID, Username: "bob"}, nil)
				s.EXPECT().Save(gomock.Any(), subscriberID, channelID).Return(nil)
			},
		},
		{
			name:     "empty username",
			username: " ",
			setup:    func(*services.MockChannelReader, *services.MockSubscriptionStore) {},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "unknown channel",
			username: "ghost",
			setup: func(r *services.MockChannelReader, _ *services.MockSubscriptionStore) {
				r.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: apperrors.ErrNotFound,
		},
		{
			name:     "own channel",
			username: "me",
			setup: func(r *services.MockChannelReader, _ *services.MockSubscriptionStore) {
				r.EXPECT().GetByUsername(gomock.Any(), "me").Return(&models.UserDB{UserID: subscriberID}, nil)
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:     "store failure",
			username: "bob",
			setup: func(r *services.MockChannelReader, s *services.MockSubscriptionStore) {
				r.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{UserID: channelID}, nil)
				s.EXPECT().Save(gomock.Any(), subscriberID, channelID).Return(apperrors.ErrInternal)
			},
			wantErr: apperrors.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockChannelReader(ctrl)
			store := services.NewMockSubscriptionStore(ctrl)
			tt.setup(reader, store)

			svc := services.NewChannelService(reader, store)
			err := svc.Subscribe(context.Background(), subscriberID, tt.username)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestChannelService_Unsubscribe(t *testing.T) {
	subscriberID := uuid.New()
	channelID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockChannelReader(ctrl)
	store := services.NewMockSubscriptionStore(ctrl)

	reader.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{UserID: channelID}, nil)
	store.EXPECT().Delete(gomock.Any(), subscriberID, channelID).Return(nil)

	svc := services.NewChannelService(reader, store)
	assert.NoError(t, svc.Unsubscribe(context.Background(), subscriberID, "bob"))

	reader.EXPECT().GetByUsername(gomock.Any(), "bob").Return(nil, errors.New("db down"))
	assert.Error(t, svc.Unsubscribe(context.Background(), subscriberID, "bob"))
}

func TestChannelService_GetChannelProfile(t *testing.T) {
	viewerID := uuid.New()
	channelID := uuid.New()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := services.NewMockChannelReader(ctrl)
		store := services.NewMockSubscriptionStore(ctrl)

		reader.EXPECT().GetByUsername(gomock.Any(), "bob").
			Return(&models.UserDB{UserID: channelID, Username: "bob", PasswordHash: "hash"}, nil)
		store.EXPECT().CountSubscribers(gomock.Any(), channelID).Return(int64(3), nil)
		store.EXPECT().CountSubscribedTo(gomock.Any(), channelID).Return(int64(1), nil)
		store.EXPECT().Exists(gomock.Any(), viewerID, channelID).Return(true, nil)

		svc := services.NewChannelService(reader, store)
		profile, err := svc.GetChannelProfile(context.Background(), viewerID, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", profile.Username)
		assert.Equal(t, int64(3), profile.SubscribersCount)
		assert.Equal(t, int64(1), profile.SubscribedToCount)
		assert.True(t, profile.IsSubscribed)
	})

	t.Run("count failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := services.NewMockChannelReader(ctrl)
		store := services.NewMockSubscriptionStore(ctrl)

		reader.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{UserID: channelID}, nil)
		store.EXPECT().CountSubscribers(gomock.Any(), channelID).Return(int64(0), errors.New("db down"))

		svc := services.NewChannelService(reader, store)
		_, err := svc.GetChannelProfile(context.Background(), viewerID, "bob")
		assert.Error(t, err)
	})
}
