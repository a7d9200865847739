package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

//go:generate mockgen -source=channel.go -destination=channel_mock.go -package=services

// ChannelReader looks users up by username.
type ChannelReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// SubscriptionStore persists subscriber to channel edges.
type SubscriptionStore interface {
	Save(ctx context.Context, subscriberID, channelID uuid.UUID) error
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error)
}

// ChannelService manages subscriptions between users.
type ChannelService struct {
	reader ChannelReader
	store  SubscriptionStore
}

// NewChannelService creates a new ChannelService.
func NewChannelService(reader ChannelReader, store SubscriptionStore) *ChannelService {
	return &ChannelService{reader: reader, store: store}
}

func (svc *ChannelService) channel(ctx context.Context, username string) (*models.UserDB, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "username is missing")
	}

	channel, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get channel", "username", username, "err", err)
		return nil, err
	}
	if channel == nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "channel does not exist")
	}
	return channel, nil
}

// Subscribe makes subscriberID follow the channel. Subscribing twice is a no-op.
func (svc *ChannelService) Subscribe(ctx context.Context, subscriberID uuid.UUID, username string) error {
	channel, err := svc.channel(ctx, username)
	if err != nil {
		return err
	}
	if channel.UserID == subscriberID {
		return apperrors.Wrap(apperrors.ErrValidation, "cannot subscribe to your own channel")
	}
	return svc.store.Save(ctx, subscriberID, channel.UserID)
}

// Unsubscribe removes the subscription if present.
func (svc *ChannelService) Unsubscribe(ctx context.Context, subscriberID uuid.UUID, username string) error {
	channel, err := svc.channel(ctx, username)
	if err != nil {
		return err
	}
	return svc.store.Delete(ctx, subscriberID, channel.UserID)
}

// GetChannelProfile returns the channel with its subscription counters as seen by viewerID.
func (svc *ChannelService) GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfile, error) {
	channel, err := svc.channel(ctx, username)
	if err != nil {
		return nil, err
	}

	subscribers, err := svc.store.CountSubscribers(ctx, channel.UserID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := svc.store.CountSubscribedTo(ctx, channel.UserID)
	if err != nil {
		return nil, err
	}
	isSubscribed, err := svc.store.Exists(ctx, viewerID, channel.UserID)
	if err != nil {
		return nil, err
	}

	return &models.ChannelProfile{
		User:              *channel.ToUser(),
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}
