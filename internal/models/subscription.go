package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a directed edge from a subscriber to a channel, both users.
type Subscription struct {
	SubscriptionID uuid.UUID `db:"id"`
	SubscriberID   uuid.UUID `db:"subscriber_id"`
	ChannelID      uuid.UUID `db:"channel_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ChannelProfile is a user seen as a channel by another user.
// swagger:model ChannelProfile
type ChannelProfile struct {
	User
	SubscribersCount  int64 `json:"subscribersCount"`
	SubscribedToCount int64 `json:"channelsSubscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}
