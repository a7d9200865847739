package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SubscriptionRepository handles subscriber to channel edges
type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Save creates the edge. Saving an existing edge is a no-op.
func (r *SubscriptionRepository) Save(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	query := `
		INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`
	args := []any{uuid.New(), subscriberID, channelID}

	_, err := r.db.ExecContext(ctx, query, args...)
	logQuery(ctx, query, args, nil, err)
	return err
}

// Delete removes the edge if it exists.
func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	query := `
		DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`
	args := []any{subscriberID, channelID}

	_, err := r.db.ExecContext(ctx, query, args...)
	logQuery(ctx, query, args, nil, err)
	return err
}

// Exists reports whether subscriberID is subscribed to channelID.
func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
		)
	`
	args := []any{subscriberID, channelID}

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, args...)
	logQuery(ctx, query, args, exists, err)
	return exists, err
}

// CountSubscribers returns how many users subscribe to channelID.
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, channelID)
	logQuery(ctx, query, []any{channelID}, count, err)
	return count, err
}

// CountSubscribedTo returns how many channels subscriberID subscribes to.
func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, subscriberID)
	logQuery(ctx, query, []any{subscriberID}, count, err)
	return count, err
}
