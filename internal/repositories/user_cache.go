package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

// UserCacheRepository caches sanitized user projections in Redis
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached users
}

// NewUserCacheRepository creates a new repository instance with the given TTL
func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

// Get returns the cached user, or nil on a cache miss.
func (r *UserCacheRepository) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	key := userCacheKey(userID)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.FromContext(ctx).Debugw("cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Infow("cache get", "key", key, "error", err)
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(val, &user); err != nil {
		logger.FromContext(ctx).Infow("cache decode", "key", key, "error", err)
		return nil, err
	}

	logger.FromContext(ctx).Debugw("cache hit", "key", key)
	return &user, nil
}

// Set caches user with the repository TTL.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.User) error {
	key := userCacheKey(user.UserID)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.FromContext(ctx).Debugw("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}

// Delete evicts the cached user.
func (r *UserCacheRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	key := userCacheKey(userID)

	err := r.client.Del(ctx, key).Err()
	logger.FromContext(ctx).Debugw("cache delete", "key", key, "error", err)
	return err
}
