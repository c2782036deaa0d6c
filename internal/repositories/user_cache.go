package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// UserCacheRepository caches resolved users in Redis
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

func userKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

// Get returns the cached user or ErrCacheMiss.
func (r *UserCacheRepository) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	key := userKey(userID)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Infow("cache", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(val, &user); err != nil {
		logger.Log.Infow("cache", "key", key, "value", string(val), "error", err)
		return nil, err
	}

	logger.Log.Infow("cache", "key", key, "result", "hit")
	return &user, nil
}

// Set caches the user with the configured expiration.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.User) error {
	key := userKey(user.UserID)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.Log.Infow("cache", "key", key, "result", "set", "error", err)
	return err
}

// Delete evicts the user from the cache.
func (r *UserCacheRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	key := userKey(userID)

	err := r.client.Del(ctx, key).Err()
	logger.Log.Infow("cache", "key", key, "result", "deleted", "error", err)
	return err
}
