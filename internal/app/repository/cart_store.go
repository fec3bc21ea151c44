package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CartStore is the key-value persistence behind the quote cart. The whole
// serialized line list is read and rewritten as one value per user; there are
// no incremental updates, so the stored payload always reflects the latest
// mutation in full.
type CartStore interface {
	// Get returns the serialized cart and whether a value was present.
	Get(ctx context.Context, userID uint) (string, bool, error)
	Set(ctx context.Context, userID uint, payload string) error
	Delete(ctx context.Context, userID uint) error
}

type redisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(client *redis.Client) CartStore {
	return &redisCartStore{client: client}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("quotecart:%d", userID)
}

func (s *redisCartStore) Get(ctx context.Context, userID uint) (string, bool, error) {
	payload, err := s.client.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to read cart from store", err, map[string]interface{}{
			"user_id": userID,
		})
		return "", false, err
	}
	return payload, true, nil
}

func (s *redisCartStore) Set(ctx context.Context, userID uint, payload string) error {
	if err := s.client.Set(ctx, cartKey(userID), payload, 0).Err(); err != nil {
		logger.Error("Failed to write cart to store", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

func (s *redisCartStore) Delete(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		logger.Error("Failed to delete cart from store", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
