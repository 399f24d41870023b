// services/token_store.go - Expiring one-time token storage (Redis)
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore keeps short-lived single-use keys. Take must be atomic:
// two concurrent redemptions of the same key must not both succeed.
type TokenStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Take returns the stored value and deletes it in one step.
	// A missing or expired key yields ("", nil).
	Take(ctx context.Context, key string) (string, error)
	Close() error
}

type RedisTokenStore struct {
	rdb *redis.Client
}

// NewRedisTokenStore connects to Redis and verifies the connection.
func NewRedisTokenStore(addr, password string, db int) (*RedisTokenStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("Redis connected %s[%d]", addr, db)
	return &RedisTokenStore{rdb: rdb}, nil
}

func (s *RedisTokenStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Take uses GETDEL so redemption cannot race with another request.
func (s *RedisTokenStore) Take(ctx context.Context, key string) (string, error) {
	value, err := s.rdb.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisTokenStore) Close() error {
	return s.rdb.Close()
}
