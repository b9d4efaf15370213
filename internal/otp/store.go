// Package otp keeps one-time codes in Redis with a TTL so they survive
// process restarts and are shared across instances.
package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("otp not found or expired")

type Store interface {
	Put(ctx context.Context, phone, codeHash string) error
	Take(ctx context.Context, phone string) (string, error)
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func Connect(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func key(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

// Put stores the code hash, replacing any outstanding code for the phone.
func (s *RedisStore) Put(ctx context.Context, phone, codeHash string) error {
	return s.client.Set(ctx, key(phone), codeHash, s.ttl).Err()
}

// Take returns the stored hash and deletes it, so a code can be used at most
// once even under concurrent verification attempts.
func (s *RedisStore) Take(ctx context.Context, phone string) (string, error) {
	hash, err := s.client.GetDel(ctx, key(phone)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}
