package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/academyhub/backend/internal/lesson"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "editor:session:"

// RedisStore keeps sessions in Redis, one key per session
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a Redis-backed session store. ttl <= 0 means DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Get loads a session and refreshes its expiry
func (s *RedisStore) Get(ctx context.Context, id string) (*lesson.Editor, error) {
	data, err := s.client.GetEx(ctx, keyPrefix+id, s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get editor session: %w", err)
	}
	return decode(data)
}

// Save stores a session
func (s *RedisStore) Save(ctx context.Context, id string, editor *lesson.Editor) error {
	data, err := encode(editor)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save editor session: %w", err)
	}
	return nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete editor session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
