package sessioncache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	platformredis "vitrina/internal/platform/redis"
	"vitrina/internal/sentinel"
)

const keyPrefix = "vitrina:session:"

// Redis is the shared session cache used when multiple replicas serve the app.
type Redis struct {
	client *platformredis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed session cache with the given entry TTL.
func NewRedis(client *platformredis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the entry for key, or sentinel.ErrNotFound when absent.
func (r *Redis) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("session cache get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// A corrupt entry is indistinguishable from a miss for the gate.
		return nil, sentinel.ErrNotFound
	}
	return &entry, nil
}

// Set stores the entry for key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("session cache marshal: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

// Clear removes the entry for key.
func (r *Redis) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("session cache clear: %w", err)
	}
	return nil
}
