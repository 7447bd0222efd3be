package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"migflow/pkg/platform/sentinel"
)

const redisKey = "migflow:catalog"

// Redis shares one cached catalog across instances. The key carries an
// expiry slightly longer than the service's freshness window so stale copies
// eventually disappear even if no instance refreshes.
type Redis struct {
	client *redis.Client
	expiry time.Duration
}

func NewRedis(client *redis.Client, expiry time.Duration) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("expiry must be positive")
	}
	return &Redis{client: client, expiry: expiry}, nil
}

func (r *Redis) Load(ctx context.Context) (*Snapshot, error) {
	raw, err := r.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt snapshot is treated as absent so the next caller
		// triggers a clean refetch.
		return nil, sentinel.ErrNotFound
	}
	return &snap, nil
}

func (r *Redis) Save(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	if err := r.client.Set(ctx, redisKey, raw, r.expiry).Err(); err != nil {
		return fmt.Errorf("save catalog snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("clear catalog snapshot: %w", err)
	}
	return nil
}
