package board

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache keeps the serialized board state in redis so a cold
// instance can answer reads before its first load. Snapshots are stored
// on publish and evicted on every mutation; redis being down only means
// a cache miss, never a failed request.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(boardType string) string {
	return "board:snapshot:" + boardType
}

func (c *SnapshotCache) Fetch(ctx context.Context, boardType string) (*State, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, snapshotKey(boardType)).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.client.Del(ctx, snapshotKey(boardType)).Err()
		}
		return nil, false
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		_ = c.client.Del(ctx, snapshotKey(boardType)).Err()
		return nil, false
	}
	return &state, true
}

func (c *SnapshotCache) Store(ctx context.Context, boardType string, state *State) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, snapshotKey(boardType), data, c.ttl).Err()
}

func (c *SnapshotCache) Evict(ctx context.Context, boardType string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, snapshotKey(boardType)).Err()
}
