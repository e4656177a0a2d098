package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/buyfrescapp/frescapp-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// SnapshotStore persists cart snapshots outside process memory so a cart
// survives restarts and sign-out/sign-in cycles.
type SnapshotStore interface {
	Save(ctx context.Context, userID string, snap Snapshot) error
	Load(ctx context.Context, userID string) (Snapshot, bool, error)
	Delete(ctx context.Context, userID string) error
}

type redisSnapshots struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisSnapshots builds a Redis-backed snapshot store. Snapshots expire
// after ttl so abandoned carts do not accumulate forever.
func NewRedisSnapshots(client *pkgredis.Client, ttl time.Duration) (SnapshotStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &redisSnapshots{client: client, ttl: ttl}, nil
}

func (s *redisSnapshots) Save(ctx context.Context, userID string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	return s.client.Set(ctx, s.client.CartKey(userID), payload, s.ttl)
}

func (s *redisSnapshots) Load(ctx context.Context, userID string) (Snapshot, bool, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *redisSnapshots) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.client.CartKey(userID))
}
