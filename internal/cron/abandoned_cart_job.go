package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/buyfrescapp/frescapp-backend/internal/cart"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
	"go.uber.org/multierr"
)

const defaultAbandonedCartAge = 30 * 24 * time.Hour

// cartKeyStore is the slice of the redis client the job needs.
type cartKeyStore interface {
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKeyPattern() string
}

// AbandonedCartJob removes cart snapshots that have not been touched in a
// long time. Keys carry a TTL already; this job is the backstop for
// snapshots whose TTL keeps getting refreshed by a client that never checks
// out, and it also clears payloads that no longer decode.
type AbandonedCartJob struct {
	store  cartKeyStore
	logg   *logger.Logger
	maxAge time.Duration
	now    func() time.Time
}

// NewAbandonedCartJob builds the cleanup job.
func NewAbandonedCartJob(store cartKeyStore, logg *logger.Logger, maxAge time.Duration) (*AbandonedCartJob, error) {
	if store == nil {
		return nil, errors.New("cart key store is required")
	}
	if maxAge <= 0 {
		maxAge = defaultAbandonedCartAge
	}
	return &AbandonedCartJob{store: store, logg: logg, maxAge: maxAge, now: time.Now}, nil
}

// Name identifies the job in logs and metrics.
func (j *AbandonedCartJob) Name() string {
	return "abandoned_cart_cleanup"
}

// Run scans every persisted cart and removes the stale or corrupt ones.
// Individual failures are collected so one bad key does not stop the sweep.
func (j *AbandonedCartJob) Run(ctx context.Context) error {
	keys, err := j.store.ScanKeys(ctx, j.store.CartKeyPattern())
	if err != nil {
		return fmt.Errorf("scan cart keys: %w", err)
	}

	cutoff := j.now().Add(-j.maxAge)
	var errs error
	removed := 0

	for _, key := range keys {
		raw, err := j.store.Get(ctx, key)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", key, err))
			continue
		}

		var snap cart.Snapshot
		stale := false
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			stale = true
		} else if snap.UpdatedAt.Before(cutoff) {
			stale = true
		}
		if !stale {
			continue
		}

		if err := j.store.Del(ctx, key); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", key, err))
			continue
		}
		removed++
	}

	if j.logg != nil {
		runCtx := j.logg.WithFields(ctx, map[string]any{
			"scanned": len(keys),
			"removed": removed,
		})
		j.logg.Info(runCtx, "abandoned cart sweep finished")
	}
	return errs
}
