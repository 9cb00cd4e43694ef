package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dockboard/internal/core/cache"
	"dockboard/internal/core/logger"
	"dockboard/internal/features/trucks/domain"
	"dockboard/internal/features/trucks/ports"
	"dockboard/internal/features/trucks/store"

	"go.uber.org/zap"
)

// snapshotCacheKey stores the last successfully loaded collection.
const snapshotCacheKey = "incoming_trucks_snapshot"

// snapshotCacheTTL bounds how stale a restored snapshot may be.
const snapshotCacheTTL = 24 * time.Hour

// Refresher pulls the incoming-truck list from the remote API into the store.
// A failed refresh keeps the last good snapshot serving and records the error
// as retrievable state instead of discarding what is already loaded.
type Refresher struct {
	store  *store.Store
	remote ports.RemoteSource
	cache  cache.Cache
	logger *zap.Logger

	mu          sync.Mutex
	lastErr     error
	lastSuccess time.Time
}

// NewRefresher creates a Refresher backed by the given cache.
func NewRefresher(s *store.Store, remote ports.RemoteSource, c cache.Cache) *Refresher {
	return &Refresher{
		store:  s,
		remote: remote,
		cache:  c,
		logger: logger.Named("refresher"),
	}
}

// Refresh loads the remote truck list and replaces the store's collection.
// On failure the current collection stays put and the error is recorded; it
// is also returned so callers can surface it.
func (r *Refresher) Refresh(ctx context.Context) error {
	trucks, err := r.remote.ListTrucks(ctx)
	if err != nil {
		r.setError(err)
		r.logger.Warn("refresh failed, keeping last snapshot", zap.Error(err))
		return fmt.Errorf("refresh trucks: %w", err)
	}

	r.store.Replace(store.Collection(trucks))
	r.setError(nil)
	r.persistSnapshot(ctx, trucks)
	r.logger.Debug("refreshed trucks", zap.Int("count", len(trucks)))
	return nil
}

// WarmStart restores the most recent cached snapshot into an empty store,
// giving the dashboard something to show before the first refresh completes
// or when the remote API is down at startup.
func (r *Refresher) WarmStart(ctx context.Context) error {
	if len(r.store.Snapshot()) > 0 {
		return nil
	}

	data, err := r.cache.Get(ctx, snapshotCacheKey)
	if err != nil {
		return fmt.Errorf("warm start: %w", err)
	}

	var trucks []*domain.Truck
	if err := json.Unmarshal(data, &trucks); err != nil {
		return fmt.Errorf("warm start: decode snapshot: %w", err)
	}

	// Re-derive summaries locally rather than trusting the cached copy.
	for i, truck := range trucks {
		trucks[i] = truck.WithHistory(truck.History)
	}

	r.store.Replace(store.Collection(trucks))
	r.logger.Info("restored cached snapshot", zap.Int("count", len(trucks)))
	return nil
}

// LastError returns the error recorded by the most recent failed refresh, or
// nil after a successful one.
func (r *Refresher) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// LastSuccess returns when the collection was last refreshed successfully.
func (r *Refresher) LastSuccess() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSuccess
}

// StartPolling refreshes on the given interval until ctx is cancelled.
// Poll refreshes may race an in-flight submission: that is safe, because a
// confirmation reconciles against whatever history the refresh delivered
// rather than restoring a stale snapshot.
func (r *Refresher) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Refresh(ctx)
			}
		}
	}()
}

func (r *Refresher) setError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
	if err == nil {
		r.lastSuccess = time.Now()
	}
}

func (r *Refresher) persistSnapshot(ctx context.Context, trucks []*domain.Truck) {
	data, err := json.Marshal(trucks)
	if err != nil {
		r.logger.Warn("failed to encode snapshot", zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, snapshotCacheKey, data, snapshotCacheTTL); err != nil {
		r.logger.Warn("failed to cache snapshot", zap.Error(err))
	}
}
