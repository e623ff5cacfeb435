package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/tyrexapp/tyrex_client/internal/domain"
	"go.uber.org/zap"
)

// Refresher owns the periodic pull loop that keeps the store in sync with the
// backend. It fetches the profile and market snapshots and feeds them into
// the store; a failed fetch logs and keeps the previous state, so the UI
// stays renderable through backend hiccups.
type Refresher struct {
	api      domain.BackendAPI
	store    *StoreService
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	stopCh chan struct{}
}

func NewRefresher(api domain.BackendAPI, store *StoreService, interval time.Duration, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 45 * time.Second
	}
	return &Refresher{
		api:      api,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// RefreshOnce runs a single sync round. The market snapshot is ingested with
// price 0 so the store falls back to its own last known BTC price.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	profile, err := r.api.GetProfile(ctx)
	if err != nil {
		r.logger.Warn("Profile refresh failed, keeping previous state", zap.Error(err))
	} else {
		r.store.IngestProfileSnapshot(profile, 0)
	}

	types, err := r.api.GetMarketTypes(ctx)
	if err != nil {
		r.logger.Warn("Market refresh failed, keeping previous listings", zap.Error(err))
	} else {
		r.store.IngestMarketSnapshot(types, 0)
	}
}

// Start launches the poll loop. The first round runs immediately. The loop
// stops when ctx is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	if r.stopCh != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.stopCh = stop
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.RefreshOnce(ctx)
		for {
			select {
			case <-ticker.C:
				r.RefreshOnce(ctx)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the poll loop. Safe to call multiple times.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopCh != nil {
		close(r.stopCh)
		r.stopCh = nil
	}
}
