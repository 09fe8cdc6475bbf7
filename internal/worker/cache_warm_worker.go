package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheWarmer refreshes the catalog cache.
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// CacheWarmWorker periodically refreshes the product and category lists so
// dashboard reads rarely wait on the upstream.
type CacheWarmWorker struct {
	warmer   CacheWarmer
	interval time.Duration
}

// NewCacheWarmWorker constructs a CacheWarmWorker.
func NewCacheWarmWorker(warmer CacheWarmer, interval time.Duration) *CacheWarmWorker {
	return &CacheWarmWorker{
		warmer:   warmer,
		interval: interval,
	}
}

// Start begins the periodic warm loop and listens for context cancellation.
// A non-positive interval disables the worker.
func (w *CacheWarmWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Info().Msg("Cache warm worker disabled")
		return
	}
	log.Info().Dur("interval", w.interval).Msg("Starting cache warm worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Cache warm worker stopped")
			return
		}
	}
}

func (w *CacheWarmWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.warmer.WarmCache(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to warm catalog cache")
		return
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("Catalog cache warmed")
}
