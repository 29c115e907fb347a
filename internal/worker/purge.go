package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/pkg/metrics"
)

// PurgeWorker hard-deletes records that stayed soft-deleted longer than the retention.
type PurgeWorker struct {
	repos     []repository.Purgeable
	retention time.Duration
	interval  time.Duration
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewPurgeWorker(repos []repository.Purgeable, retention, interval time.Duration, logger zerolog.Logger, m *metrics.Metrics) *PurgeWorker {
	return &PurgeWorker{
		repos:     repos,
		retention: retention,
		interval:  interval,
		logger:    logger.With().Str("worker", "purge").Logger(),
		metrics:   m,
		now:       time.Now,
	}
}

// Start purges once, then on every tick until ctx is done.
func (w *PurgeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			// Log error but continue
			w.logger.Error().Err(err).Msg("purge run failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce purges every collection and returns the first error after trying them all.
func (w *PurgeWorker) RunOnce(ctx context.Context) error {
	cutoff := w.now().Add(-w.retention)

	var firstErr error
	for _, repo := range w.repos {
		n, err := repo.PurgeDeleted(ctx, cutoff)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to purge %s: %w", repo.Name(), err)
			}
			continue
		}
		if n == 0 {
			continue
		}
		if w.metrics != nil {
			w.metrics.PurgedDocuments.WithLabelValues(repo.Name()).Add(float64(n))
		}
		w.logger.Info().Str("collection", repo.Name()).Int("purged", n).Time("cutoff", cutoff).Msg("purged soft-deleted records")
	}
	return firstErr
}
