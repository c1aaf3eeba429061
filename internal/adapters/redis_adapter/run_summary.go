// internal/adapters/redis_adapter/run_summary.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// LastRunKey holds the most recent scheduled run summary
var LastRunKey = BuildKey(PrefixReorder, "last_run")

// RunSummaryStore keeps the last scheduled run summary in Redis. The summary
// is informational only; the reorder history table stays the source of truth.
type RunSummaryStore struct {
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.RunSummaryStore = (*RunSummaryStore)(nil)

// NewRunSummaryStore creates a new summary store
func NewRunSummaryStore(cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *RunSummaryStore {
	return &RunSummaryStore{
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "run_summary")),
	}
}

// SaveLastRun overwrites the stored summary
func (s *RunSummaryStore) SaveLastRun(ctx context.Context, result *domain.RunResult) error {
	if result == nil {
		return fmt.Errorf("run result is required")
	}
	if err := s.cache.SetWithTTL(ctx, LastRunKey, result, s.ttl); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}

	s.logger.DebugContext(ctx, "run summary saved",
		slog.String("run_id", result.RunID.String()))
	return nil
}

// LastRun returns ports.ErrCacheMiss when nothing has run within the TTL
func (s *RunSummaryStore) LastRun(ctx context.Context) (*domain.RunResult, error) {
	var result domain.RunResult
	if err := s.cache.Get(ctx, LastRunKey, &result); err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load run summary: %w", err)
	}
	return &result, nil
}
