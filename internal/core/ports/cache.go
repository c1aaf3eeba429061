// internal/core/ports/cache.go
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/ammerola/reorder-engine/internal/core/domain"
)

// ErrCacheMiss is returned when a key is absent
var ErrCacheMiss = errors.New("cache miss")

// ErrLockHeld is returned when another holder owns a run lock
var ErrLockHeld = errors.New("lock held by another process")

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// RunSummaryStore keeps the most recent scheduled-run summary
type RunSummaryStore interface {
	SaveLastRun(ctx context.Context, result *domain.RunResult) error
	// LastRun returns ErrCacheMiss when no summary is stored
	LastRun(ctx context.Context) (*domain.RunResult, error)
}

// Lock is a held distributed lock
type Lock interface {
	Release(ctx context.Context) error
}

// RunLocker serializes runs across processes
type RunLocker interface {
	// Acquire returns ErrLockHeld when the key is already locked
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}
