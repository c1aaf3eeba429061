// internal/adapters/redis_adapter/locker.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// RunLockKey serializes scheduled runs across worker replicas
var RunLockKey = BuildKey(PrefixLock, "reorder", "scheduled_run")

// Locker hands out redislock locks
type Locker struct {
	client *redislock.Client
	logger *slog.Logger
}

var _ ports.RunLocker = (*Locker)(nil)

// NewLocker creates a locker on the given client
func NewLocker(client redis.UniversalClient, logger *slog.Logger) *Locker {
	return &Locker{
		client: redislock.New(client),
		logger: logger.With(slog.String("component", "locker")),
	}
}

// Acquire obtains key for ttl without retrying. A held key returns
// ports.ErrLockHeld.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (ports.Lock, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ports.ErrLockHeld
		}
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	l.logger.DebugContext(ctx, "lock obtained",
		slog.String("key", key),
		slog.Duration("ttl", ttl))

	return &heldLock{lock: lock, key: key, logger: l.logger}, nil
}

type heldLock struct {
	lock   *redislock.Lock
	key    string
	logger *slog.Logger
}

// Release is a no-op when the lock already expired
func (h *heldLock) Release(ctx context.Context) error {
	if err := h.lock.Release(ctx); err != nil {
		if errors.Is(err, redislock.ErrLockNotHeld) {
			h.logger.WarnContext(ctx, "lock expired before release", slog.String("key", h.key))
			return nil
		}
		return fmt.Errorf("failed to release lock %s: %w", h.key, err)
	}
	return nil
}
