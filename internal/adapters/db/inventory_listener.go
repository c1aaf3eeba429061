// internal/adapters/db/inventory_listener.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// InventoryChangedChannel is the NOTIFY channel fed by the inventory_levels trigger
const InventoryChangedChannel = "inventory_changed"

// InventoryChangeHandler is called once per notification with the SKU id
// carried in the payload
type InventoryChangeHandler func(ctx context.Context, skuID uuid.UUID) error

// InventoryListener turns inventory_changed notifications into handler calls
type InventoryListener struct {
	db           *Database
	channel      string
	handler      InventoryChangeHandler
	retryBackoff time.Duration
	logger       *slog.Logger
}

// NewInventoryListener creates a listener on InventoryChangedChannel
func NewInventoryListener(db *Database, handler InventoryChangeHandler, logger *slog.Logger) *InventoryListener {
	return &InventoryListener{
		db:           db,
		channel:      InventoryChangedChannel,
		handler:      handler,
		retryBackoff: 2 * time.Second,
		logger:       logger.With(slog.String("component", "inventory_listener")),
	}
}

// Run blocks until ctx is cancelled, re-establishing the LISTEN connection
// whenever it drops
func (l *InventoryListener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		l.logger.WarnContext(ctx, "inventory listener disconnected, retrying",
			slog.Duration("backoff", l.retryBackoff),
			"err", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.retryBackoff):
		}
	}
}

func (l *InventoryListener) listen(ctx context.Context) error {
	conn, err := l.db.Listen(ctx, l.channel)
	if err != nil {
		return err
	}
	defer conn.Release()

	l.logger.InfoContext(ctx, "listening for inventory changes", slog.String("channel", l.channel))

	for {
		n, err := l.db.WaitForNotification(ctx, conn)
		if err != nil {
			return fmt.Errorf("failed to wait for notification: %w", err)
		}

		skuID, err := uuid.Parse(n.Payload)
		if err != nil {
			l.logger.WarnContext(ctx, "ignoring notification with invalid sku id",
				slog.String("payload", n.Payload))
			continue
		}

		if err := l.handler(ctx, skuID); err != nil && !errors.Is(err, context.Canceled) {
			l.logger.ErrorContext(ctx, "inventory change handler failed",
				slog.String("sku_id", skuID.String()),
				"err", err)
		}
	}
}
