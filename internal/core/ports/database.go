// internal/core/ports/database.go
package ports

import "context"

// Database is what the health endpoints need from the Postgres adapter
type Database interface {
	Ping(ctx context.Context) error
	// Health reports pool statistics and the number of pending reorder
	// entries. A "status" key of "unhealthy" marks a failed check.
	Health(ctx context.Context) map[string]interface{}
}
