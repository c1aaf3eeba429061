// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/reorder-engine/internal/adapters/db"
	redis_a "github.com/ammerola/reorder-engine/internal/adapters/redis_adapter"
	"github.com/ammerola/reorder-engine/internal/core/services"
	"github.com/ammerola/reorder-engine/internal/pkg/config"
)

// Engine is the reorder engine wired against Postgres and Redis
type Engine struct {
	Database  *db.Database
	Redis     *redis.Client
	Service   *services.ReorderService
	Audit     *services.AuditTrail
	Summaries *redis_a.RunSummaryStore
	Locker    *redis_a.Locker
}

// Close releases the database pool and the Redis client
func (e *Engine) Close() {
	if e.Database != nil {
		e.Database.Close()
	}
	if e.Redis != nil {
		e.Redis.Close()
	}
}

// NewDatabase opens the pgx pool described by cfg
func NewDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	return db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
}

// NewRedis connects and pings the Redis client
func NewRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	logger.Info("connecting to Redis", slog.String("addr", cfg.GetRedisAddr()))

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// AsynqRedisOpt points asynq at the configured Redis
func AsynqRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Asynq.RedisDB,
	}
}

// Migrate applies the embedded migrations when AutoMigrate is set
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger, 3)
}

// ErrResetNotAllowed guards destructive schema resets outside local
// environments
var ErrResetNotAllowed = errors.New("schema reset is only allowed in development or test")

// CheckResetAllowed reports whether cfg's environment may drop the schema
func CheckResetAllowed(cfg *config.Config) error {
	if cfg.IsDevelopment() || cfg.App.Environment == "test" {
		return nil
	}
	return fmt.Errorf("%w (environment %q)", ErrResetNotAllowed, cfg.App.Environment)
}

// ResetSchema drops and reapplies every migration
func ResetSchema(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := CheckResetAllowed(cfg); err != nil {
		return err
	}

	migrator, err := db.NewMigrator(&db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	return migrator.Reset(ctx)
}

// NewEngine builds the reorder service and its Redis companions on open
// connections
func NewEngine(database *db.Database, redisClient *redis.Client, cfg *config.Config, logger *slog.Logger) *Engine {
	catalog := db.NewCatalogRepository(database, logger)
	ledger := db.NewInventoryLedger(database, logger)
	orders := db.NewPurchaseOrderRepository(database, logger)
	history := db.NewReorderHistoryRepository(database, logger)

	audit := services.NewAuditTrail(history, logger)
	service := services.NewReorderService(
		services.NewEligibilityScanner(catalog, ledger, logger),
		services.NewReorderGuard(history, logger),
		audit,
		services.NewPurchaseOrderMaterializer(orders, services.PONumbering{
			Prefix: cfg.Reorder.PONumberPrefix,
			Width:  cfg.Reorder.PONumberWidth,
		}, logger),
		logger,
	)

	cache := redis_a.NewCache(redisClient, cfg.Reorder.SummaryTTL, logger)

	return &Engine{
		Database:  database,
		Redis:     redisClient,
		Service:   service,
		Audit:     audit,
		Summaries: redis_a.NewRunSummaryStore(cache, cfg.Reorder.SummaryTTL, logger),
		Locker:    redis_a.NewLocker(redisClient, logger),
	}
}

// Open connects to Postgres and Redis, migrates if configured and wires
// the engine
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if err := Migrate(ctx, cfg, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	database, err := NewDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := NewRedis(ctx, cfg, logger)
	if err != nil {
		database.Close()
		return nil, err
	}

	return NewEngine(database, redisClient, cfg, logger), nil
}
