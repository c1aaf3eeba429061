// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/reorder-engine/internal/adapters/db"
	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB starts a PostgreSQL container and applies the embedded migrations
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_reorder",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_reorder",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL: dbConfig.URL(),
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates an in-process Redis for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a valid configuration for tests
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "reorder-engine-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_reorder",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			StatementCacheMode: "describe",
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			PoolSize: 10,
		},
		Asynq: config.AsynqConfig{
			Concurrency:     2,
			Queues:          map[string]int{"reorder": 6, "default": 3, "low": 1},
			ShutdownTimeout: 5 * time.Second,
		},
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret",
			JWTIssuer:         "reorder-engine-test",
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			GracefulTimeout: 5 * time.Second,
			EnableMetrics:   true,
		},
		Reorder: config.ReorderConfig{
			Schedule:          "@every 1h",
			Queue:             "reorder",
			RunTimeout:        time.Minute,
			LockTTL:           time.Minute,
			SummaryTTL:        time.Hour,
			StalePendingAfter: time.Hour,
			SweepSchedule:     "@every 15m",
			PONumberPrefix:    "PO-",
			PONumberWidth:     6,
			Timezone:          "UTC",
		},
		Secrets: config.SecretsConfig{Provider: "env"},
	}
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// DecimalPtr parses s and returns a pointer to it
func DecimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// CreateTestVendor creates an active vendor
func CreateTestVendor(code string) *domain.Vendor {
	return &domain.Vendor{
		ID:       uuid.New(),
		Code:     code,
		Name:     "Vendor " + code,
		IsActive: true,
	}
}

// CreateTestSKU creates an active, auto-reorder SKU with overall thresholds
// min 20 / optimal 40, cost 10.00 and a fresh preferred vendor.
func CreateTestSKU(overrides ...func(*domain.SKU)) *domain.SKU {
	vendorID := uuid.New()
	now := time.Now().UTC()

	sku := &domain.SKU{
		ID:      uuid.New(),
		Code:    "SKU-" + uuid.NewString()[:8],
		Name:    "Test Widget",
		ClassID: uuid.New(),
		Thresholds: domain.StockThresholdConfig{
			Mode:         domain.ThresholdModeOverall,
			MinStock:     IntPtr(20),
			OptimalStock: IntPtr(40),
		},
		PreferredVendorID:  &vendorID,
		AutoReorderEnabled: true,
		CostPrice:          DecimalPtr("10.00"),
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	for _, override := range overrides {
		override(sku)
	}
	return sku
}

// WithVendor pins the SKU's preferred vendor
func WithVendor(vendorID uuid.UUID) func(*domain.SKU) {
	return func(s *domain.SKU) {
		s.PreferredVendorID = &vendorID
	}
}

// WithOverall sets overall thresholds on the SKU's class configuration
func WithOverall(minStock, optimal int) func(*domain.SKU) {
	return func(s *domain.SKU) {
		s.Thresholds = domain.StockThresholdConfig{
			Mode:         domain.ThresholdModeOverall,
			MinStock:     IntPtr(minStock),
			OptimalStock: IntPtr(optimal),
		}
	}
}

// CreateTestEligibleItem creates an eligible item at 5 of min 20 / optimal 40
func CreateTestEligibleItem(overrides ...func(*domain.EligibleItem)) *domain.EligibleItem {
	item := &domain.EligibleItem{
		SKUID:            uuid.New(),
		SKUCode:          "SKU-" + uuid.NewString()[:8],
		SKUName:          "Test Widget",
		VendorID:         uuid.New(),
		Available:        5,
		MinThreshold:     20,
		OptimalThreshold: 40,
		Status:           domain.StockStatusCritical,
		CostPrice:        DecimalPtr("10.00"),
	}

	for _, override := range overrides {
		override(item)
	}
	return item
}

// CreateTestEligibleItems creates count items spread over vendors round-robin
func CreateTestEligibleItems(count int, vendors []uuid.UUID) []domain.EligibleItem {
	items := make([]domain.EligibleItem, count)
	for i := 0; i < count; i++ {
		items[i] = *CreateTestEligibleItem(func(item *domain.EligibleItem) {
			item.SKUCode = fmt.Sprintf("SKU-%05d", i+1)
			item.Available = i % 20
			if len(vendors) > 0 {
				item.VendorID = vendors[i%len(vendors)]
			}
		})
	}
	return items
}

// CatalogFor builds a seed holding the SKUs, a class per SKU and a vendor
// per distinct preferred vendor. available maps SKU ID to its level.
func CatalogFor(skus []*domain.SKU, available map[uuid.UUID]int) *db.CatalogSeed {
	seed := &db.CatalogSeed{}
	vendors := map[uuid.UUID]bool{}

	for _, sku := range skus {
		if sku.PreferredVendorID != nil && !vendors[*sku.PreferredVendorID] {
			vendors[*sku.PreferredVendorID] = true
			seed.Vendors = append(seed.Vendors, domain.Vendor{
				ID:       *sku.PreferredVendorID,
				Code:     "V-" + sku.PreferredVendorID.String()[:8],
				Name:     "Vendor " + sku.PreferredVendorID.String()[:8],
				IsActive: true,
			})
		}
		seed.Classes = append(seed.Classes, domain.SKUClass{
			ID:         sku.ClassID,
			Name:       "Class " + sku.Code,
			Thresholds: sku.Thresholds,
		})
		seed.SKUs = append(seed.SKUs, *sku)
		if qty, ok := available[sku.ID]; ok {
			seed.Levels = append(seed.Levels, db.InventoryLevel{SKUID: sku.ID, Available: qty})
		}
	}
	return seed
}

// SeedCatalog writes master data through the catalog writer
func SeedCatalog(t *testing.T, database *db.Database, seed *db.CatalogSeed) {
	t.Helper()

	writer := db.NewCatalogWriter(database, TestLogger())
	require.NoError(t, writer.Seed(context.Background(), seed), "Failed to seed catalog")
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"reorder_history",
		"purchase_order_items",
		"purchase_orders",
		"inventory_levels",
		"skus",
		"sku_classes",
		"vendors",
	}

	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}
