// internal/pkg/config/config_test.go
package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(testLogger())
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadTestConfig(t)

	assert.Equal(t, "reorder-engine", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "@every 1h", cfg.Reorder.Schedule)
	assert.Equal(t, "reorder", cfg.Reorder.Queue)
	assert.Equal(t, "PO-", cfg.Reorder.PONumberPrefix)
	assert.Equal(t, 6, cfg.Reorder.PONumberWidth)
	assert.Equal(t, "UTC", cfg.Reorder.Timezone)
	assert.Equal(t, time.Hour, cfg.Reorder.StalePendingAfter)
	assert.Equal(t, "env", cfg.Secrets.Provider)
	assert.Contains(t, cfg.Asynq.Queues, "reorder")
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("REORDER_SCHEDULE", "*/30 * * * *")
	t.Setenv("REORDER_PO_WIDTH", "8")
	t.Setenv("REORDER_TIMEZONE", "America/New_York")
	t.Setenv("REORDER_STALE_PENDING_AFTER", "2h")
	t.Setenv("ASYNQ_QUEUES", "reorder:10, low:1")

	cfg := loadTestConfig(t)

	assert.Equal(t, "*/30 * * * *", cfg.Reorder.Schedule)
	assert.Equal(t, 8, cfg.Reorder.PONumberWidth)
	assert.Equal(t, 2*time.Hour, cfg.Reorder.StalePendingAfter)
	assert.Equal(t, map[string]int{"reorder": 10, "low": 1}, cfg.Asynq.Queues)

	loc, err := cfg.Reorder.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectedError error
		errorContains string
	}{
		{
			name:   "valid_defaults",
			mutate: func(c *Config) {},
		},
		{
			name:          "rejects_unknown_log_level",
			mutate:        func(c *Config) { c.App.LogLevel = "verbose" },
			errorContains: "App.LogLevel (oneof)",
		},
		{
			name:          "rejects_missing_database_name",
			mutate:        func(c *Config) { c.Database.Name = "" },
			expectedError: ErrMissingRequiredConfig,
			errorContains: "Database.Name",
		},
		{
			name: "rejects_min_connections_above_max",
			mutate: func(c *Config) {
				c.Database.MaxConnections = 2
				c.Database.MinConnections = 5
			},
			errorContains: "Database.MinConnections (ltefield)",
		},
		{
			name:          "rejects_unknown_timezone",
			mutate:        func(c *Config) { c.Reorder.Timezone = "Mars/Olympus" },
			errorContains: "invalid reorder timezone",
		},
		{
			name:          "rejects_queue_not_served",
			mutate:        func(c *Config) { c.Reorder.Queue = "elsewhere" },
			errorContains: "not in ASYNQ_QUEUES",
		},
		{
			name:          "rejects_zero_po_width",
			mutate:        func(c *Config) { c.Reorder.PONumberWidth = 0 },
			errorContains: "Reorder.PONumberWidth (gte)",
		},
		{
			name:          "aws_provider_requires_region",
			mutate:        func(c *Config) { c.Secrets.Provider = "aws" },
			expectedError: ErrMissingRequiredConfig,
			errorContains: "Secrets.AWSRegion",
		},
		{
			name: "production_rejects_default_secret",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "pw"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Security.AllowedOrigins = []string{"https://ops.example.com"}
			},
			errorContains: "default JWT secret",
		},
		{
			name: "production_accepts_hardened_config",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "pw"
				c.Database.SSLMode = "require"
				c.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
				c.Security.SecureHeaders = true
				c.Security.AllowedOrigins = []string{"https://ops.example.com"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" && tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			}
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

type fakeSecretsClient struct {
	secret string
	err    error
	calls  int
}

func (f *fakeSecretsClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.secret)}, nil
}

func TestApplySecrets(t *testing.T) {
	t.Run("overlays_known_keys", func(t *testing.T) {
		cfg := loadTestConfig(t)
		client := &fakeSecretsClient{secret: `{"DB_PASSWORD":"from-aws","JWT_SECRET":"aws-jwt"}`}
		sm := newAWSSecretsManager(client, "reorder/prod", testLogger())

		require.NoError(t, ApplySecrets(context.Background(), cfg, sm))

		assert.Equal(t, "from-aws", cfg.Database.Password)
		assert.Equal(t, "aws-jwt", cfg.Security.JWTSecret)
	})

	t.Run("keeps_values_for_missing_keys", func(t *testing.T) {
		cfg := loadTestConfig(t)
		before := cfg.Security.JWTSecret
		client := &fakeSecretsClient{secret: `{"DB_PASSWORD":"only-db"}`}
		sm := newAWSSecretsManager(client, "reorder/prod", testLogger())

		require.NoError(t, ApplySecrets(context.Background(), cfg, sm))

		assert.Equal(t, "only-db", cfg.Database.Password)
		assert.Equal(t, before, cfg.Security.JWTSecret)
	})

	t.Run("propagates_fetch_errors", func(t *testing.T) {
		cfg := loadTestConfig(t)
		client := &fakeSecretsClient{err: errors.New("access denied")}
		sm := newAWSSecretsManager(client, "reorder/prod", testLogger())

		err := ApplySecrets(context.Background(), cfg, sm)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("env_manager_reads_environment", func(t *testing.T) {
		cfg := loadTestConfig(t)
		t.Setenv("DB_PASSWORD", "from-env")

		require.NoError(t, ApplySecrets(context.Background(), cfg, NewEnvSecretsManager()))
		assert.Equal(t, "from-env", cfg.Database.Password)
	})
}

func TestAWSSecretsManager_CachesSecret(t *testing.T) {
	client := &fakeSecretsClient{secret: `{"DB_PASSWORD":"pw","JWT_SECRET":"jwt"}`}
	sm := newAWSSecretsManager(client, "reorder/prod", testLogger())
	ctx := context.Background()

	_, err := sm.GetSecrets(ctx, []string{SecretDBPassword, SecretJWTSecret})
	require.NoError(t, err)
	secrets, err := sm.GetSecrets(ctx, []string{SecretDBPassword})
	require.NoError(t, err)

	assert.Equal(t, "pw", secrets[SecretDBPassword])
	assert.Equal(t, 1, client.calls)
}
