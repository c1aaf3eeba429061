package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/reorder-engine/internal/app"
	"github.com/ammerola/reorder-engine/test/helpers"
)

func TestCheckResetAllowed(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantErr     bool
	}{
		{name: "development", environment: "development"},
		{name: "local", environment: "local"},
		{name: "test", environment: "test"},
		{name: "staging", environment: "staging", wantErr: true},
		{name: "production", environment: "production", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := helpers.LoadTestConfig()
			cfg.App.Environment = tt.environment

			err := app.CheckResetAllowed(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, app.ErrResetNotAllowed)
				assert.Contains(t, err.Error(), tt.environment)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResetSchema_RefusesProduction(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.App.Environment = "production"

	// fails before any connection is attempted
	err := app.ResetSchema(context.Background(), cfg, helpers.TestLogger())
	require.ErrorIs(t, err, app.ErrResetNotAllowed)
}
