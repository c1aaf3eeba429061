package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ammerola/reorder-engine/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func TestResolveThresholds(t *testing.T) {
	monthly := domain.StockThresholdConfig{
		Mode: domain.ThresholdModeMonthly,
		Monthly: []domain.MonthlyThreshold{
			{Month: 1, MinStock: 10, OptimalStock: 40},
			{Month: 6, MinStock: 30, OptimalStock: 90},
		},
	}

	tests := []struct {
		name  string
		cfg   domain.StockThresholdConfig
		month time.Month
		want  domain.Thresholds
	}{
		{
			name:  "overall_returns_fixed_pair",
			cfg:   domain.StockThresholdConfig{Mode: domain.ThresholdModeOverall, MinStock: intPtr(20), OptimalStock: intPtr(50)},
			month: time.March,
			want:  domain.Thresholds{Min: 20, Optimal: 50},
		},
		{
			name:  "overall_defaults_absent_values_to_zero",
			cfg:   domain.StockThresholdConfig{Mode: domain.ThresholdModeOverall, MinStock: intPtr(5)},
			month: time.March,
			want:  domain.Thresholds{Min: 5, Optimal: 0},
		},
		{
			name:  "monthly_hit",
			cfg:   monthly,
			month: time.June,
			want:  domain.Thresholds{Min: 30, Optimal: 90},
		},
		{
			name:  "monthly_miss_is_zero",
			cfg:   monthly,
			month: time.July,
			want:  domain.Thresholds{},
		},
		{
			name:  "empty_config_is_zero",
			cfg:   domain.StockThresholdConfig{},
			month: time.January,
			want:  domain.Thresholds{},
		},
		{
			name:  "unknown_mode_is_zero",
			cfg:   domain.StockThresholdConfig{Mode: "weekly", MinStock: intPtr(10)},
			month: time.January,
			want:  domain.Thresholds{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveThresholds(tt.cfg, tt.month)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveThresholds_MonthlyMissIsNeverEligible(t *testing.T) {
	cfg := domain.StockThresholdConfig{
		Mode:    domain.ThresholdModeMonthly,
		Monthly: []domain.MonthlyThreshold{{Month: 12, MinStock: 100, OptimalStock: 200}},
	}

	th := domain.ResolveThresholds(cfg, time.February)

	assert.True(t, th.IsZero())
	assert.False(t, domain.IsBelowThreshold(0, th))
}

func TestStockThresholdConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.StockThresholdConfig
		wantErr string
	}{
		{
			name: "valid_overall",
			cfg:  domain.StockThresholdConfig{Mode: domain.ThresholdModeOverall, MinStock: intPtr(1), OptimalStock: intPtr(2)},
		},
		{
			name:    "negative_min",
			cfg:     domain.StockThresholdConfig{Mode: domain.ThresholdModeOverall, MinStock: intPtr(-1)},
			wantErr: "min_stock cannot be negative",
		},
		{
			name:    "month_out_of_range",
			cfg:     domain.StockThresholdConfig{Mode: domain.ThresholdModeMonthly, Monthly: []domain.MonthlyThreshold{{Month: 13}}},
			wantErr: "month must be between 1 and 12",
		},
		{
			name: "duplicate_month",
			cfg: domain.StockThresholdConfig{Mode: domain.ThresholdModeMonthly, Monthly: []domain.MonthlyThreshold{
				{Month: 2}, {Month: 2},
			}},
			wantErr: "duplicate threshold for month 2",
		},
		{
			name:    "unknown_mode",
			cfg:     domain.StockThresholdConfig{Mode: "yearly"},
			wantErr: "unknown threshold mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
