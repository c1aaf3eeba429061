// internal/core/domain/threshold.go
package domain

import "time"

// Thresholds is the resolved (minimum, optimal) stock level for one evaluation
type Thresholds struct {
	Min     int `json:"min_threshold"`
	Optimal int `json:"optimal_threshold"`
}

// IsZero reports whether the thresholds mean "do not reorder"
func (t Thresholds) IsZero() bool {
	return t.Min == 0 && t.Optimal == 0
}

// ResolveThresholds returns the thresholds that apply in the given calendar
// month. Missing or unknown configuration resolves to zero thresholds, which
// the scanner treats as "no reorder" rather than an error.
func ResolveThresholds(cfg StockThresholdConfig, month time.Month) Thresholds {
	switch cfg.Mode {
	case ThresholdModeOverall:
		var t Thresholds
		if cfg.MinStock != nil {
			t.Min = *cfg.MinStock
		}
		if cfg.OptimalStock != nil {
			t.Optimal = *cfg.OptimalStock
		}
		return t
	case ThresholdModeMonthly:
		for _, m := range cfg.Monthly {
			if m.Month == int(month) {
				return Thresholds{Min: m.MinStock, Optimal: m.OptimalStock}
			}
		}
		return Thresholds{}
	default:
		return Thresholds{}
	}
}
