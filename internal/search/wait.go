package search

import (
	"time"

	"tabbatch/internal/config"
)

// WaitParams shapes the load wait for a batch of tabs.
type WaitParams struct {
	PerTab    float64
	Base      float64
	Threshold int
	Discount  float64
	Floor     int
}

// WaitParamsFromConfig extracts the wait parameters from search settings.
func WaitParamsFromConfig(cfg config.Search) WaitParams {
	return WaitParams{
		PerTab:    cfg.WaitPerTab,
		Base:      cfg.WaitBase,
		Threshold: cfg.WaitThreshold,
		Discount:  cfg.WaitDiscount,
		Floor:     cfg.WaitFloor,
	}
}

// WaitSeconds returns the whole seconds to wait for n tabs to load. The raw
// value is truncated, then raised to the floor.
func WaitSeconds(n int, p WaitParams) int {
	raw := p.PerTab*float64(n) + p.Base
	if p.Threshold > 0 && n >= p.Threshold {
		raw -= p.Discount
	}
	return max(int(raw), p.Floor)
}

// Wait is WaitSeconds as a duration.
func Wait(n int, p WaitParams) time.Duration {
	return time.Duration(WaitSeconds(n, p)) * time.Second
}
