package oms

import "github.com/go-playground/validator/v10"

// ExecutionConfig controls the simulated fill process. Seed makes runs
// reproducible: identical (order, config, seed) inputs produce identical
// fills.
type ExecutionConfig struct {
	SlippageBps     float64 `json:"slippage_bps" mapstructure:"slippage_bps" validate:"gte=0"`
	PartialFillProb float64 `json:"partial_fill_prob" mapstructure:"partial_fill_prob" validate:"gte=0,lte=1"`
	MaxPartials     int     `json:"max_partials" mapstructure:"max_partials" validate:"gte=0"`
	Venue           string  `json:"venue" mapstructure:"venue" validate:"required"`
	Seed            int64   `json:"seed" mapstructure:"seed"`
	RouteVenues     bool    `json:"route_venues" mapstructure:"route_venues"`
}

var validate = validator.New()

// Validate reports malformed configuration before a simulator is constructed.
func (c ExecutionConfig) Validate() error {
	return validate.Struct(c)
}

// DefaultExecutionConfig is deterministic by default: fixed seed, 5 bps
// slippage, a 20% partial-fill chance with a budget of two partials.
func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		SlippageBps:     5.0,
		PartialFillProb: 0.2,
		MaxPartials:     2,
		Venue:           "SIM",
		Seed:            42,
	}
}
