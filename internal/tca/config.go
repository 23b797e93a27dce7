package tca

import "github.com/go-playground/validator/v10"

// StrategyConfig selects the execution schedule shape.
type StrategyConfig struct {
	Name             string  `json:"name" mapstructure:"name" validate:"oneof=TWAP VWAP POV"`
	Slices           int     `json:"slices" mapstructure:"slices" validate:"gt=0"`
	POVParticipation float64 `json:"pov_participation" mapstructure:"pov_participation" validate:"gt=0,lte=1"`
}

// ImpactModel parameterizes the linear market-impact estimate.
type ImpactModel struct {
	BaseBps           float64 `json:"base_bps" mapstructure:"base_bps" validate:"gte=0"`
	ADVFloor          float64 `json:"adv_floor" mapstructure:"adv_floor" validate:"gt=0"`
	ImpactCoefficient float64 `json:"impact_coefficient" mapstructure:"impact_coefficient" validate:"gte=0"`
}

// Config holds transaction-cost model parameters: spread estimates, the
// impact model, the execution strategy, and the venue table used when the
// simulator routes venues.
type Config struct {
	DefaultSpreadBps  float64            `json:"default_spread_bps" mapstructure:"default_spread_bps" validate:"gte=0"`
	SpreadBpsByTicker map[string]float64 `json:"spread_bps_by_ticker" mapstructure:"spread_bps_by_ticker"`
	Impact            ImpactModel        `json:"impact" mapstructure:"impact"`
	Strategy          StrategyConfig     `json:"strategy" mapstructure:"strategy"`
	// Venues maps venue name to routing weight.
	Venues         map[string]float64 `json:"venues" mapstructure:"venues" validate:"dive,gte=0"`
	VenueLatencyMs map[string]float64 `json:"venue_latency_ms" mapstructure:"venue_latency_ms"`
}

// DefaultConfig mirrors the stock demo parameters: 5 bps spreads, a 4-slice
// TWAP, and a 70/30 lit/dark venue split.
func DefaultConfig() Config {
	return Config{
		DefaultSpreadBps:  5.0,
		SpreadBpsByTicker: map[string]float64{},
		Impact: ImpactModel{
			BaseBps:           5.0,
			ADVFloor:          1_000_000.0,
			ImpactCoefficient: 0.5,
		},
		Strategy: StrategyConfig{
			Name:             "TWAP",
			Slices:           4,
			POVParticipation: 0.1,
		},
		Venues: map[string]float64{"LIT": 0.7, "DARK": 0.3},
		VenueLatencyMs: map[string]float64{
			"LIT":    5.0,
			"DARK":   15.0,
			"ALPACA": 10.0,
			"IBKR":   7.0,
		},
	}
}

var validate = validator.New()

// Validate reports malformed configuration before any estimator runs.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// SpreadForTicker returns the per-ticker spread estimate, falling back to the
// configured default.
func (c Config) SpreadForTicker(ticker string) float64 {
	if bps, ok := c.SpreadBpsByTicker[ticker]; ok {
		return bps
	}
	return c.DefaultSpreadBps
}
