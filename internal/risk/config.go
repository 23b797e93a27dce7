package risk

import "github.com/go-playground/validator/v10"

// LayerLimits holds the limit set evaluated at one layer. The same rule
// routine runs against progressively looser strategy, portfolio, and firm
// limits.
type LayerLimits struct {
	MaxPositionPct     float64            `json:"max_position_pct" mapstructure:"max_position_pct" validate:"gt=0,lte=1"`
	MaxGrossLeverage   float64            `json:"max_gross_leverage" mapstructure:"max_gross_leverage" validate:"gt=0"`
	MaxNetLeverage     float64            `json:"max_net_leverage" mapstructure:"max_net_leverage" validate:"gt=0"`
	SectorCaps         map[string]float64 `json:"sector_caps" mapstructure:"sector_caps" validate:"dive,gt=0,lte=1"`
	ConcentrationLimit float64            `json:"concentration_limit" mapstructure:"concentration_limit" validate:"gt=0,lte=1"`
	LiquidityBufferPct float64            `json:"liquidity_buffer_pct" mapstructure:"liquidity_buffer_pct" validate:"gte=0,lte=1"`
}

// Config is the immutable risk engine configuration: per-layer limits plus
// firm-wide margin haircuts, the stress-shock table, the VaR confidence
// level, and the pairwise correlation flag threshold.
type Config struct {
	StrategyLimits       LayerLimits        `json:"strategy_limits" mapstructure:"strategy_limits"`
	PortfolioLimits      LayerLimits        `json:"portfolio_limits" mapstructure:"portfolio_limits"`
	FirmLimits           LayerLimits        `json:"firm_limits" mapstructure:"firm_limits"`
	MarginHaircuts       map[string]float64 `json:"margin_haircuts" mapstructure:"margin_haircuts" validate:"dive,gte=0,lte=1"`
	StressShocks         map[string]float64 `json:"stress_shocks" mapstructure:"stress_shocks"`
	VarAlpha             float64            `json:"var_alpha" mapstructure:"var_alpha" validate:"gt=0,lt=1"`
	CorrelationThreshold float64            `json:"correlation_threshold" mapstructure:"correlation_threshold" validate:"gt=0,lte=1"`
}

var validate = validator.New()

// Validate reports malformed limits before the engine is constructed.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// DefaultConfig returns the stock three-layer limit set: each layer looser
// than the one inside it.
func DefaultConfig() Config {
	return Config{
		StrategyLimits: LayerLimits{
			MaxPositionPct:     0.05,
			MaxGrossLeverage:   2.0,
			MaxNetLeverage:     1.0,
			SectorCaps:         map[string]float64{"TECH": 0.3, "FIN": 0.25},
			ConcentrationLimit: 0.2,
			LiquidityBufferPct: 0.05,
		},
		PortfolioLimits: LayerLimits{
			MaxPositionPct:     0.07,
			MaxGrossLeverage:   2.5,
			MaxNetLeverage:     1.5,
			SectorCaps:         map[string]float64{"TECH": 0.35, "FIN": 0.3},
			ConcentrationLimit: 0.25,
			LiquidityBufferPct: 0.03,
		},
		FirmLimits: LayerLimits{
			MaxPositionPct:     0.1,
			MaxGrossLeverage:   3.0,
			MaxNetLeverage:     2.0,
			SectorCaps:         map[string]float64{},
			ConcentrationLimit: 0.3,
			LiquidityBufferPct: 0.02,
		},
		MarginHaircuts:       map[string]float64{},
		StressShocks:         map[string]float64{"SPY": -0.1},
		VarAlpha:             0.99,
		CorrelationThreshold: 0.8,
	}
}
