package compliance

import "github.com/go-playground/validator/v10"

// Severity and decision values shared by all rules.
const (
	SeverityBlock = "block"
	SeverityWarn  = "warn"

	DecisionPass  = "pass"
	DecisionBlock = "block"
)

// Config is the immutable compliance rule configuration.
type Config struct {
	MaxPositions     int     `json:"max_positions" mapstructure:"max_positions" validate:"gt=0"`
	MaxSingleNamePct float64 `json:"max_single_name_pct" mapstructure:"max_single_name_pct" validate:"gt=0,lte=1"`
	MaxGrossNotional float64 `json:"max_gross_notional" mapstructure:"max_gross_notional" validate:"gt=0"`
	MaxLeverage      float64 `json:"max_leverage" mapstructure:"max_leverage" validate:"gt=0"`
	MaxTurnoverPct   float64 `json:"max_turnover_pct" mapstructure:"max_turnover_pct" validate:"gt=0"`
}

var validate = validator.New()

// Validate reports malformed configuration before the engine is constructed.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// DefaultConfig is conservative but non-blocking for typical demo sizes.
func DefaultConfig() Config {
	return Config{
		MaxPositions:     25,
		MaxSingleNamePct: 0.10,
		MaxGrossNotional: 1_000_000.0,
		MaxLeverage:      2.0,
		MaxTurnoverPct:   200.0,
	}
}

// RuleResult records one rule evaluation. Details carries structured values
// for the audit trail.
type RuleResult struct {
	Name     string         `json:"name"`
	Passed   bool           `json:"passed"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}
