// Package config loads and validates the engine configuration from YAML
// files and ENGINE_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/aryannx/hf-sentiment-engine/internal/compliance"
	"github.com/aryannx/hf-sentiment-engine/internal/oms"
	"github.com/aryannx/hf-sentiment-engine/internal/risk"
	"github.com/aryannx/hf-sentiment-engine/internal/tca"
)

// Config is the full engine configuration. Loaded once and treated as
// immutable afterwards.
type Config struct {
	LogLevel string `json:"log_level" mapstructure:"log_level"`
	// AuditDir is the root under which per-component audit directories
	// (compliance, oms, risk) are created.
	AuditDir   string              `json:"audit_dir" mapstructure:"audit_dir"`
	Risk       risk.Config         `json:"risk" mapstructure:"risk"`
	Compliance compliance.Config   `json:"compliance" mapstructure:"compliance"`
	Execution  oms.ExecutionConfig `json:"execution" mapstructure:"execution"`
	TCA        tca.Config          `json:"tca" mapstructure:"tca"`
}

// Default returns the stock configuration used when no file overrides it.
func Default() Config {
	return Config{
		LogLevel:   "info",
		AuditDir:   "logs",
		Risk:       risk.DefaultConfig(),
		Compliance: compliance.DefaultConfig(),
		Execution:  oms.DefaultExecutionConfig(),
		TCA:        tca.DefaultConfig(),
	}
}

// Validate fails fast on any malformed section, before construction of any
// engine and before any audit side effect.
func (c Config) Validate() error {
	if err := c.Risk.Validate(); err != nil {
		return fmt.Errorf("risk: %w", err)
	}
	if err := c.Compliance.Validate(); err != nil {
		return fmt.Errorf("compliance: %w", err)
	}
	if err := c.Execution.Validate(); err != nil {
		return fmt.Errorf("execution: %w", err)
	}
	if err := c.TCA.Validate(); err != nil {
		return fmt.Errorf("tca: %w", err)
	}
	return nil
}

// Load reads the YAML file at path (optional; empty path loads defaults and
// environment only), applies ENGINE_ environment overrides, and validates
// the result. Every scalar key is registered with viper up front; AutomaticEnv
// only matches keys viper already knows about.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	registerDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Environment values arrive as strings; decode them weakly.
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// registerDefaults declares the scalar key tree so environment overrides
// resolve. Map-valued settings are left to the struct defaults: viper
// lowercases map keys, which would mangle ticker, sector, and venue names.
func registerDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("audit_dir", d.AuditDir)

	registerLayerDefaults(v, "risk.strategy_limits", d.Risk.StrategyLimits)
	registerLayerDefaults(v, "risk.portfolio_limits", d.Risk.PortfolioLimits)
	registerLayerDefaults(v, "risk.firm_limits", d.Risk.FirmLimits)
	v.SetDefault("risk.var_alpha", d.Risk.VarAlpha)
	v.SetDefault("risk.correlation_threshold", d.Risk.CorrelationThreshold)

	v.SetDefault("compliance.max_positions", d.Compliance.MaxPositions)
	v.SetDefault("compliance.max_single_name_pct", d.Compliance.MaxSingleNamePct)
	v.SetDefault("compliance.max_gross_notional", d.Compliance.MaxGrossNotional)
	v.SetDefault("compliance.max_leverage", d.Compliance.MaxLeverage)
	v.SetDefault("compliance.max_turnover_pct", d.Compliance.MaxTurnoverPct)

	v.SetDefault("execution.slippage_bps", d.Execution.SlippageBps)
	v.SetDefault("execution.partial_fill_prob", d.Execution.PartialFillProb)
	v.SetDefault("execution.max_partials", d.Execution.MaxPartials)
	v.SetDefault("execution.venue", d.Execution.Venue)
	v.SetDefault("execution.seed", d.Execution.Seed)
	v.SetDefault("execution.route_venues", d.Execution.RouteVenues)

	v.SetDefault("tca.default_spread_bps", d.TCA.DefaultSpreadBps)
	v.SetDefault("tca.impact.base_bps", d.TCA.Impact.BaseBps)
	v.SetDefault("tca.impact.adv_floor", d.TCA.Impact.ADVFloor)
	v.SetDefault("tca.impact.impact_coefficient", d.TCA.Impact.ImpactCoefficient)
	v.SetDefault("tca.strategy.name", d.TCA.Strategy.Name)
	v.SetDefault("tca.strategy.slices", d.TCA.Strategy.Slices)
	v.SetDefault("tca.strategy.pov_participation", d.TCA.Strategy.POVParticipation)
}

func registerLayerDefaults(v *viper.Viper, prefix string, l risk.LayerLimits) {
	v.SetDefault(prefix+".max_position_pct", l.MaxPositionPct)
	v.SetDefault(prefix+".max_gross_leverage", l.MaxGrossLeverage)
	v.SetDefault(prefix+".max_net_leverage", l.MaxNetLeverage)
	v.SetDefault(prefix+".concentration_limit", l.ConcentrationLimit)
	v.SetDefault(prefix+".liquidity_buffer_pct", l.LiquidityBufferPct)
}
