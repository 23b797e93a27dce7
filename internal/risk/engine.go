package risk

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aryannx/hf-sentiment-engine/internal/audit"
	"github.com/aryannx/hf-sentiment-engine/internal/metrics"
)

// Engine evaluates layered pre- and post-trade risk limits. CheckLimits is a
// pure function of its inputs apart from the best-effort audit append: no
// input is mutated and identical inputs yield identical results.
type Engine struct {
	cfg    Config
	logger *zap.Logger
	sink   audit.Appender
}

// CheckOptions carries the optional inputs to CheckLimits.
type CheckOptions struct {
	Strategy  string
	Portfolio string
	// FactorBetas maps factor -> ticker -> beta. Tickers missing from a
	// factor's mapping fall back to the position's own beta.
	FactorBetas map[string]map[string]float64
	// Returns maps ticker -> aligned historical return series for the
	// pairwise correlation check.
	Returns map[string][]float64
}

// NewEngine validates the configuration and constructs the engine. A nil
// sink disables auditing.
func NewEngine(cfg Config, logger *zap.Logger, sink audit.Appender) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid risk config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger, sink: sink}, nil
}

// ComputeExposure aggregates gross/net/long/short and beta-adjusted notional
// across the position set.
func (e *Engine) ComputeExposure(positions []Position, nav decimal.Decimal) Exposure {
	long := decimal.Zero
	short := decimal.Zero
	betaAdj := decimal.Zero
	for _, p := range positions {
		notional := p.Notional()
		if notional.IsPositive() {
			long = long.Add(notional)
		} else {
			short = short.Add(notional.Abs())
		}
		betaAdj = betaAdj.Add(notional.Mul(decimal.NewFromFloat(p.Beta)))
	}
	return Exposure{
		Gross:           long.Add(short),
		Net:             long.Sub(short),
		Long:            long,
		Short:           short,
		BetaAdjustedNet: betaAdj,
		NAV:             nav,
	}
}

// CheckLimits runs the layered limit checks plus the optional factor and
// correlation checks and aggregates the overall decision with block > warn >
// pass precedence. Per-layer severities stay visible on the breach list; the
// decision field deliberately collapses them.
func (e *Engine) CheckLimits(positions []Position, nav decimal.Decimal, opts CheckOptions) Result {
	if opts.Strategy == "" {
		opts.Strategy = "default"
	}
	if opts.Portfolio == "" {
		opts.Portfolio = "default"
	}

	exposure := e.ComputeExposure(positions, nav)

	var breaches []Breach
	breaches = append(breaches, e.checkLayer(exposure, positions, e.cfg.StrategyLimits, LayerStrategy)...)
	breaches = append(breaches, e.checkLayer(exposure, positions, e.cfg.PortfolioLimits, LayerPortfolio)...)
	breaches = append(breaches, e.checkLayer(exposure, positions, e.cfg.FirmLimits, LayerFirm)...)

	factorExp := map[string]float64{}
	if len(opts.FactorBetas) > 0 {
		factorExp = FactorExposures(positions, opts.FactorBetas, nav)
		factors := make([]string, 0, len(factorExp))
		for f := range factorExp {
			factors = append(factors, f)
		}
		sort.Strings(factors)
		for _, factor := range factors {
			exp := factorExp[factor]
			if exp > 1.0 || exp < -1.0 {
				breaches = append(breaches, Breach{
					Layer:    LayerFactor,
					Name:     "factor_" + factor,
					Severity: SeverityWarn,
					Message:  fmt.Sprintf("%s exposure %.2fx NAV", factor, exp),
				})
			}
		}
	}

	var corrFlags []CorrelationFlag
	if len(opts.Returns) > 0 {
		corrFlags = HighCorrelations(opts.Returns, e.cfg.CorrelationThreshold)
		for _, flag := range corrFlags {
			breaches = append(breaches, Breach{
				Layer:    LayerCorrelation,
				Name:     "pairwise_corr",
				Severity: SeverityWarn,
				Message: fmt.Sprintf("%s-%s correlation %.2f exceeds %.2f",
					flag.A, flag.B, flag.Corr, e.cfg.CorrelationThreshold),
			})
		}
	}

	decision := DecisionPass
	for _, b := range breaches {
		if b.Severity == SeverityBlock {
			decision = DecisionBlock
			break
		}
		decision = DecisionWarn
	}

	result := Result{
		Decision:         decision,
		Breaches:         breaches,
		Exposure:         exposure,
		FactorExposures:  factorExp,
		CorrelationFlags: corrFlags,
		Greeks:           AggregateGreeks(positions),
		Context:          map[string]string{"strategy": opts.Strategy, "portfolio": opts.Portfolio},
	}

	metrics.DecisionsTotal.WithLabelValues("risk", decision).Inc()
	for _, b := range breaches {
		metrics.BreachesTotal.WithLabelValues(b.Layer, b.Name).Inc()
	}
	e.logger.Debug("limit check",
		zap.String("strategy", opts.Strategy),
		zap.String("portfolio", opts.Portfolio),
		zap.String("decision", decision),
		zap.Int("breaches", len(breaches)))

	if e.sink != nil {
		e.sink.Append(map[string]any{
			"decision":  decision,
			"nav":       nav,
			"positions": positions,
			"config":    e.cfg,
			"breaches":  breaches,
			"exposure":  exposure,
			"context":   result.Context,
		})
	}

	return result
}

func (e *Engine) checkLayer(exposure Exposure, positions []Position, limits LayerLimits, layer string) []Breach {
	var breaches []Breach
	add := func(name, severity, msg string) {
		breaches = append(breaches, Breach{Layer: layer, Name: name, Severity: severity, Message: msg})
	}

	if exposure.GrossLeverage() > limits.MaxGrossLeverage {
		add("max_gross_leverage", SeverityBlock,
			fmt.Sprintf("Gross leverage %.2f > %.2f", exposure.GrossLeverage(), limits.MaxGrossLeverage))
	}
	if exposure.NetLeverage() > limits.MaxNetLeverage {
		add("max_net_leverage", SeverityWarn,
			fmt.Sprintf("Net leverage %.2f > %.2f", exposure.NetLeverage(), limits.MaxNetLeverage))
	}

	top := 0.0
	for _, p := range positions {
		pctNAV := 0.0
		if !exposure.NAV.IsZero() {
			pctNAV = p.Notional().Abs().Div(exposure.NAV).InexactFloat64()
		}
		if pctNAV > top {
			top = pctNAV
		}
		if pctNAV > limits.MaxPositionPct {
			add("max_position_pct", SeverityBlock,
				fmt.Sprintf("%s at %.2f%% > %.2f%%", p.Ticker, pctNAV*100, limits.MaxPositionPct*100))
		}
	}
	if len(positions) > 0 && top > limits.ConcentrationLimit {
		add("concentration_limit", SeverityWarn,
			fmt.Sprintf("Top position %.2f%% > %.2f%%", top*100, limits.ConcentrationLimit*100))
	}

	if len(limits.SectorCaps) > 0 {
		sectorNotional := map[string]decimal.Decimal{}
		for _, p := range positions {
			if p.Sector == "" {
				continue
			}
			sectorNotional[p.Sector] = sectorNotional[p.Sector].Add(p.Notional().Abs())
		}
		sectors := make([]string, 0, len(limits.SectorCaps))
		for s := range limits.SectorCaps {
			sectors = append(sectors, s)
		}
		sort.Strings(sectors)
		for _, sector := range sectors {
			pct := 0.0
			if !exposure.NAV.IsZero() {
				pct = sectorNotional[sector].Div(exposure.NAV).InexactFloat64()
			}
			if pct > limits.SectorCaps[sector] {
				add("sector_cap", SeverityWarn,
					fmt.Sprintf("Sector %s at %.2f%% > %.2f%%", sector, pct*100, limits.SectorCaps[sector]*100))
			}
		}
	}

	if limits.LiquidityBufferPct > 0 {
		needed := exposure.NAV.Mul(decimal.NewFromFloat(limits.LiquidityBufferPct))
		have := exposure.NAV.Sub(exposure.Gross)
		if have.LessThan(needed) {
			add("liquidity_buffer", SeverityWarn,
				fmt.Sprintf("Liquidity buffer short: need %s, have %s",
					needed.StringFixed(0), have.StringFixed(0)))
		}
	}

	return breaches
}
