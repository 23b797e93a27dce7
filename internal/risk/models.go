package risk

import "github.com/shopspring/decimal"

// Severity levels for breaches and the decision field precedence.
const (
	SeverityBlock = "block"
	SeverityWarn  = "warn"

	DecisionPass  = "pass"
	DecisionWarn  = "warn"
	DecisionBlock = "block"
)

// Breach layers.
const (
	LayerStrategy    = "strategy"
	LayerPortfolio   = "portfolio"
	LayerFirm        = "firm"
	LayerFactor      = "factor"
	LayerCorrelation = "correlation"
)

// Position is an immutable snapshot of one holding as presented to the risk
// engine. It is constructed fresh per evaluation and never persisted.
type Position struct {
	Ticker string          `json:"ticker"`
	Qty    decimal.Decimal `json:"qty"`
	Price  decimal.Decimal `json:"price"`
	Sector string          `json:"sector,omitempty"`
	Beta   float64         `json:"beta"`
	Delta  float64         `json:"delta"`
	Gamma  float64         `json:"gamma"`
	Vega   float64         `json:"vega"`
}

// NewPosition builds a position with the default beta of 1 and zero greeks.
func NewPosition(ticker string, qty, price decimal.Decimal) Position {
	return Position{Ticker: ticker, Qty: qty, Price: price, Beta: 1.0}
}

// Notional is qty * price in portfolio currency.
func (p Position) Notional() decimal.Decimal {
	return p.Qty.Mul(p.Price)
}

// Exposure aggregates notional across a position set. Computed fresh each
// call and never mutated.
type Exposure struct {
	Gross           decimal.Decimal `json:"gross"`
	Net             decimal.Decimal `json:"net"`
	Long            decimal.Decimal `json:"long"`
	Short           decimal.Decimal `json:"short"`
	BetaAdjustedNet decimal.Decimal `json:"beta_adjusted_net"`
	NAV             decimal.Decimal `json:"nav"`
}

// GrossLeverage is gross / NAV, 0 when NAV is 0.
func (e Exposure) GrossLeverage() float64 {
	if e.NAV.IsZero() {
		return 0.0
	}
	return e.Gross.Div(e.NAV).InexactFloat64()
}

// NetLeverage is |net| / NAV, 0 when NAV is 0.
func (e Exposure) NetLeverage() float64 {
	if e.NAV.IsZero() {
		return 0.0
	}
	return e.Net.Abs().Div(e.NAV).InexactFloat64()
}

// Breach records one limit violation. Produced, never mutated.
type Breach struct {
	Layer    string `json:"layer"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Greeks is the aggregate option sensitivity across a position set.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
}

// AggregateGreeks sums delta/gamma/vega across positions. Greeks are
// aggregated only, not modeled.
func AggregateGreeks(positions []Position) Greeks {
	var g Greeks
	for _, p := range positions {
		g.Delta += p.Delta
		g.Gamma += p.Gamma
		g.Vega += p.Vega
	}
	return g
}

// CorrelationFlag records one ticker pair whose absolute return correlation
// exceeded the configured threshold.
type CorrelationFlag struct {
	A    string  `json:"a"`
	B    string  `json:"b"`
	Corr float64 `json:"corr"`
}

// Result is the aggregate decision record returned by CheckLimits.
type Result struct {
	Decision         string             `json:"decision"`
	Breaches         []Breach           `json:"breaches"`
	Exposure         Exposure           `json:"exposure"`
	FactorExposures  map[string]float64 `json:"factor_exposures"`
	CorrelationFlags []CorrelationFlag  `json:"correlation_flags"`
	Greeks           Greeks             `json:"greeks"`
	Context          map[string]string  `json:"context"`
}
