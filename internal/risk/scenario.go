package risk

import (
	"math"
	"sort"
)

// CrisisShocks are stock per-ticker shock templates (fractional moves).
var CrisisShocks = map[string]map[string]float64{
	"gfc_2008":   {"SPY": -0.35, "QQQ": -0.4, "LQD": -0.1, "HYG": -0.2},
	"covid_2020": {"SPY": -0.3, "QQQ": -0.28, "LQD": -0.08, "HYG": -0.18},
}

// ScenarioResult is the PnL impact of one named shock scenario.
type ScenarioResult struct {
	Name string  `json:"name"`
	PnL  float64 `json:"pnl"`
}

// ShockPositions applies fractional per-ticker shocks and returns the PnL
// impact. Tickers without a shock contribute zero.
func ShockPositions(positions []Position, shocks map[string]float64) float64 {
	pnl := 0.0
	for _, p := range positions {
		pnl += p.Notional().InexactFloat64() * shocks[p.Ticker]
	}
	return pnl
}

// RunScenarios evaluates each named shock table against the positions.
// Results come back sorted by scenario name.
func RunScenarios(positions []Position, scenarios map[string]map[string]float64) []ScenarioResult {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]ScenarioResult, 0, len(names))
	for _, name := range names {
		results = append(results, ScenarioResult{Name: name, PnL: ShockPositions(positions, scenarios[name])})
	}
	return results
}

// ApplyCrisisScenarios runs the built-in crisis templates.
func ApplyCrisisScenarios(positions []Position) []ScenarioResult {
	return RunScenarios(positions, CrisisShocks)
}

// ParametricVaR is the mean-minus-z-sigma loss estimate. Empty input yields 0.
func ParametricVaR(returns []float64, alpha float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(returns)))

	z := 1.65
	if alpha == 0.99 {
		z = 2.33
	}
	return -(mean - z*std)
}

// HistoricalVaR is the empirical (1-alpha) quantile loss. Empty input yields 0.
func HistoricalVaR(returns []float64, alpha float64) float64 {
	if len(returns) == 0 {
		return 0.0
	}
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)

	// Linear-interpolated percentile at (1-alpha).
	rank := (1 - alpha) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	frac := rank - float64(lo)
	return -(sorted[lo] + frac*(sorted[hi]-sorted[lo]))
}
