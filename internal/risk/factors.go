package risk

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// FactorExposures computes beta-weighted notional per factor as a multiple of
// NAV. factorBetas maps factor -> ticker -> beta; tickers absent from a
// factor's mapping use the position's own beta. A zero NAV yields an empty
// map rather than dividing.
func FactorExposures(positions []Position, factorBetas map[string]map[string]float64, nav decimal.Decimal) map[string]float64 {
	exposures := map[string]float64{}
	if nav.IsZero() {
		return exposures
	}
	navF := nav.InexactFloat64()
	for factor, mapping := range factorBetas {
		betaNotional := 0.0
		for _, p := range positions {
			beta, ok := mapping[p.Ticker]
			if !ok {
				beta = p.Beta
			}
			betaNotional += p.Notional().InexactFloat64() * beta
		}
		exposures[factor] = betaNotional / navF
	}
	return exposures
}

// HighCorrelations returns ticker pairs whose absolute Pearson correlation
// meets or exceeds the threshold. Series are truncated to the shortest common
// length; pairs involving a zero-variance series are skipped rather than
// producing NaN. Output order is deterministic (sorted ticker pairs).
func HighCorrelations(returns map[string][]float64, threshold float64) []CorrelationFlag {
	if len(returns) < 2 {
		return nil
	}

	tickers := make([]string, 0, len(returns))
	for t := range returns {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var flags []CorrelationFlag
	for i := 0; i < len(tickers); i++ {
		for j := i + 1; j < len(tickers); j++ {
			corr, ok := pearson(returns[tickers[i]], returns[tickers[j]])
			if !ok {
				continue
			}
			if math.Abs(corr) >= threshold {
				flags = append(flags, CorrelationFlag{A: tickers[i], B: tickers[j], Corr: corr})
			}
		}
	}
	return flags
}

// pearson computes the sample correlation of two series truncated to their
// common length. ok is false for short or zero-variance input.
func pearson(a, b []float64) (float64, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0, false
	}

	meanA, meanB := 0.0, 0.0
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	cov, varA, varB := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varA*varB), true
}
