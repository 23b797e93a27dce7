package risk

import "github.com/shopspring/decimal"

// DefaultHaircut applies to tickers missing from the haircut table.
const DefaultHaircut = 0.15

// MarginRequirement sums per-position margin as |notional| * haircut.
func MarginRequirement(positions []Position, haircuts map[string]float64, defaultHaircut float64) decimal.Decimal {
	req := decimal.Zero
	for _, p := range positions {
		hc, ok := haircuts[p.Ticker]
		if !ok {
			hc = defaultHaircut
		}
		req = req.Add(p.Notional().Abs().Mul(decimal.NewFromFloat(hc)))
	}
	return req
}

// LeverageRatio is gross notional over NAV, 0 when NAV is 0.
func LeverageRatio(positions []Position, nav decimal.Decimal) float64 {
	if nav.IsZero() {
		return 0.0
	}
	gross := decimal.Zero
	for _, p := range positions {
		gross = gross.Add(p.Notional().Abs())
	}
	return gross.Div(nav).InexactFloat64()
}
