package tca

// PreTradeEstimate is the pre-trade cost forecast for one order: expected
// slippage and impact in bps, the chosen execution strategy, and the ordered
// per-slice participation schedule.
type PreTradeEstimate struct {
	ExpectedSlippageBps float64   `json:"expected_slippage_bps"`
	ExpectedImpactBps   float64   `json:"expected_impact_bps"`
	Strategy            string    `json:"strategy"`
	Schedule            []float64 `json:"schedule"`
}

// EstimateSlippage forecasts total slippage in bps as spread plus linear
// impact. Non-positive ADV falls back to spread only.
func EstimateSlippage(notional, adv, spreadBps, impactCoeff float64) float64 {
	if adv <= 0 {
		return spreadBps
	}
	return spreadBps + ImpactLinear(notional, adv, impactCoeff)
}

// BuildSchedule returns the per-slice participation schedule for a strategy:
// POV yields slices at the fixed participation rate, TWAP/VWAP yield equal
// 1/N slices.
func BuildSchedule(strategy string, slices int, povParticipation float64) []float64 {
	if slices <= 0 {
		return nil
	}
	schedule := make([]float64, slices)
	per := 1.0 / float64(slices)
	if strategy == "POV" {
		per = povParticipation
	}
	for i := range schedule {
		schedule[i] = per
	}
	return schedule
}

// PretradeEstimate combines the slippage forecast and schedule for one order.
// The spread estimate is looked up per ticker from cfg; use PretradeEstimateWithSpread
// when the caller has already resolved a live spread.
func PretradeEstimate(notional, adv float64, cfg Config, ticker string) PreTradeEstimate {
	return PretradeEstimateWithSpread(notional, adv, cfg.SpreadForTicker(ticker), cfg)
}

// PretradeEstimateWithSpread is PretradeEstimate with an explicit spread in bps.
func PretradeEstimateWithSpread(notional, adv, spreadBps float64, cfg Config) PreTradeEstimate {
	slippage := EstimateSlippage(notional, adv, spreadBps, cfg.Impact.ImpactCoefficient)
	return PreTradeEstimate{
		ExpectedSlippageBps: slippage,
		ExpectedImpactBps:   slippage - spreadBps,
		Strategy:            cfg.Strategy.Name,
		Schedule:            BuildSchedule(cfg.Strategy.Name, cfg.Strategy.Slices, cfg.Strategy.POVParticipation),
	}
}
