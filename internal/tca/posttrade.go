package tca

// SideBuy/SideSell match the order sides used by the execution simulator.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// FillSample is the slice of an executed fill the post-trade model needs.
type FillSample struct {
	Venue string  `json:"venue"`
	Qty   float64 `json:"qty"`
	Px    float64 `json:"px"`
}

// PostTradeMetrics is the realized-cost report for one executed order.
// VenueAttribution maps venue to quantity-weighted average arrival slippage;
// it is empty when there were no fills.
type PostTradeMetrics struct {
	ArrivalSlippageBps         float64            `json:"arrival_slippage_bps"`
	VWAPSlippageBps            float64            `json:"vwap_slippage_bps"`
	ImplementationShortfallBps float64            `json:"implementation_shortfall_bps"`
	VenueAttribution           map[string]float64 `json:"venue_attribution"`
}

// ArrivalSlippage reports execution cost vs. the arrival price in bps, signed
// so that a worse-than-arrival fill is positive for both sides.
func ArrivalSlippage(execPx, arrivalPx float64, side string) float64 {
	if arrivalPx == 0 {
		return 0.0
	}
	bps := (execPx - arrivalPx) / arrivalPx * 10_000
	if side == SideSell {
		return -bps
	}
	return bps
}

// VWAPSlippage is the same cost measure against a VWAP benchmark.
func VWAPSlippage(execPx, vwapPx float64, side string) float64 {
	return ArrivalSlippage(execPx, vwapPx, side)
}

// ImplementationShortfall equals arrival slippage under this model: the
// decision price is taken to be the arrival price.
func ImplementationShortfall(avgExecPx, arrivalPx float64, side string) float64 {
	return ArrivalSlippage(avgExecPx, arrivalPx, side)
}

// VenueAttribution computes per-venue quantity-weighted average arrival
// slippage across fills.
func VenueAttribution(fills []FillSample, arrivalPx float64, side string) map[string]float64 {
	totals := make(map[string]float64)
	qtys := make(map[string]float64)
	for _, f := range fills {
		slip := ArrivalSlippage(f.Px, arrivalPx, side)
		totals[f.Venue] += slip * f.Qty
		qtys[f.Venue] += f.Qty
	}
	out := make(map[string]float64, len(totals))
	for venue, total := range totals {
		if qtys[venue] != 0 {
			out[venue] = total / qtys[venue]
		}
	}
	return out
}

// PosttradeMetrics compares the quantity-weighted average executed price with
// the arrival and VWAP benchmarks. A zero VWAP benchmark falls back to the
// arrival price. No fills yields zero metrics and an empty attribution map.
func PosttradeMetrics(fills []FillSample, arrivalPx, vwapPx float64, side string) PostTradeMetrics {
	if len(fills) == 0 {
		return PostTradeMetrics{VenueAttribution: map[string]float64{}}
	}

	totalQty := 0.0
	weighted := 0.0
	for _, f := range fills {
		totalQty += f.Qty
		weighted += f.Px * f.Qty
	}
	if totalQty == 0 {
		return PostTradeMetrics{VenueAttribution: map[string]float64{}}
	}
	avgExec := weighted / totalQty

	if vwapPx == 0 {
		vwapPx = arrivalPx
	}

	return PostTradeMetrics{
		ArrivalSlippageBps:         ArrivalSlippage(avgExec, arrivalPx, side),
		VWAPSlippageBps:            VWAPSlippage(avgExec, vwapPx, side),
		ImplementationShortfallBps: ImplementationShortfall(avgExec, arrivalPx, side),
		VenueAttribution:           VenueAttribution(fills, arrivalPx, side),
	}
}
