package tca

// SpreadBps converts a bid/ask quote into a spread in basis points of mid.
// A degenerate mid of zero yields 0.
func SpreadBps(bid, ask float64) float64 {
	mid := (bid + ask) / 2
	if mid == 0 {
		return 0.0
	}
	return (ask - bid) / mid * 10_000
}

// ImpactLinear estimates market impact in bps as a linear function of
// participation (notional / ADV). Non-positive ADV yields 0.
func ImpactLinear(notional, adv, coefficient float64) float64 {
	if adv <= 0 {
		return 0.0
	}
	participation := notional / adv
	return coefficient * participation * 100 // bps per % of ADV
}

// DepthScore expresses traded volume as a fraction of ADV.
func DepthScore(volume, adv float64) float64 {
	if adv == 0 {
		return 0.0
	}
	return volume / adv
}
