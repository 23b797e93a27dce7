package tca

import "time"

// Bar is one price/volume observation supplied by a market-data collaborator.
// The estimators never fetch bars themselves.
type Bar struct {
	Ts     time.Time `json:"ts"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is one bid/ask observation.
type Quote struct {
	Ts  time.Time `json:"ts"`
	Bid float64   `json:"bid"`
	Ask float64   `json:"ask"`
}

// ADVFromBars estimates average dollar volume over the trailing window.
// Empty input yields 0.
func ADVFromBars(bars []Bar, window int) float64 {
	if len(bars) == 0 || window <= 0 {
		return 0.0
	}
	if window > len(bars) {
		window = len(bars)
	}
	total := 0.0
	for _, b := range bars[len(bars)-window:] {
		total += b.Close * b.Volume
	}
	return total / float64(window)
}

// SpreadFromQuotes estimates the average spread in bps over the trailing
// window, skipping quotes with a zero mid.
func SpreadFromQuotes(quotes []Quote, window int) float64 {
	if len(quotes) == 0 || window <= 0 {
		return 0.0
	}
	if window > len(quotes) {
		window = len(quotes)
	}
	total := 0.0
	count := 0
	for _, q := range quotes[len(quotes)-window:] {
		bps := SpreadBps(q.Bid, q.Ask)
		if bps == 0 && q.Bid == 0 && q.Ask == 0 {
			continue
		}
		total += bps
		count++
	}
	if count == 0 {
		return 0.0
	}
	return total / float64(count)
}

// VWAPFromBars computes the volume-weighted average close over all bars.
// Zero total volume yields 0.
func VWAPFromBars(bars []Bar) float64 {
	num := 0.0
	vol := 0.0
	for _, b := range bars {
		num += b.Close * b.Volume
		vol += b.Volume
	}
	if vol == 0 {
		return 0.0
	}
	return num / vol
}
