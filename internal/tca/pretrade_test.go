package tca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateSlippageScalesWithADV(t *testing.T) {
	cfg := DefaultConfig()
	spread := cfg.DefaultSpreadBps

	lowADV := EstimateSlippage(1_000_000, 2_000_000, spread, cfg.Impact.ImpactCoefficient)
	highADV := EstimateSlippage(1_000_000, 10_000_000, spread, cfg.Impact.ImpactCoefficient)

	assert.Greater(t, lowADV, highADV)
}

func TestEstimateSlippageSpreadOnlyForZeroADV(t *testing.T) {
	assert.Equal(t, 5.0, EstimateSlippage(1_000_000, 0, 5.0, 0.5))
	assert.Equal(t, 5.0, EstimateSlippage(1_000_000, -1, 5.0, 0.5))
}

func TestPretradeEstimateBuildsSchedule(t *testing.T) {
	cfg := DefaultConfig()

	est := PretradeEstimate(500_000, 5_000_000, cfg, "AAPL")

	require.Len(t, est.Schedule, cfg.Strategy.Slices)
	assert.Greater(t, est.ExpectedSlippageBps, 0.0)
	assert.Equal(t, "TWAP", est.Strategy)
	for _, slice := range est.Schedule {
		assert.InDelta(t, 0.25, slice, 1e-9)
	}
}

func TestBuildSchedulePOV(t *testing.T) {
	schedule := BuildSchedule("POV", 3, 0.1)
	require.Len(t, schedule, 3)
	for _, slice := range schedule {
		assert.InDelta(t, 0.1, slice, 1e-9)
	}

	assert.Nil(t, BuildSchedule("TWAP", 0, 0.1))
}

func TestSpreadForTicker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpreadBpsByTicker = map[string]float64{"ILLQ": 25.0}

	assert.Equal(t, 25.0, cfg.SpreadForTicker("ILLQ"))
	assert.Equal(t, cfg.DefaultSpreadBps, cfg.SpreadForTicker("AAPL"))
}
