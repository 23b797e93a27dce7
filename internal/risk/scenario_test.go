package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShockPositions(t *testing.T) {
	positions := []Position{
		NewPosition("SPY", decimal.NewFromInt(10), decimal.NewFromInt(100)),
		NewPosition("TLT", decimal.NewFromInt(5), decimal.NewFromInt(100)),
	}
	pnl := ShockPositions(positions, map[string]float64{"SPY": -0.1})
	assert.InDelta(t, -100.0, pnl, 1e-9)
}

func TestRunScenariosSortedByName(t *testing.T) {
	positions := []Position{NewPosition("SPY", decimal.NewFromInt(10), decimal.NewFromInt(100))}
	results := RunScenarios(positions, map[string]map[string]float64{
		"b_shock": {"SPY": -0.2},
		"a_shock": {"SPY": -0.1},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "a_shock", results[0].Name)
	assert.InDelta(t, -100.0, results[0].PnL, 1e-9)
	assert.Equal(t, "b_shock", results[1].Name)
	assert.InDelta(t, -200.0, results[1].PnL, 1e-9)
}

func TestParametricVaR(t *testing.T) {
	assert.Equal(t, 0.0, ParametricVaR(nil, 0.99))

	returns := []float64{0.01, -0.02, 0.005, -0.01, 0.0}
	v := ParametricVaR(returns, 0.99)
	assert.Greater(t, v, 0.0)

	// 99% uses a bigger z than 95%.
	assert.Greater(t, v, ParametricVaR(returns, 0.95))
}

func TestHistoricalVaR(t *testing.T) {
	assert.Equal(t, 0.0, HistoricalVaR(nil, 0.99))

	returns := []float64{-0.05, -0.01, 0.0, 0.01, 0.02}
	v := HistoricalVaR(returns, 0.99)
	assert.Greater(t, v, 0.0)
	assert.LessOrEqual(t, v, 0.05+1e-9)
}

func TestMarginRequirement(t *testing.T) {
	positions := []Position{
		NewPosition("AAPL", decimal.NewFromInt(10), decimal.NewFromInt(100)), // 1000
		NewPosition("MSFT", decimal.NewFromInt(-5), decimal.NewFromInt(100)), // -500
	}
	haircuts := map[string]float64{"AAPL": 0.1}

	req := MarginRequirement(positions, haircuts, DefaultHaircut)
	// 1000*0.10 + 500*0.15
	assert.True(t, req.Equal(decimal.NewFromInt(175)), "got %s", req)
}

func TestLeverageRatio(t *testing.T) {
	positions := []Position{
		NewPosition("AAPL", decimal.NewFromInt(10), decimal.NewFromInt(100)),
		NewPosition("MSFT", decimal.NewFromInt(-5), decimal.NewFromInt(100)),
	}
	assert.InDelta(t, 1.5, LeverageRatio(positions, decimal.NewFromInt(1000)), 1e-9)
	assert.Equal(t, 0.0, LeverageRatio(positions, decimal.Zero))
}

func TestHighCorrelationsSkipsZeroVariance(t *testing.T) {
	returns := map[string][]float64{
		"AAPL": {0.01, 0.02, 0.03},
		"FLAT": {0.0, 0.0, 0.0},
	}
	assert.Empty(t, HighCorrelations(returns, 0.5))
}

func TestFactorExposuresZeroNAV(t *testing.T) {
	positions := []Position{NewPosition("AAPL", decimal.NewFromInt(1), decimal.NewFromInt(100))}
	betas := map[string]map[string]float64{"mkt": {"AAPL": 1.0}}
	assert.Empty(t, FactorExposures(positions, betas, decimal.Zero))
}
