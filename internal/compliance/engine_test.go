package compliance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aryannx/hf-sentiment-engine/internal/audit"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	return engine
}

func TestEvaluateOrdersPassWithinLimits(t *testing.T) {
	engine := newTestEngine(t, Config{
		MaxPositions:     5,
		MaxSingleNamePct: 0.5,
		MaxGrossNotional: 1_000_000,
		MaxLeverage:      2.0,
		MaxTurnoverPct:   200.0,
	})

	orders := []OrderIntent{
		{Ticker: "AAPL", Notional: decimal.NewFromInt(100_000)},
		{Ticker: "MSFT", Notional: decimal.NewFromInt(100_000)},
	}
	res := engine.EvaluateOrders(orders, decimal.NewFromInt(500_000))

	assert.Equal(t, DecisionPass, res.Decision)
	for _, r := range res.Results {
		assert.True(t, r.Passed)
	}
}

func TestEvaluateOrdersBlocksSingleName(t *testing.T) {
	engine := newTestEngine(t, Config{
		MaxPositions:     5,
		MaxSingleNamePct: 0.1,
		MaxGrossNotional: 1_000_000,
		MaxLeverage:      2.0,
		MaxTurnoverPct:   200.0,
	})

	orders := []OrderIntent{{Ticker: "AAPL", Notional: decimal.NewFromInt(200_000)}}
	res := engine.EvaluateOrders(orders, decimal.NewFromInt(500_000))

	assert.Equal(t, DecisionBlock, res.Decision)
	found := false
	for _, r := range res.Results {
		if r.Name == "max_single_name_pct" {
			found = true
			assert.False(t, r.Passed)
			assert.Equal(t, SeverityBlock, r.Severity)
		}
	}
	assert.True(t, found, "expected a max_single_name_pct failure")
}

func TestEvaluateOrdersBlocksPositionCount(t *testing.T) {
	engine := newTestEngine(t, Config{
		MaxPositions:     2,
		MaxSingleNamePct: 0.5,
		MaxGrossNotional: 1_000_000,
		MaxLeverage:      2.0,
		MaxTurnoverPct:   200.0,
	})

	orders := []OrderIntent{
		{Ticker: "AAPL", Notional: decimal.NewFromInt(10_000)},
		{Ticker: "MSFT", Notional: decimal.NewFromInt(10_000)},
		{Ticker: "GOOGL", Notional: decimal.NewFromInt(10_000)},
	}
	res := engine.EvaluateOrders(orders, decimal.NewFromInt(100_000))

	assert.Equal(t, DecisionBlock, res.Decision)
	found := false
	for _, r := range res.Results {
		if r.Name == "max_positions" && !r.Passed {
			found = true
		}
	}
	assert.True(t, found, "expected a max_positions failure")
}

func TestEvaluateOrdersBlocksGrossNotional(t *testing.T) {
	engine := newTestEngine(t, Config{
		MaxPositions:     10,
		MaxSingleNamePct: 0.9,
		MaxGrossNotional: 100_000,
		MaxLeverage:      2.0,
		MaxTurnoverPct:   200.0,
	})

	orders := []OrderIntent{
		{Ticker: "AAPL", Notional: decimal.NewFromInt(80_000)},
		{Ticker: "MSFT", Notional: decimal.NewFromInt(80_000)},
	}
	res := engine.EvaluateOrders(orders, decimal.NewFromInt(1_000_000))

	assert.Equal(t, DecisionBlock, res.Decision)
}

func TestEvaluateUniverseEqualSlices(t *testing.T) {
	engine := newTestEngine(t, Config{
		MaxPositions:     25,
		MaxSingleNamePct: 0.5,
		MaxGrossNotional: 1_000_000,
		MaxLeverage:      2.0,
		MaxTurnoverPct:   200.0,
	})

	res := engine.EvaluateUniverse([]string{"AAPL", "MSFT", "", "GOOGL"}, decimal.NewFromInt(90_000))
	assert.Equal(t, DecisionPass, res.Decision)

	empty := engine.EvaluateUniverse(nil, decimal.NewFromInt(90_000))
	assert.Equal(t, DecisionPass, empty.Decision)
	assert.Empty(t, empty.Results)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPositions = 0

	_, err := NewEngine(cfg, nil, nil)
	assert.Error(t, err)
}

func TestEvaluateOrdersSurvivesUnwritableAuditDir(t *testing.T) {
	// Point the sink's directory at a regular file so every append fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	sink := audit.NewSink(filepath.Join(blocker, "compliance"), "compliance", zaptest.NewLogger(t))
	engine, err := NewEngine(DefaultConfig(), zaptest.NewLogger(t), sink)
	require.NoError(t, err)

	orders := []OrderIntent{{Ticker: "AAPL", Notional: decimal.NewFromInt(50_000)}}
	assert.NotPanics(t, func() {
		res := engine.EvaluateOrders(orders, decimal.NewFromInt(500_000))
		assert.Equal(t, DecisionPass, res.Decision)
	})
}

func TestEvaluateOrdersWritesAuditRecord(t *testing.T) {
	dir := t.TempDir()
	sink := audit.NewSink(dir, "compliance", zaptest.NewLogger(t))
	engine, err := NewEngine(DefaultConfig(), zaptest.NewLogger(t), sink)
	require.NoError(t, err)

	engine.EvaluateOrders([]OrderIntent{{Ticker: "AAPL", Notional: decimal.NewFromInt(1_000)}}, decimal.NewFromInt(100_000))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "compliance_")
	assert.Contains(t, entries[0].Name(), ".jsonl")
}
