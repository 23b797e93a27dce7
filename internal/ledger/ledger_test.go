package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aryannx/hf-sentiment-engine/internal/oms"
)

func makeFill(ticker, side string, qty, px int64) oms.Fill {
	return oms.Fill{
		OrderID: "o1",
		FillID:  "f1",
		Ticker:  ticker,
		Side:    side,
		Qty:     decimal.NewFromInt(qty),
		Px:      decimal.NewFromInt(px),
		Ts:      time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Venue:   "SIM",
	}
}

func TestBuyThenSellRealizesPnL(t *testing.T) {
	l := NewPositionLedger(decimal.NewFromInt(1000), zaptest.NewLogger(t))

	l.ApplyFill(makeFill("AAPL", oms.OrderSideBuy, 5, 10))
	assert.True(t, l.Position("AAPL").Qty.Equal(decimal.NewFromInt(5)))
	assert.True(t, l.Cash().Equal(decimal.NewFromInt(950)), "got %s", l.Cash())

	l.ApplyFill(makeFill("AAPL", oms.OrderSideSell, 5, 12))
	assert.True(t, l.Position("AAPL").Qty.IsZero())
	assert.True(t, l.RealizedPnL().Equal(decimal.NewFromInt(10)), "got %s", l.RealizedPnL())
	assert.True(t, l.Cash().Equal(decimal.NewFromInt(1010)))
}

func TestBuyReaveragesCost(t *testing.T) {
	l := NewPositionLedger(decimal.NewFromInt(10_000), zaptest.NewLogger(t))

	l.ApplyFill(makeFill("AAPL", oms.OrderSideBuy, 10, 100))
	l.ApplyFill(makeFill("AAPL", oms.OrderSideBuy, 5, 110))

	pos := l.Position("AAPL")
	assert.True(t, pos.Qty.Equal(decimal.NewFromInt(15)))
	// (100*10 + 110*5) / 15
	want := decimal.NewFromInt(1550).Div(decimal.NewFromInt(15))
	assert.True(t, pos.AvgPx.Equal(want), "got %s", pos.AvgPx)
}

func TestOverSellOpensImplicitShort(t *testing.T) {
	l := NewPositionLedger(decimal.NewFromInt(1000), zaptest.NewLogger(t))

	l.ApplyFill(makeFill("AAPL", oms.OrderSideBuy, 3, 10))
	l.ApplyFill(makeFill("AAPL", oms.OrderSideSell, 5, 12))

	pos := l.Position("AAPL")
	assert.True(t, pos.Qty.Equal(decimal.NewFromInt(-2)), "got %s", pos.Qty)
	assert.True(t, pos.AvgPx.Equal(decimal.NewFromInt(12)), "short priced at fill, got %s", pos.AvgPx)
	// Only the long 3 realize PnL: 3 * (12-10).
	assert.True(t, l.RealizedPnL().Equal(decimal.NewFromInt(6)))
	// Cash: 1000 - 30 + 60.
	assert.True(t, l.Cash().Equal(decimal.NewFromInt(1030)))
}

func TestEquityUsesMarksAndFallsBackToAvgCost(t *testing.T) {
	l := NewPositionLedger(decimal.NewFromInt(1000), zaptest.NewLogger(t))
	l.ApplyFill(makeFill("AAPL", oms.OrderSideBuy, 5, 10))

	// Un-marked position contributes zero unrealized PnL.
	assert.True(t, l.Equity(nil).Equal(decimal.NewFromInt(950)))

	marks := map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(14)}
	assert.True(t, l.Equity(marks).Equal(decimal.NewFromInt(970)), "got %s", l.Equity(marks))
}

func TestReplayReproducesState(t *testing.T) {
	fills := []oms.Fill{
		makeFill("AAPL", oms.OrderSideBuy, 10, 100),
		makeFill("MSFT", oms.OrderSideBuy, 4, 50),
		makeFill("AAPL", oms.OrderSideSell, 6, 105),
		makeFill("MSFT", oms.OrderSideSell, 5, 45),
	}

	first := NewPositionLedger(decimal.NewFromInt(5000), zaptest.NewLogger(t))
	first.ApplyFills(fills)
	second := NewPositionLedger(decimal.NewFromInt(5000), zaptest.NewLogger(t))
	second.ApplyFills(fills)

	marks := map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(102)}
	a := first.Snapshot(marks)
	b := second.Snapshot(marks)

	assert.True(t, a.Cash.Equal(b.Cash))
	assert.True(t, a.RealizedPnL.Equal(b.RealizedPnL))
	assert.True(t, a.Equity.Equal(b.Equity))
	require.Equal(t, len(a.Positions), len(b.Positions))
	for ticker, pos := range a.Positions {
		assert.True(t, pos.Qty.Equal(b.Positions[ticker].Qty))
		assert.True(t, pos.AvgPx.Equal(b.Positions[ticker].AvgPx))
	}
}

func TestSnapshotFields(t *testing.T) {
	l := NewPositionLedger(decimal.NewFromInt(1000), zaptest.NewLogger(t))
	l.ApplyFill(makeFill("AAPL", oms.OrderSideBuy, 5, 10))

	snap := l.Snapshot(map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(11)})
	assert.True(t, snap.Cash.Equal(decimal.NewFromInt(950)))
	assert.True(t, snap.RealizedPnL.IsZero())
	assert.True(t, snap.Equity.Equal(decimal.NewFromInt(955)))
	require.Contains(t, snap.Positions, "AAPL")
	assert.True(t, snap.Positions["AAPL"].Qty.Equal(decimal.NewFromInt(5)))
}
