// Package ledger maintains positions, cash, and realized/unrealized PnL from
// executed fills. A ledger is owned by a single simulation run; all mutation
// goes through ApplyFill and replaying the same fill sequence from the same
// starting cash reproduces identical state.
package ledger

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aryannx/hf-sentiment-engine/internal/oms"
)

// Position is one holding's quantity and volume-weighted average cost. Owned
// exclusively by the ledger.
type Position struct {
	Qty   decimal.Decimal `json:"qty"`
	AvgPx decimal.Decimal `json:"avg_px"`
}

// Snapshot is a serializable view of ledger state marked to given prices.
type Snapshot struct {
	Cash        decimal.Decimal     `json:"cash"`
	RealizedPnL decimal.Decimal     `json:"realized_pnl"`
	Equity      decimal.Decimal     `json:"equity"`
	Positions   map[string]Position `json:"positions"`
}

// PositionLedger tracks cash, positions, and realized PnL. Not safe for
// concurrent use; concurrent runs each own an independent instance. The
// ledger never queries external prices itself.
type PositionLedger struct {
	cash        decimal.Decimal
	positions   map[string]*Position
	realizedPnL decimal.Decimal
	logger      *zap.Logger
}

// NewPositionLedger creates a ledger with a starting cash balance.
func NewPositionLedger(startingCash decimal.Decimal, logger *zap.Logger) *PositionLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PositionLedger{
		cash:      startingCash,
		positions: make(map[string]*Position),
		logger:    logger,
	}
}

// ApplyFill books one fill. A BUY re-averages cost and debits cash. A SELL
// closes up to the existing long quantity at average cost into realized PnL
// and credits cash; any excess opens a short priced at the fill price. The
// implicit short carries no borrow cost; that simplification is deliberate.
func (l *PositionLedger) ApplyFill(f oms.Fill) {
	pos, ok := l.positions[f.Ticker]
	if !ok {
		pos = &Position{}
		l.positions[f.Ticker] = pos
	}

	gross := f.Px.Mul(f.Qty)
	if f.Side == oms.OrderSideBuy {
		newQty := pos.Qty.Add(f.Qty)
		if newQty.IsZero() {
			pos.AvgPx = decimal.Zero
		} else {
			cost := pos.AvgPx.Mul(pos.Qty).Add(gross)
			pos.AvgPx = cost.Div(newQty)
		}
		pos.Qty = newQty
		l.cash = l.cash.Sub(gross)
	} else {
		longQty := pos.Qty
		if longQty.IsNegative() {
			longQty = decimal.Zero
		}
		qtyToClose := decimal.Min(longQty, f.Qty)
		l.realizedPnL = l.realizedPnL.Add(qtyToClose.Mul(f.Px.Sub(pos.AvgPx)))
		pos.Qty = pos.Qty.Sub(qtyToClose)
		l.cash = l.cash.Add(gross)

		if excess := f.Qty.Sub(qtyToClose); excess.IsPositive() {
			pos.Qty = pos.Qty.Sub(excess)
			pos.AvgPx = f.Px
		}
	}

	l.logger.Debug("fill applied",
		zap.String("ticker", f.Ticker),
		zap.String("side", f.Side),
		zap.String("qty", f.Qty.String()),
		zap.String("px", f.Px.String()))
}

// ApplyFills books fills in order.
func (l *PositionLedger) ApplyFills(fills []oms.Fill) {
	for _, f := range fills {
		l.ApplyFill(f)
	}
}

// Cash returns the current cash balance.
func (l *PositionLedger) Cash() decimal.Decimal {
	return l.cash
}

// RealizedPnL returns cumulative realized PnL.
func (l *PositionLedger) RealizedPnL() decimal.Decimal {
	return l.realizedPnL
}

// Position returns the current position for a ticker, zero-valued when flat.
func (l *PositionLedger) Position(ticker string) Position {
	if pos, ok := l.positions[ticker]; ok {
		return *pos
	}
	return Position{}
}

// Equity is cash + realized PnL + unrealized PnL against the supplied marks.
// A ticker without a mark is valued at its average cost and so contributes
// zero unrealized PnL.
func (l *PositionLedger) Equity(marks map[string]decimal.Decimal) decimal.Decimal {
	unrealized := decimal.Zero
	for ticker, pos := range l.positions {
		px, ok := marks[ticker]
		if !ok {
			px = pos.AvgPx
		}
		unrealized = unrealized.Add(pos.Qty.Mul(px.Sub(pos.AvgPx)))
	}
	return l.cash.Add(l.realizedPnL).Add(unrealized)
}

// Snapshot returns a serializable view of cash, realized PnL, equity, and
// per-ticker positions marked to the supplied prices.
func (l *PositionLedger) Snapshot(marks map[string]decimal.Decimal) Snapshot {
	positions := make(map[string]Position, len(l.positions))
	for ticker, pos := range l.positions {
		positions[ticker] = *pos
	}
	return Snapshot{
		Cash:        l.cash,
		RealizedPnL: l.realizedPnL,
		Equity:      l.Equity(marks),
		Positions:   positions,
	}
}
