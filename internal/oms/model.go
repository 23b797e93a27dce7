// Package oms holds the order/fill data model and the deterministic
// execution simulator that turns gated orders into fills.
package oms

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order sides.
const (
	OrderSideBuy  = "BUY"
	OrderSideSell = "SELL"
)

// Time in force.
const (
	TimeInForceDay = "DAY"
	TimeInForceIOC = "IOC"
	TimeInForceFOK = "FOK"
	TimeInForceGTC = "GTC"
)

// Order statuses. Status transitions exactly once per execution call:
// NEW -> FILLED | PARTIALLY_FILLED | REJECTED.
const (
	OrderStatusNew             = "NEW"
	OrderStatusPartiallyFilled = "PARTIALLY_FILLED"
	OrderStatusFilled          = "FILLED"
	OrderStatusCanceled        = "CANCELED"
	OrderStatusRejected        = "REJECTED"
)

// Validation errors raised before any fill or audit side effect.
var (
	ErrMissingTicker = errors.New("order ticker is required")
	ErrInvalidQty    = errors.New("order quantity must be positive")
	ErrInvalidPrice  = errors.New("order reference price must be positive")
)

// Order is one candidate trade. Status is the only mutable field.
type Order struct {
	ID       string          `json:"order_id"`
	Ticker   string          `json:"ticker"`
	Side     string          `json:"side"`
	Qty      decimal.Decimal `json:"qty"`
	Px       decimal.Decimal `json:"px"` // arrival/limit reference
	TIF      string          `json:"tif"`
	Metadata map[string]any  `json:"metadata,omitempty"`
	Status   string          `json:"status"`
}

// NewOrder constructs an order in NEW status with DAY time in force.
func NewOrder(id, ticker, side string, qty, px decimal.Decimal) *Order {
	return &Order{
		ID:     id,
		Ticker: ticker,
		Side:   side,
		Qty:    qty,
		Px:     px,
		TIF:    TimeInForceDay,
		Status: OrderStatusNew,
	}
}

// Notional is the order's reference notional (qty * reference price).
func (o *Order) Notional() decimal.Decimal {
	return o.Qty.Mul(o.Px)
}

// Validate rejects malformed orders before simulation starts.
func (o *Order) Validate() error {
	if o.Ticker == "" {
		return ErrMissingTicker
	}
	if o.Side != OrderSideBuy && o.Side != OrderSideSell {
		return errors.New("order side must be BUY or SELL")
	}
	if !o.Qty.IsPositive() {
		return ErrInvalidQty
	}
	if !o.Px.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// Fill is one executed slice of an order. Immutable once created; the fills
// of an order sum to at most the order quantity.
type Fill struct {
	OrderID     string          `json:"order_id"`
	FillID      string          `json:"fill_id"`
	Ticker      string          `json:"ticker"`
	Side        string          `json:"side"`
	Qty         decimal.Decimal `json:"qty"`
	Px          decimal.Decimal `json:"px"`
	Ts          time.Time       `json:"ts"`
	Venue       string          `json:"venue"`
	SlippageBps float64         `json:"slippage_bps"`
}

// StatusForFilled derives order status purely from filled vs. requested
// quantity.
func StatusForFilled(filled, requested decimal.Decimal) string {
	switch {
	case filled.Equal(requested):
		return OrderStatusFilled
	case filled.IsZero():
		return OrderStatusRejected
	default:
		return OrderStatusPartiallyFilled
	}
}
