package oms

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aryannx/hf-sentiment-engine/internal/audit"
	"github.com/aryannx/hf-sentiment-engine/internal/metrics"
	"github.com/aryannx/hf-sentiment-engine/internal/tca"
)

var two = decimal.NewFromInt(2)

// Simulator executes orders against a deterministic fill model with slippage,
// partial fills, and optional weighted venue routing. The random source is
// owned by the instance and seeded from the config, so concurrent simulators
// with different seeds never interfere. A Simulator is not safe for
// concurrent use; each logical run owns its own instance.
type Simulator struct {
	cfg    ExecutionConfig
	tcaCfg tca.Config
	logger *zap.Logger
	sink   audit.Appender

	advResolver    Resolver
	spreadResolver Resolver
	bars           map[string][]tca.Bar

	rng *rand.Rand
	now func() time.Time
}

// Option configures optional simulator collaborators.
type Option func(*Simulator)

// WithAuditSink enables best-effort execution auditing.
func WithAuditSink(sink audit.Appender) Option {
	return func(s *Simulator) { s.sink = sink }
}

// WithADVResolver supplies the ADV lookup; lookups that fail fall back to the
// impact model's ADV floor.
func WithADVResolver(r Resolver) Option {
	return func(s *Simulator) { s.advResolver = r }
}

// WithSpreadResolver supplies a live spread lookup in bps; lookups that fail
// fall back to the configured per-ticker/default spread.
func WithSpreadResolver(r Resolver) Option {
	return func(s *Simulator) { s.spreadResolver = r }
}

// WithBars supplies per-ticker bar history used for the VWAP benchmark.
func WithBars(bars map[string][]tca.Bar) Option {
	return func(s *Simulator) { s.bars = bars }
}

// NewSimulator validates both configs and constructs a simulator with its own
// seeded random source.
func NewSimulator(cfg ExecutionConfig, tcaCfg tca.Config, logger *zap.Logger, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid execution config: %w", err)
	}
	if err := tcaCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tca config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Simulator{
		cfg:    cfg,
		tcaCfg: tcaCfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ApplySlippage bumps the reference price by slippageBps against the order:
// up for BUY, down for SELL.
func ApplySlippage(px decimal.Decimal, side string, slippageBps float64) decimal.Decimal {
	bump := px.Mul(decimal.NewFromFloat(slippageBps)).Div(decimal.NewFromInt(10_000))
	if side == OrderSideSell {
		return px.Sub(bump)
	}
	return px.Add(bump)
}

// Execute runs the fill state machine for one order, terminal in one call:
// NEW -> FILLED | PARTIALLY_FILLED | REJECTED. Validation failures return an
// error with no fills and no side effects. The returned fills always sum to
// the order quantity for valid orders; once the partial-fill budget is
// exhausted the remainder fills in one final slice.
func (s *Simulator) Execute(order *Order) (*Order, []Fill, error) {
	if order == nil {
		return nil, nil, fmt.Errorf("nil order")
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if err := order.Validate(); err != nil {
		return order, nil, fmt.Errorf("order %s: %w", order.ID, err)
	}

	notional := order.Notional().InexactFloat64()
	adv := ResolveOrDefault(s.advResolver, order.Ticker, s.tcaCfg.Impact.ADVFloor)
	spread := ResolveOrDefault(s.spreadResolver, order.Ticker, s.tcaCfg.SpreadForTicker(order.Ticker))
	pretrade := tca.PretradeEstimateWithSpread(notional, adv, spread, s.tcaCfg)

	remaining := order.Qty
	var fills []Fill
	partials := 0

	for remaining.IsPositive() {
		fillQty := remaining
		if partials < s.cfg.MaxPartials && s.rng.Float64() < s.cfg.PartialFillProb {
			fillQty = remaining.Div(two)
			partials++
		}

		fill := Fill{
			OrderID:     order.ID,
			FillID:      fmt.Sprintf("%s-%d", order.ID, len(fills)+1),
			Ticker:      order.Ticker,
			Side:        order.Side,
			Qty:         fillQty,
			Px:          ApplySlippage(order.Px, order.Side, s.cfg.SlippageBps),
			Ts:          s.now().UTC(),
			Venue:       s.pickVenue(),
			SlippageBps: s.cfg.SlippageBps,
		}
		fills = append(fills, fill)
		metrics.FillsTotal.WithLabelValues(fill.Venue).Inc()
		remaining = remaining.Sub(fillQty)
	}

	filled := decimal.Zero
	for _, f := range fills {
		filled = filled.Add(f.Qty)
	}
	order.Status = StatusForFilled(filled, order.Qty)

	posttrade := s.posttrade(order, fills)
	metrics.SlippageBps.Observe(posttrade.ArrivalSlippageBps)

	s.logger.Debug("order executed",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
		zap.Int("fills", len(fills)),
		zap.Float64("arrival_slippage_bps", posttrade.ArrivalSlippageBps))

	if s.sink != nil {
		s.sink.Append(map[string]any{
			"order":     order,
			"fills":     fills,
			"config":    s.cfg,
			"pretrade":  pretrade,
			"posttrade": posttrade,
		})
		if len(posttrade.VenueAttribution) > 0 {
			s.sink.Append(map[string]any{
				"order_id":          order.ID,
				"venue_attribution": posttrade.VenueAttribution,
				"venue_latency_ms":  s.tcaCfg.VenueLatencyMs,
			})
		}
	}

	return order, fills, nil
}

// pickVenue draws from the weighted venue table when routing is enabled,
// else uses the fixed configured venue.
func (s *Simulator) pickVenue() string {
	if !s.cfg.RouteVenues || len(s.tcaCfg.Venues) == 0 {
		return s.cfg.Venue
	}

	names := make([]string, 0, len(s.tcaCfg.Venues))
	total := 0.0
	for name, w := range s.tcaCfg.Venues {
		if w <= 0 {
			continue
		}
		names = append(names, name)
		total += w
	}
	if len(names) == 0 || total <= 0 {
		return s.cfg.Venue
	}
	sort.Strings(names)

	draw := s.rng.Float64() * total
	acc := 0.0
	for _, name := range names {
		acc += s.tcaCfg.Venues[name]
		if draw < acc {
			return name
		}
	}
	return names[len(names)-1]
}

func (s *Simulator) posttrade(order *Order, fills []Fill) tca.PostTradeMetrics {
	samples := make([]tca.FillSample, 0, len(fills))
	for _, f := range fills {
		samples = append(samples, tca.FillSample{
			Venue: f.Venue,
			Qty:   f.Qty.InexactFloat64(),
			Px:    f.Px.InexactFloat64(),
		})
	}

	arrival := order.Px.InexactFloat64()
	vwap := 0.0
	if bars, ok := s.bars[order.Ticker]; ok {
		vwap = tca.VWAPFromBars(bars)
	}
	return tca.PosttradeMetrics(samples, arrival, vwap, order.Side)
}
