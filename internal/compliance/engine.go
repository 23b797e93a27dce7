// Package compliance gates proposed orders against position-count,
// single-name concentration, and gross-notional rules, recording every
// evaluation to a best-effort audit trail.
package compliance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aryannx/hf-sentiment-engine/internal/audit"
	"github.com/aryannx/hf-sentiment-engine/internal/metrics"
)

// OrderIntent is the minimal view of a proposed order the rules need:
// ticker and absolute notional in portfolio currency.
type OrderIntent struct {
	Ticker   string          `json:"ticker"`
	Notional decimal.Decimal `json:"notional"`
}

// Result is the aggregate decision plus the per-rule records.
type Result struct {
	Decision string       `json:"decision"`
	Results  []RuleResult `json:"results"`
}

// Engine evaluates the compliance rule set. Independent of the risk engine;
// a sibling gate in front of execution.
type Engine struct {
	cfg    Config
	logger *zap.Logger
	sink   audit.Appender
}

// NewEngine validates the configuration and constructs the engine. A nil
// sink disables auditing.
func NewEngine(cfg Config, logger *zap.Logger, sink audit.Appender) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compliance config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger, sink: sink}, nil
}

// EvaluateOrders runs all rules over the proposed orders. The decision is
// block iff any rule failed at block severity, else pass. The evaluation is
// appended to the audit trail; audit failures never affect the decision.
func (e *Engine) EvaluateOrders(orders []OrderIntent, portfolioValue decimal.Decimal) Result {
	var results []RuleResult

	gross := decimal.Zero
	perName := map[string]decimal.Decimal{}
	for _, o := range orders {
		if o.Ticker == "" {
			continue
		}
		abs := o.Notional.Abs()
		gross = gross.Add(abs)
		perName[o.Ticker] = perName[o.Ticker].Add(abs)
	}

	if len(perName) > e.cfg.MaxPositions {
		results = append(results, RuleResult{
			Name:     "max_positions",
			Passed:   false,
			Severity: SeverityBlock,
			Message:  fmt.Sprintf("Too many positions (%d) > limit %d", len(perName), e.cfg.MaxPositions),
			Details:  map[string]any{"positions": len(perName), "limit": e.cfg.MaxPositions},
		})
	} else {
		results = append(results, RuleResult{
			Name:     "max_positions",
			Passed:   true,
			Severity: SeverityWarn,
			Message:  "Within position count limit",
		})
	}

	maxAllowed := portfolioValue.Mul(decimal.NewFromFloat(e.cfg.MaxSingleNamePct))
	tickers := make([]string, 0, len(perName))
	for t := range perName {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, tkr := range tickers {
		if perName[tkr].GreaterThan(maxAllowed) {
			results = append(results, RuleResult{
				Name:     "max_single_name_pct",
				Passed:   false,
				Severity: SeverityBlock,
				Message: fmt.Sprintf("%s exceeds single-name limit (%s > %s)",
					tkr, perName[tkr].StringFixed(0), maxAllowed.StringFixed(0)),
				Details: map[string]any{"ticker": tkr, "notional": perName[tkr], "limit": maxAllowed},
			})
			break
		}
	}

	maxGross := decimal.NewFromFloat(e.cfg.MaxGrossNotional)
	if gross.GreaterThan(maxGross) {
		results = append(results, RuleResult{
			Name:     "max_gross_notional",
			Passed:   false,
			Severity: SeverityBlock,
			Message:  fmt.Sprintf("Gross %s exceeds limit %s", gross.StringFixed(0), maxGross.StringFixed(0)),
			Details:  map[string]any{"gross": gross, "limit": maxGross},
		})
	} else {
		results = append(results, RuleResult{
			Name:     "max_gross_notional",
			Passed:   true,
			Severity: SeverityWarn,
			Message:  "Within gross notional limit",
		})
	}

	decision := DecisionPass
	for _, r := range results {
		if !r.Passed && r.Severity == SeverityBlock {
			decision = DecisionBlock
			break
		}
	}

	metrics.DecisionsTotal.WithLabelValues("compliance", decision).Inc()
	e.logger.Debug("order evaluation",
		zap.String("decision", decision),
		zap.Int("orders", len(orders)))

	if e.sink != nil {
		e.sink.Append(map[string]any{
			"decision":        decision,
			"portfolio_value": portfolioValue,
			"orders":          orders,
			"config":          e.cfg,
			"results":         results,
		})
	}

	return Result{Decision: decision, Results: results}
}

// EvaluateUniverse treats each ticker as an equal notional slice of the
// portfolio and runs the order rules over the slices.
func (e *Engine) EvaluateUniverse(tickers []string, portfolioValue decimal.Decimal) Result {
	clean := tickers[:0:0]
	for _, t := range tickers {
		if t != "" {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return Result{Decision: DecisionPass, Results: []RuleResult{}}
	}

	perName := portfolioValue.Div(decimal.NewFromInt(int64(len(clean))))
	orders := make([]OrderIntent, 0, len(clean))
	for _, t := range clean {
		orders = append(orders, OrderIntent{Ticker: t, Notional: perName})
	}
	return e.EvaluateOrders(orders, portfolioValue)
}

// PostTradeCheck reuses the order rule set on resulting positions.
func (e *Engine) PostTradeCheck(positions []OrderIntent, portfolioValue decimal.Decimal) Result {
	return e.EvaluateOrders(positions, portfolioValue)
}
