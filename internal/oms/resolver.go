package oms

import "fmt"

// Resolver looks up a per-ticker value such as ADV or spread. Implementations
// may be a constant, a table, or a live function; callers that cannot afford
// failure use ResolveOrDefault.
type Resolver interface {
	Resolve(ticker string) (float64, error)
}

// ConstantResolver returns the same value for every ticker.
type ConstantResolver float64

func (c ConstantResolver) Resolve(string) (float64, error) {
	return float64(c), nil
}

// TableResolver serves values from a static map and fails on unknown tickers.
type TableResolver map[string]float64

func (t TableResolver) Resolve(ticker string) (float64, error) {
	v, ok := t[ticker]
	if !ok {
		return 0, fmt.Errorf("no entry for ticker %s", ticker)
	}
	return v, nil
}

// FuncResolver adapts a plain lookup function.
type FuncResolver func(ticker string) (float64, error)

func (f FuncResolver) Resolve(ticker string) (float64, error) {
	return f(ticker)
}

// ResolveOrDefault resolves through r, falling back to def when r is nil,
// the lookup fails, or the result is negative.
func ResolveOrDefault(r Resolver, ticker string, def float64) float64 {
	if r == nil {
		return def
	}
	v, err := r.Resolve(ticker)
	if err != nil || v < 0 {
		return def
	}
	return v
}
