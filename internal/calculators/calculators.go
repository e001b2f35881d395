// Package calculators holds the calculator leaves: for each calculator
// an input struct with defaults, a result struct, and a pure Calculate
// function. Inputs are validated in full before any computation and the
// whole result is recomputed on every call; there is no hidden state.
package calculators

import (
	"math"

	"calckit/internal/calcerr"
)

// Catalog categories.
const (
	CategoryFinance = "finance"
	CategoryTax     = "tax"
	CategoryHealth  = "health"
	CategoryBrewing = "brewing"
	CategoryPottery = "pottery"
)

// Input guard rails.
const (
	MaxMoneyAmount     = 1_000_000_000
	MaxTermYears       = 50
	MaxDebtsPerRequest = 50
	MaxHopAdditions    = 20
)

func checkMoney(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return calcerr.Invalidf("%s must be finite", name)
	}
	if v < 0 {
		return calcerr.Invalidf("%s %.2f is negative", name, v)
	}
	if v > MaxMoneyAmount {
		return calcerr.Invalidf("%s %.2f exceeds maximum %d", name, v, MaxMoneyAmount)
	}
	return nil
}

func checkPercent(name string, v, max float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return calcerr.Invalidf("%s must be finite", name)
	}
	if v < 0 || v > max {
		return calcerr.Invalidf("%s %.2f outside [0, %.0f]", name, v, max)
	}
	return nil
}
