// Package finance holds the shared amortization and compound-growth
// recurrences behind the loan, retirement and savings calculators.
//
// All money values are IEEE doubles. Running balances are never rounded
// mid-computation; rounding to 2 decimals happens only on result-row
// snapshots and final totals, which are presentation checkpoints rather
// than recomputation bases.
package finance

import (
	"math"

	"calckit/internal/calcerr"
)

// MaxLoopYears bounds open-ended years-to-target projections.
const MaxLoopYears = 100

// Round2 rounds to 2 decimals for result snapshots.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Payment returns the fixed periodic payment that amortizes principal
// over the given number of periods at the periodic rate:
//
//	payment = p * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate is a defined branch, not an error: the payment degrades
// to straight division of the principal.
func Payment(principal, periodicRate float64, periods int) (float64, error) {
	if err := checkFinite("principal", principal); err != nil {
		return 0, err
	}
	if err := checkFinite("rate", periodicRate); err != nil {
		return 0, err
	}
	if principal < 0 {
		return 0, calcerr.Invalidf("principal %.2f is negative", principal)
	}
	if periodicRate < 0 {
		return 0, calcerr.Invalidf("rate %v is negative", periodicRate)
	}
	if periods < 1 {
		return 0, calcerr.Invalidf("periods must be at least 1, got %d", periods)
	}

	if periodicRate == 0 {
		return principal / float64(periods), nil
	}

	pow := math.Pow(1+periodicRate, float64(periods))
	return principal * periodicRate * pow / (pow - 1), nil
}

// PaymentRow is one period of an amortization schedule.
type PaymentRow struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// Schedule is a full amortization run.
type Schedule struct {
	Payment       float64      `json:"payment"`
	Rows          []PaymentRow `json:"rows"`
	TotalPaid     float64      `json:"total_paid"`
	TotalInterest float64      `json:"total_interest"`
}

// Amortize builds the period-by-period schedule for a loan. The final
// payment absorbs residual floating drift so the schedule always ends
// on an exactly zero balance.
func Amortize(principal, periodicRate float64, periods int) (Schedule, error) {
	pay, err := Payment(principal, periodicRate, periods)
	if err != nil {
		return Schedule{}, err
	}

	s := Schedule{
		Payment: Round2(pay),
		Rows:    make([]PaymentRow, 0, periods),
	}

	balance := principal
	totalPaid := 0.0
	totalInterest := 0.0
	for p := 1; p <= periods; p++ {
		interest := balance * periodicRate
		principalPart := pay - interest
		if p == periods {
			principalPart = balance
		}
		balance -= principalPart

		paid := interest + principalPart
		totalPaid += paid
		totalInterest += interest

		s.Rows = append(s.Rows, PaymentRow{
			Period:    p,
			Payment:   Round2(paid),
			Interest:  Round2(interest),
			Principal: Round2(principalPart),
			Balance:   Round2(balance),
		})
	}

	s.TotalPaid = Round2(totalPaid)
	s.TotalInterest = Round2(totalInterest)
	return s, nil
}

// Project runs the compounding recurrence
//
//	balance = balance*(1+r) + contribution
//
// for the given number of periods and returns the final balance. A
// negative contribution models a periodic withdrawal.
func Project(principal, periodicRate float64, periods int, contribution float64) (float64, error) {
	if err := checkFinite("principal", principal); err != nil {
		return 0, err
	}
	if err := checkFinite("rate", periodicRate); err != nil {
		return 0, err
	}
	if err := checkFinite("contribution", contribution); err != nil {
		return 0, err
	}
	if principal < 0 {
		return 0, calcerr.Invalidf("principal %.2f is negative", principal)
	}
	if periodicRate < 0 {
		return 0, calcerr.Invalidf("rate %v is negative", periodicRate)
	}
	if periods < 0 {
		return 0, calcerr.Invalidf("periods must not be negative, got %d", periods)
	}

	balance := principal
	for p := 0; p < periods; p++ {
		balance = balance*(1+periodicRate) + contribution
	}
	return balance, nil
}

// YearsToTarget compounds balance annually with a yearly contribution
// until it reaches target and returns the year count and the balance it
// ended on. Targets not reachable within MaxLoopYears are rejected.
func YearsToTarget(balance, target, annualRate, annualContribution float64) (int, float64, error) {
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"balance", balance},
		{"target", target},
		{"rate", annualRate},
		{"contribution", annualContribution},
	} {
		if err := checkFinite(v.name, v.v); err != nil {
			return 0, 0, err
		}
		if v.v < 0 {
			return 0, 0, calcerr.Invalidf("%s %.2f is negative", v.name, v.v)
		}
	}

	years := 0
	for balance < target {
		if years >= MaxLoopYears {
			return 0, 0, calcerr.Invalidf("target not reached within %d years", MaxLoopYears)
		}
		balance = balance*(1+annualRate) + annualContribution
		years++
	}
	return years, balance, nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return calcerr.Invalidf("%s must be finite", name)
	}
	return nil
}
