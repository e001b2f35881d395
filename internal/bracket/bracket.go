// Package bracket implements the progressive bracket accumulator used by
// the tax and fee calculators: an ordered set of (upper bound, rate) bands
// covering [0, +Inf), where each band's rate applies only to the portion
// of the amount falling inside that band.
package bracket

import (
	"math"
	"slices"

	"calckit/internal/calcerr"
)

// Band is one marginal-rate band. The final band of a table must be
// unbounded (UpperBound = +Inf). Rates are fractions in [0, 1].
type Band struct {
	UpperBound float64 `json:"upper_bound"`
	Rate       float64 `json:"rate"`
}

// Table is a validated, immutable band table.
type Table struct {
	bands []Band
}

// NewTable validates the bands and returns a table. Bands must be
// non-empty, have rates in [0, 1], strictly increasing positive upper
// bounds, and exactly one unbounded band in final position.
func NewTable(bands []Band) (*Table, error) {
	if len(bands) == 0 {
		return nil, calcerr.Invalidf("bracket table is empty")
	}

	prev := 0.0
	for i, b := range bands {
		if math.IsNaN(b.Rate) || b.Rate < 0 || b.Rate > 1 {
			return nil, calcerr.Invalidf("band %d: rate %v outside [0, 1]", i, b.Rate)
		}
		if math.IsNaN(b.UpperBound) {
			return nil, calcerr.Invalidf("band %d: upper bound is NaN", i)
		}

		if i == len(bands)-1 {
			if !math.IsInf(b.UpperBound, 1) {
				return nil, calcerr.Invalidf("final band must be unbounded")
			}
			continue
		}
		if math.IsInf(b.UpperBound, 1) {
			return nil, calcerr.Invalidf("band %d: only the final band may be unbounded", i)
		}
		if b.UpperBound <= prev {
			return nil, calcerr.Invalidf("band %d: upper bound %.2f not above %.2f", i, b.UpperBound, prev)
		}
		prev = b.UpperBound
	}

	return &Table{bands: slices.Clone(bands)}, nil
}

// MustTable is NewTable for package-level reference tables; it panics on
// a malformed table.
func MustTable(bands ...Band) *Table {
	t, err := NewTable(bands)
	if err != nil {
		panic(err)
	}
	return t
}

// Bands returns a copy of the table's bands.
func (t *Table) Bands() []Band {
	return slices.Clone(t.bands)
}

// BandTax is the tax attributable to a single band: the slice of the
// amount that fell inside [LowerBound, LowerBound+Taxable) and the tax
// due on it.
type BandTax struct {
	LowerBound float64 `json:"lower_bound"`
	Rate       float64 `json:"rate"`
	Taxable    float64 `json:"taxable"`
	Due        float64 `json:"due"`
}

// Assessment is the full breakdown of an amount over a table. Bands the
// amount never reaches are omitted, so the Taxable fields always sum to
// Amount.
type Assessment struct {
	Amount float64   `json:"amount"`
	Bands  []BandTax `json:"bands,omitempty"`
	Total  float64   `json:"total"`
}

// EffectiveRate returns Total/Amount, or 0 for a zero amount.
func (a Assessment) EffectiveRate() float64 {
	if a.Amount == 0 {
		return 0
	}
	return a.Total / a.Amount
}

// Assess computes the per-band breakdown and total due for amount.
// A zero amount yields an empty breakdown; negative or non-finite
// amounts are rejected.
func (t *Table) Assess(amount float64) (Assessment, error) {
	if err := checkAmount(amount); err != nil {
		return Assessment{}, err
	}

	a := Assessment{Amount: amount}
	prev := 0.0
	for _, b := range t.bands {
		taxable := math.Min(amount, b.UpperBound) - prev
		if taxable <= 0 {
			break
		}
		due := taxable * b.Rate
		a.Bands = append(a.Bands, BandTax{
			LowerBound: prev,
			Rate:       b.Rate,
			Taxable:    taxable,
			Due:        due,
		})
		a.Total += due
		if amount <= b.UpperBound {
			break
		}
		prev = b.UpperBound
	}
	return a, nil
}

// AssessCapped caps the taxable base at ceiling before bracket
// application (social-security ceiling style). The ceiling may be +Inf.
func (t *Table) AssessCapped(amount, ceiling float64) (Assessment, error) {
	if err := checkAmount(amount); err != nil {
		return Assessment{}, err
	}
	if math.IsNaN(ceiling) || ceiling <= 0 {
		return Assessment{}, calcerr.Invalidf("ceiling %v must be positive", ceiling)
	}
	return t.Assess(math.Min(amount, ceiling))
}

// Total is Assess without the breakdown.
func (t *Table) Total(amount float64) (float64, error) {
	a, err := t.Assess(amount)
	if err != nil {
		return 0, err
	}
	return a.Total, nil
}

// MarginalRate returns the rate applied to the next unit earned on top
// of amount.
func (t *Table) MarginalRate(amount float64) (float64, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	for _, b := range t.bands {
		if amount < b.UpperBound {
			return b.Rate, nil
		}
	}
	return t.bands[len(t.bands)-1].Rate, nil
}

// Surcharge is the flat-rate variant layered on top of bracket
// computation: a single rate applied to the full amount (additional
// property, non-resident style).
func Surcharge(amount, rate float64) (float64, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return 0, calcerr.Invalidf("surcharge rate %v outside [0, 1]", rate)
	}
	return amount * rate, nil
}

// SafeHarbor returns the minimum prepayment that avoids an underpayment
// penalty: the lesser of 90% of the current-year estimate and the prior
// year's tax, scaled to 110% when AGI exceeds agiThreshold.
func SafeHarbor(currentEstimate, priorTax, agi, agiThreshold float64) (float64, error) {
	for _, v := range []float64{currentEstimate, priorTax, agi} {
		if err := checkAmount(v); err != nil {
			return 0, err
		}
	}
	if math.IsNaN(agiThreshold) || agiThreshold <= 0 {
		return 0, calcerr.Invalidf("AGI threshold %v must be positive", agiThreshold)
	}

	multiplier := 1.0
	if agi > agiThreshold {
		multiplier = 1.1
	}
	return math.Min(0.9*currentEstimate, priorTax*multiplier), nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return calcerr.Invalidf("amount must be finite")
	}
	if amount < 0 {
		return calcerr.Invalidf("amount %.2f is negative", amount)
	}
	return nil
}
