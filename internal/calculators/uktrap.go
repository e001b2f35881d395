package calculators

import (
	"math"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/tables"
)

// The 100k tax trap: between 100,000 and 125,140 the personal allowance
// tapers away at 1 for every 2 earned, which pushes the effective
// marginal income tax rate to 60%.

type UK100kTrapInput struct {
	GrossIncome         float64 `json:"gross_income"`
	PensionContribution float64 `json:"pension_contribution"` // deducted before the taper
}

func DefaultUK100kTrapInput() UK100kTrapInput {
	return UK100kTrapInput{GrossIncome: 110000}
}

type UK100kTrapResult struct {
	AdjustedIncome    float64 `json:"adjusted_income"`
	PersonalAllowance float64 `json:"personal_allowance"`
	AllowanceLost     float64 `json:"allowance_lost"`
	TaxableIncome     float64 `json:"taxable_income"`
	IncomeTax         float64 `json:"income_tax"`
	NetIncome         float64 `json:"net_income"`
	EffectiveRatePct  float64 `json:"effective_rate_pct"`
	MarginalRatePct   float64 `json:"marginal_rate_pct"`
	InTrapZone        bool    `json:"in_trap_zone"`
}

// ukAllowance is the tapered personal allowance for an adjusted income.
func ukAllowance(adjusted float64) float64 {
	allowance := float64(tables.UKPersonalAllowance)
	if adjusted > tables.UKTaperThreshold {
		allowance -= (adjusted - tables.UKTaperThreshold) / 2
		if allowance < 0 {
			allowance = 0
		}
	}
	return allowance
}

func CalculateUK100kTrap(cat *tables.Catalog, in UK100kTrapInput) (UK100kTrapResult, error) {
	if err := checkMoney("gross income", in.GrossIncome); err != nil {
		return UK100kTrapResult{}, err
	}
	if err := checkMoney("pension contribution", in.PensionContribution); err != nil {
		return UK100kTrapResult{}, err
	}
	if in.PensionContribution > in.GrossIncome {
		return UK100kTrapResult{}, calcerr.Invalidf("pension contribution %.2f exceeds gross income", in.PensionContribution)
	}

	table, err := cat.Get(tables.UKIncome2024)
	if err != nil {
		return UK100kTrapResult{}, err
	}

	taxAt := func(adjusted float64) (float64, error) {
		taxable := math.Max(adjusted-ukAllowance(adjusted), 0)
		return table.Total(taxable)
	}

	adjusted := in.GrossIncome - in.PensionContribution
	allowance := ukAllowance(adjusted)
	taxable := math.Max(adjusted-allowance, 0)

	tax, err := taxAt(adjusted)
	if err != nil {
		return UK100kTrapResult{}, err
	}

	// Marginal rate over the next 100 earned, taper included; the tax
	// delta per 100 is already a percentage.
	taxAbove, err := taxAt(adjusted + 100)
	if err != nil {
		return UK100kTrapResult{}, err
	}
	marginalPct := taxAbove - tax

	effectivePct := 0.0
	if adjusted > 0 {
		effectivePct = tax / adjusted * 100
	}

	return UK100kTrapResult{
		AdjustedIncome:    finance.Round2(adjusted),
		PersonalAllowance: finance.Round2(allowance),
		AllowanceLost:     finance.Round2(tables.UKPersonalAllowance - allowance),
		TaxableIncome:     finance.Round2(taxable),
		IncomeTax:         finance.Round2(tax),
		NetIncome:         finance.Round2(adjusted - tax),
		EffectiveRatePct:  finance.Round2(effectivePct),
		MarginalRatePct:   finance.Round2(marginalPct),
		InTrapZone:        adjusted > tables.UKTaperThreshold && allowance > 0,
	}, nil
}
