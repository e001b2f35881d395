package calculators

import (
	"math"

	"calckit/internal/bracket"
	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/tables"
)

// Net salary after income tax and employee social contributions for a
// small set of EU countries. Income tax is a progressive bracket
// assessment; social contributions are a flat rate on the gross, capped
// at the country's contribution ceiling where one exists.

type Country string

const (
	CountryFrance  Country = "fr"
	CountrySpain   Country = "es"
	CountryIreland Country = "ie"
)

type euTaxParams struct {
	tableID       string
	social        *bracket.Table
	socialCeiling float64 // +Inf when uncapped
}

var euParamsByCountry = map[Country]euTaxParams{
	CountryFrance: {
		tableID:       tables.FranceIncome2024,
		social:        bracket.MustTable(bracket.Band{UpperBound: math.Inf(1), Rate: 0.22}),
		socialCeiling: math.Inf(1),
	},
	CountrySpain: {
		tableID:       tables.SpainIncome2024,
		social:        bracket.MustTable(bracket.Band{UpperBound: math.Inf(1), Rate: 0.0635}),
		socialCeiling: 56646,
	},
	CountryIreland: {
		tableID:       tables.IrelandIncome2024,
		social:        bracket.MustTable(bracket.Band{UpperBound: math.Inf(1), Rate: 0.04}),
		socialCeiling: math.Inf(1),
	},
}

type EUSalaryTaxInput struct {
	Country     Country `json:"country"`
	GrossAnnual float64 `json:"gross_annual"`
}

func DefaultEUSalaryTaxInput() EUSalaryTaxInput {
	return EUSalaryTaxInput{Country: CountryFrance, GrossAnnual: 50000}
}

type EUSalaryTaxResult struct {
	Country             Country           `json:"country"`
	IncomeTax           float64           `json:"income_tax"`
	IncomeTaxBands      []bracket.BandTax `json:"income_tax_bands,omitempty"`
	SocialContributions float64           `json:"social_contributions"`
	TotalDeductions     float64           `json:"total_deductions"`
	NetAnnual           float64           `json:"net_annual"`
	NetMonthly          float64           `json:"net_monthly"`
	EffectiveRatePct    float64           `json:"effective_rate_pct"`
}

func CalculateEUSalaryTax(cat *tables.Catalog, in EUSalaryTaxInput) (EUSalaryTaxResult, error) {
	params, ok := euParamsByCountry[in.Country]
	if !ok {
		return EUSalaryTaxResult{}, calcerr.Invalidf("unknown country %q", in.Country)
	}
	if err := checkMoney("gross annual salary", in.GrossAnnual); err != nil {
		return EUSalaryTaxResult{}, err
	}

	table, err := cat.Get(params.tableID)
	if err != nil {
		return EUSalaryTaxResult{}, err
	}

	// Social contributions first; income tax applies to gross less the
	// contributions.
	social, err := params.social.AssessCapped(in.GrossAnnual, params.socialCeiling)
	if err != nil {
		return EUSalaryTaxResult{}, err
	}

	taxableBase := in.GrossAnnual - social.Total
	assessment, err := table.Assess(taxableBase)
	if err != nil {
		return EUSalaryTaxResult{}, err
	}

	deductions := assessment.Total + social.Total
	net := in.GrossAnnual - deductions

	effectivePct := 0.0
	if in.GrossAnnual > 0 {
		effectivePct = deductions / in.GrossAnnual * 100
	}

	return EUSalaryTaxResult{
		Country:             in.Country,
		IncomeTax:           finance.Round2(assessment.Total),
		IncomeTaxBands:      assessment.Bands,
		SocialContributions: finance.Round2(social.Total),
		TotalDeductions:     finance.Round2(deductions),
		NetAnnual:           finance.Round2(net),
		NetMonthly:          finance.Round2(net / 12),
		EffectiveRatePct:    finance.Round2(effectivePct),
	}, nil
}
