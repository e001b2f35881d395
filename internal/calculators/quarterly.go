package calculators

import (
	"math"

	"calckit/internal/bracket"
	"calckit/internal/finance"
	"calckit/internal/tables"
)

// US quarterly estimated tax for the self-employed: self-employment tax
// on 92.35% of net profit with the social-security portion capped at
// the wage base, federal income tax on what is left after the SE-tax
// deduction and the standard deduction, and the safe-harbor minimum
// that avoids an underpayment penalty.

type USQuarterlyTaxInput struct {
	NetSelfEmploymentIncome float64 `json:"net_self_employment_income"`
	PriorYearTax            float64 `json:"prior_year_tax"`
	PriorYearAGI            float64 `json:"prior_year_agi"`
}

func DefaultUSQuarterlyTaxInput() USQuarterlyTaxInput {
	return USQuarterlyTaxInput{
		NetSelfEmploymentIncome: 120000,
		PriorYearTax:            18000,
		PriorYearAGI:            110000,
	}
}

type USQuarterlyTaxResult struct {
	SocialSecurityTax float64 `json:"social_security_tax"`
	MedicareTax       float64 `json:"medicare_tax"`
	SelfEmploymentTax float64 `json:"self_employment_tax"`
	AdjustedGross     float64 `json:"adjusted_gross_income"`
	TaxableIncome     float64 `json:"taxable_income"`
	FederalIncomeTax  float64 `json:"federal_income_tax"`
	TotalEstimate     float64 `json:"total_estimate"`
	SafeHarborMinimum float64 `json:"safe_harbor_minimum"`
	QuarterlyPayment  float64 `json:"quarterly_payment"`
}

// The social-security portion of SE tax as a single-band table, so the
// wage-base ceiling goes through the capped assessment path.
var seSocialSecurityTable = bracket.MustTable(
	bracket.Band{UpperBound: math.Inf(1), Rate: tables.USSocialSecurityRate},
)

func CalculateUSQuarterlyTax(cat *tables.Catalog, in USQuarterlyTaxInput) (USQuarterlyTaxResult, error) {
	if err := checkMoney("net self-employment income", in.NetSelfEmploymentIncome); err != nil {
		return USQuarterlyTaxResult{}, err
	}
	if err := checkMoney("prior year tax", in.PriorYearTax); err != nil {
		return USQuarterlyTaxResult{}, err
	}
	if err := checkMoney("prior year AGI", in.PriorYearAGI); err != nil {
		return USQuarterlyTaxResult{}, err
	}

	federal, err := cat.Get(tables.USFederalSingle2024)
	if err != nil {
		return USQuarterlyTaxResult{}, err
	}

	seBase := in.NetSelfEmploymentIncome * tables.USSETaxableShare

	ss, err := seSocialSecurityTable.AssessCapped(seBase, tables.USSocialSecurityWageBase)
	if err != nil {
		return USQuarterlyTaxResult{}, err
	}
	medicare := seBase * tables.USMedicareRate
	seTax := ss.Total + medicare

	// Half the SE tax is deductible before income tax.
	agi := in.NetSelfEmploymentIncome - seTax/2
	taxable := math.Max(agi-tables.USStandardDeductionSingle, 0)

	incomeTax, err := federal.Total(taxable)
	if err != nil {
		return USQuarterlyTaxResult{}, err
	}

	estimate := incomeTax + seTax
	harbor, err := bracket.SafeHarbor(estimate, in.PriorYearTax, in.PriorYearAGI, tables.USSafeHarborAGIThreshold)
	if err != nil {
		return USQuarterlyTaxResult{}, err
	}

	return USQuarterlyTaxResult{
		SocialSecurityTax: finance.Round2(ss.Total),
		MedicareTax:       finance.Round2(medicare),
		SelfEmploymentTax: finance.Round2(seTax),
		AdjustedGross:     finance.Round2(agi),
		TaxableIncome:     finance.Round2(taxable),
		FederalIncomeTax:  finance.Round2(incomeTax),
		TotalEstimate:     finance.Round2(estimate),
		SafeHarborMinimum: finance.Round2(harbor),
		QuarterlyPayment:  finance.Round2(harbor / 4),
	}, nil
}
