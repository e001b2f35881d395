package calculators

import (
	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

type RentalROIInput struct {
	PurchasePrice  float64 `json:"purchase_price"`
	DownPaymentPct float64 `json:"down_payment_pct"`
	ClosingCosts   float64 `json:"closing_costs"`
	MortgageRate   float64 `json:"mortgage_rate_pct"`
	MortgageYears  int     `json:"mortgage_years"`

	MonthlyRent     float64 `json:"monthly_rent"`
	VacancyPct      float64 `json:"vacancy_pct"`
	AnnualTaxes     float64 `json:"annual_taxes"`
	AnnualInsurance float64 `json:"annual_insurance"`
	MaintenancePct  float64 `json:"maintenance_pct"`
	ManagementPct   float64 `json:"management_pct"`
}

func DefaultRentalROIInput() RentalROIInput {
	return RentalROIInput{
		PurchasePrice:   250000,
		DownPaymentPct:  25,
		ClosingCosts:    5000,
		MortgageRate:    7,
		MortgageYears:   30,
		MonthlyRent:     2200,
		VacancyPct:      5,
		AnnualTaxes:     3000,
		AnnualInsurance: 1400,
		MaintenancePct:  8,
		ManagementPct:   10,
	}
}

type RentalROIResult struct {
	CashInvested      float64 `json:"cash_invested"`
	LoanAmount        float64 `json:"loan_amount"`
	MonthlyMortgage   float64 `json:"monthly_mortgage"`
	EffectiveRent     float64 `json:"effective_rent"`
	MonthlyExpenses   float64 `json:"monthly_expenses"`
	MonthlyCashFlow   float64 `json:"monthly_cash_flow"`
	AnnualCashFlow    float64 `json:"annual_cash_flow"`
	NetOperatingInc   float64 `json:"net_operating_income"`
	CapRatePct        float64 `json:"cap_rate_pct"`
	CashOnCashPct     float64 `json:"cash_on_cash_pct"`
	GrossYieldPct     float64 `json:"gross_yield_pct"`
	OnePercentRuleMet bool    `json:"one_percent_rule_met"`
}

// CalculateRentalROI works an income property over one year of ownership:
// financing, vacancy-adjusted rent, operating costs, then the usual
// screening ratios.
func CalculateRentalROI(in RentalROIInput) (RentalROIResult, error) {
	if err := checkMoney("purchase price", in.PurchasePrice); err != nil {
		return RentalROIResult{}, err
	}
	if in.PurchasePrice == 0 {
		return RentalROIResult{}, calcerr.Invalidf("purchase price must be positive")
	}
	if err := checkPercent("down payment", in.DownPaymentPct, 100); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkMoney("closing costs", in.ClosingCosts); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkPercent("mortgage rate", in.MortgageRate, 30); err != nil {
		return RentalROIResult{}, err
	}
	if in.MortgageYears < 0 || in.MortgageYears > MaxTermYears {
		return RentalROIResult{}, calcerr.Invalidf("mortgage term %d outside [0, %d] years", in.MortgageYears, MaxTermYears)
	}
	if err := checkMoney("monthly rent", in.MonthlyRent); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkPercent("vacancy", in.VacancyPct, 100); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkMoney("annual taxes", in.AnnualTaxes); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkMoney("annual insurance", in.AnnualInsurance); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkPercent("maintenance", in.MaintenancePct, 100); err != nil {
		return RentalROIResult{}, err
	}
	if err := checkPercent("management", in.ManagementPct, 100); err != nil {
		return RentalROIResult{}, err
	}

	down := in.PurchasePrice * in.DownPaymentPct / 100
	loan := in.PurchasePrice - down
	cashInvested := down + in.ClosingCosts

	mortgage := 0.0
	if loan > 0 {
		// A zero-year term means an all-cash purchase was modelled with
		// a partial down payment, which has no monthly payment to size.
		if in.MortgageYears == 0 {
			return RentalROIResult{}, calcerr.Invalidf("mortgage term required when financing %.2f", loan)
		}
		var err error
		mortgage, err = finance.Payment(loan, in.MortgageRate/100/12, in.MortgageYears*12)
		if err != nil {
			return RentalROIResult{}, err
		}
	}

	effectiveRent := in.MonthlyRent * (1 - in.VacancyPct/100)
	operating := in.AnnualTaxes/12 + in.AnnualInsurance/12 +
		in.MonthlyRent*in.MaintenancePct/100 +
		effectiveRent*in.ManagementPct/100

	cashFlow := effectiveRent - operating - mortgage
	noi := (effectiveRent - operating) * 12

	res := RentalROIResult{
		CashInvested:      finance.Round2(cashInvested),
		LoanAmount:        finance.Round2(loan),
		MonthlyMortgage:   finance.Round2(mortgage),
		EffectiveRent:     finance.Round2(effectiveRent),
		MonthlyExpenses:   finance.Round2(operating),
		MonthlyCashFlow:   finance.Round2(cashFlow),
		AnnualCashFlow:    finance.Round2(cashFlow * 12),
		NetOperatingInc:   finance.Round2(noi),
		CapRatePct:        finance.Round2(noi / in.PurchasePrice * 100),
		GrossYieldPct:     finance.Round2(in.MonthlyRent * 12 / in.PurchasePrice * 100),
		OnePercentRuleMet: in.MonthlyRent >= in.PurchasePrice/100,
	}
	if cashInvested > 0 {
		res.CashOnCashPct = finance.Round2(cashFlow * 12 / cashInvested * 100)
	}
	return res, nil
}
