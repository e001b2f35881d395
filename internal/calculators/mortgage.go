package calculators

import (
	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

type MortgageInput struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TermYears     int     `json:"term_years"`
}

func DefaultMortgageInput() MortgageInput {
	return MortgageInput{
		Principal:     300000,
		AnnualRatePct: 6.5,
		TermYears:     30,
	}
}

type MortgageResult struct {
	MonthlyPayment float64              `json:"monthly_payment"`
	TotalPaid      float64              `json:"total_paid"`
	TotalInterest  float64              `json:"total_interest"`
	Schedule       []finance.PaymentRow `json:"schedule"`
}

func CalculateMortgage(in MortgageInput) (MortgageResult, error) {
	if err := checkMoney("principal", in.Principal); err != nil {
		return MortgageResult{}, err
	}
	if in.Principal == 0 {
		return MortgageResult{}, calcerr.Invalidf("principal must be positive")
	}
	if err := checkPercent("annual rate", in.AnnualRatePct, 100); err != nil {
		return MortgageResult{}, err
	}
	if in.TermYears < 1 || in.TermYears > MaxTermYears {
		return MortgageResult{}, calcerr.Invalidf("term %d years outside [1, %d]", in.TermYears, MaxTermYears)
	}

	monthlyRate := in.AnnualRatePct / 100 / 12
	schedule, err := finance.Amortize(in.Principal, monthlyRate, in.TermYears*12)
	if err != nil {
		return MortgageResult{}, err
	}

	return MortgageResult{
		MonthlyPayment: schedule.Payment,
		TotalPaid:      schedule.TotalPaid,
		TotalInterest:  schedule.TotalInterest,
		Schedule:       schedule.Rows,
	}, nil
}
