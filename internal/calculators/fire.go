package calculators

import (
	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

type FIREInput struct {
	AnnualExpenses     float64 `json:"annual_expenses"`
	WithdrawalRatePct  float64 `json:"withdrawal_rate_pct"`
	CurrentSavings     float64 `json:"current_savings"`
	AnnualContribution float64 `json:"annual_contribution"`
	AnnualReturnPct    float64 `json:"annual_return_pct"`
	CurrentAge         int     `json:"current_age"`
}

func DefaultFIREInput() FIREInput {
	return FIREInput{
		AnnualExpenses:     40000,
		WithdrawalRatePct:  4,
		CurrentSavings:     100000,
		AnnualContribution: 30000,
		AnnualReturnPct:    7,
		CurrentAge:         30,
	}
}

type FIREResult struct {
	TargetAmount    float64 `json:"target_amount"`
	YearsToTarget   int     `json:"years_to_target"`
	AgeAtTarget     int     `json:"age_at_target"`
	BalanceAtTarget float64 `json:"balance_at_target"`
	MonthlyIncome   float64 `json:"monthly_income"`
	AlreadyReached  bool    `json:"already_reached"`
}

// CalculateFIRE sizes the portfolio needed to cover annual expenses at the
// chosen safe withdrawal rate and counts the years of saving left to get
// there at the assumed return.
func CalculateFIRE(in FIREInput) (FIREResult, error) {
	if err := checkMoney("annual expenses", in.AnnualExpenses); err != nil {
		return FIREResult{}, err
	}
	if in.AnnualExpenses == 0 {
		return FIREResult{}, calcerr.Invalidf("annual expenses must be positive")
	}
	if in.WithdrawalRatePct <= 0 || in.WithdrawalRatePct > 20 {
		return FIREResult{}, calcerr.Invalidf("withdrawal rate %.2f%% outside (0, 20]", in.WithdrawalRatePct)
	}
	if err := checkMoney("current savings", in.CurrentSavings); err != nil {
		return FIREResult{}, err
	}
	if err := checkMoney("annual contribution", in.AnnualContribution); err != nil {
		return FIREResult{}, err
	}
	if err := checkPercent("annual return", in.AnnualReturnPct, 30); err != nil {
		return FIREResult{}, err
	}
	if in.CurrentAge < 0 || in.CurrentAge > 120 {
		return FIREResult{}, calcerr.Invalidf("age %d outside [0, 120]", in.CurrentAge)
	}

	target := in.AnnualExpenses / (in.WithdrawalRatePct / 100)
	years, balance, err := finance.YearsToTarget(in.CurrentSavings, target, in.AnnualReturnPct/100, in.AnnualContribution)
	if err != nil {
		return FIREResult{}, err
	}

	return FIREResult{
		TargetAmount:    finance.Round2(target),
		YearsToTarget:   years,
		AgeAtTarget:     in.CurrentAge + years,
		BalanceAtTarget: finance.Round2(balance),
		MonthlyIncome:   finance.Round2(in.AnnualExpenses / 12),
		AlreadyReached:  years == 0,
	}, nil
}
