package calculators

import (
	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

type CompoundingFrequency string

const (
	CompoundMonthly   CompoundingFrequency = "monthly"
	CompoundQuarterly CompoundingFrequency = "quarterly"
	CompoundAnnually  CompoundingFrequency = "annually"
)

func (f CompoundingFrequency) periodsPerYear() (int, error) {
	switch f {
	case CompoundMonthly:
		return 12, nil
	case CompoundQuarterly:
		return 4, nil
	case CompoundAnnually:
		return 1, nil
	default:
		return 0, calcerr.Invalidf("unknown compounding frequency %q", f)
	}
}

type CompoundInterestInput struct {
	Principal           float64              `json:"principal"`
	MonthlyContribution float64              `json:"monthly_contribution"`
	AnnualRatePct       float64              `json:"annual_rate_pct"`
	Years               int                  `json:"years"`
	Compounding         CompoundingFrequency `json:"compounding"`
}

func DefaultCompoundInterestInput() CompoundInterestInput {
	return CompoundInterestInput{
		Principal:           10000,
		MonthlyContribution: 250,
		AnnualRatePct:       5,
		Years:               10,
		Compounding:         CompoundMonthly,
	}
}

type CompoundYear struct {
	Year           int     `json:"year"`
	Contributed    float64 `json:"contributed"`
	InterestToDate float64 `json:"interest_to_date"`
	Balance        float64 `json:"balance"`
}

type CompoundInterestResult struct {
	FinalBalance       float64        `json:"final_balance"`
	TotalContributions float64        `json:"total_contributions"`
	TotalInterest      float64        `json:"total_interest"`
	Years              []CompoundYear `json:"years"`
}

// CalculateCompoundInterest grows a starting balance with periodic
// contributions, compounding at the chosen frequency, and reports a
// snapshot at each year boundary.
func CalculateCompoundInterest(in CompoundInterestInput) (CompoundInterestResult, error) {
	if err := checkMoney("principal", in.Principal); err != nil {
		return CompoundInterestResult{}, err
	}
	if err := checkMoney("monthly contribution", in.MonthlyContribution); err != nil {
		return CompoundInterestResult{}, err
	}
	if err := checkPercent("annual rate", in.AnnualRatePct, 50); err != nil {
		return CompoundInterestResult{}, err
	}
	if in.Years < 1 || in.Years > finance.MaxLoopYears {
		return CompoundInterestResult{}, calcerr.Invalidf("years must be between 1 and %d, got %d", finance.MaxLoopYears, in.Years)
	}
	perYear, err := in.Compounding.periodsPerYear()
	if err != nil {
		return CompoundInterestResult{}, err
	}

	rate := in.AnnualRatePct / 100 / float64(perYear)
	perPeriod := in.MonthlyContribution * 12 / float64(perYear)

	res := CompoundInterestResult{
		Years: make([]CompoundYear, 0, in.Years),
	}

	balance := in.Principal
	contributed := in.Principal
	for y := 1; y <= in.Years; y++ {
		balance, err = finance.Project(balance, rate, perYear, perPeriod)
		if err != nil {
			return CompoundInterestResult{}, err
		}
		contributed += in.MonthlyContribution * 12
		res.Years = append(res.Years, CompoundYear{
			Year:           y,
			Contributed:    finance.Round2(contributed),
			InterestToDate: finance.Round2(balance - contributed),
			Balance:        finance.Round2(balance),
		})
	}

	res.FinalBalance = finance.Round2(balance)
	res.TotalContributions = finance.Round2(contributed)
	res.TotalInterest = finance.Round2(balance - contributed)
	return res, nil
}

type SavingsGoalInput struct {
	TargetAmount        float64 `json:"target_amount"`
	CurrentSavings      float64 `json:"current_savings"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualRatePct       float64 `json:"annual_rate_pct"`
	DeadlineMonths      int     `json:"deadline_months"`
}

func DefaultSavingsGoalInput() SavingsGoalInput {
	return SavingsGoalInput{
		TargetAmount:        20000,
		CurrentSavings:      2500,
		MonthlyContribution: 400,
		AnnualRatePct:       4,
		DeadlineMonths:      0,
	}
}

type SavingsGoalResult struct {
	MonthsToGoal    int     `json:"months_to_goal"`
	BalanceAtGoal   float64 `json:"balance_at_goal"`
	TotalDeposited  float64 `json:"total_deposited"`
	InterestEarned  float64 `json:"interest_earned"`
	AlreadyReached  bool    `json:"already_reached"`
	RequiredMonthly float64 `json:"required_monthly,omitempty"`
	OnTrack         bool    `json:"on_track"`
}

// CalculateSavingsGoal counts the months of saving needed to reach a
// target. With a deadline it additionally solves for the contribution
// that would hit the target in time.
func CalculateSavingsGoal(in SavingsGoalInput) (SavingsGoalResult, error) {
	if err := checkMoney("target amount", in.TargetAmount); err != nil {
		return SavingsGoalResult{}, err
	}
	if in.TargetAmount == 0 {
		return SavingsGoalResult{}, calcerr.Invalidf("target amount must be positive")
	}
	if err := checkMoney("current savings", in.CurrentSavings); err != nil {
		return SavingsGoalResult{}, err
	}
	if err := checkMoney("monthly contribution", in.MonthlyContribution); err != nil {
		return SavingsGoalResult{}, err
	}
	if err := checkPercent("annual rate", in.AnnualRatePct, 50); err != nil {
		return SavingsGoalResult{}, err
	}
	if in.DeadlineMonths < 0 || in.DeadlineMonths > finance.MaxLoopYears*12 {
		return SavingsGoalResult{}, calcerr.Invalidf("deadline %d outside [0, %d] months", in.DeadlineMonths, finance.MaxLoopYears*12)
	}

	rate := in.AnnualRatePct / 100 / 12

	res := SavingsGoalResult{}
	if in.CurrentSavings >= in.TargetAmount {
		res.AlreadyReached = true
		res.BalanceAtGoal = finance.Round2(in.CurrentSavings)
		res.TotalDeposited = finance.Round2(in.CurrentSavings)
		res.OnTrack = true
		return res, nil
	}
	if in.MonthlyContribution == 0 && rate == 0 {
		return SavingsGoalResult{}, calcerr.Invalidf("target unreachable without contributions or growth")
	}

	balance := in.CurrentSavings
	deposited := in.CurrentSavings
	months := 0
	for balance < in.TargetAmount {
		if months >= finance.MaxLoopYears*12 {
			return SavingsGoalResult{}, calcerr.Invalidf("target not reached within %d years", finance.MaxLoopYears)
		}
		balance = balance*(1+rate) + in.MonthlyContribution
		deposited += in.MonthlyContribution
		months++
	}

	res.MonthsToGoal = months
	res.BalanceAtGoal = finance.Round2(balance)
	res.TotalDeposited = finance.Round2(deposited)
	res.InterestEarned = finance.Round2(balance - deposited)

	if in.DeadlineMonths > 0 {
		res.OnTrack = months <= in.DeadlineMonths
		res.RequiredMonthly = finance.Round2(requiredMonthly(in.CurrentSavings, in.TargetAmount, rate, in.DeadlineMonths))
	} else {
		res.OnTrack = true
	}
	return res, nil
}

// requiredMonthly inverts the annuity formula: the contribution c such
// that p*(1+r)^n + c*((1+r)^n-1)/r = target.
func requiredMonthly(current, target, rate float64, months int) float64 {
	n := float64(months)
	if rate == 0 {
		c := (target - current) / n
		if c < 0 {
			return 0
		}
		return c
	}
	growth := 1.0
	annuity := 0.0
	for i := 0; i < months; i++ {
		annuity += growth
		growth *= 1 + rate
	}
	c := (target - current*growth) / annuity
	if c < 0 {
		return 0
	}
	return c
}
