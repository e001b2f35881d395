package calculators

import (
	"math"
	"sort"
	"strings"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

type PayoffStrategy string

const (
	StrategySnowball  PayoffStrategy = "snowball"
	StrategyAvalanche PayoffStrategy = "avalanche"
	StrategyCompare   PayoffStrategy = "compare"
)

// Simulation cap; a plan that cannot clear in 50 years is rejected as
// underfunded rather than looped forever.
const maxPayoffMonths = 600

type Debt struct {
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	AnnualRate float64 `json:"annual_rate_pct"`
	MinPayment float64 `json:"min_payment"`
}

type DebtPayoffInput struct {
	Debts        []Debt         `json:"debts"`
	ExtraMonthly float64        `json:"extra_monthly"`
	Strategy     PayoffStrategy `json:"strategy"`
}

func DefaultDebtPayoffInput() DebtPayoffInput {
	return DebtPayoffInput{
		Debts: []Debt{
			{Name: "Credit card", Balance: 4500, AnnualRate: 22.9, MinPayment: 120},
			{Name: "Car loan", Balance: 11000, AnnualRate: 6.5, MinPayment: 260},
			{Name: "Student loan", Balance: 18000, AnnualRate: 4.3, MinPayment: 210},
		},
		ExtraMonthly: 200,
		Strategy:     StrategyAvalanche,
	}
}

type DebtPayoffLine struct {
	Name         string  `json:"name"`
	PayoffMonth  int     `json:"payoff_month"`
	InterestPaid float64 `json:"interest_paid"`
}

type DebtPayoffPlan struct {
	Strategy      PayoffStrategy   `json:"strategy"`
	Months        int              `json:"months"`
	TotalPaid     float64          `json:"total_paid"`
	TotalInterest float64          `json:"total_interest"`
	Order         []DebtPayoffLine `json:"order"`
}

type DebtPayoffResult struct {
	Plan        *DebtPayoffPlan `json:"plan,omitempty"`
	Snowball    *DebtPayoffPlan `json:"snowball,omitempty"`
	Avalanche   *DebtPayoffPlan `json:"avalanche,omitempty"`
	SavedByBest float64         `json:"saved_by_best,omitempty"`
}

// CalculateDebtPayoff simulates clearing a set of debts month by month.
// Minimums are paid on every debt, the extra budget goes to a single focus
// debt chosen by the strategy, and payments freed by a cleared debt roll
// into the next one.
func CalculateDebtPayoff(in DebtPayoffInput) (DebtPayoffResult, error) {
	if len(in.Debts) == 0 {
		return DebtPayoffResult{}, calcerr.Invalidf("no debts given")
	}
	if len(in.Debts) > MaxDebtsPerRequest {
		return DebtPayoffResult{}, calcerr.Invalidf("%d debts exceeds maximum %d", len(in.Debts), MaxDebtsPerRequest)
	}
	if err := checkMoney("extra monthly payment", in.ExtraMonthly); err != nil {
		return DebtPayoffResult{}, err
	}
	for i, d := range in.Debts {
		if strings.TrimSpace(d.Name) == "" {
			return DebtPayoffResult{}, calcerr.Invalidf("debt %d has no name", i)
		}
		if err := checkMoney("balance of "+d.Name, d.Balance); err != nil {
			return DebtPayoffResult{}, err
		}
		if err := checkPercent("rate of "+d.Name, d.AnnualRate, 100); err != nil {
			return DebtPayoffResult{}, err
		}
		if err := checkMoney("minimum payment of "+d.Name, d.MinPayment); err != nil {
			return DebtPayoffResult{}, err
		}
		// A minimum below the first month's interest can never reduce the balance.
		if d.Balance > 0 && d.MinPayment+in.ExtraMonthly <= d.Balance*d.AnnualRate/100/12 {
			return DebtPayoffResult{}, calcerr.Invalidf("payments on %s do not cover its interest", d.Name)
		}
	}

	switch in.Strategy {
	case StrategySnowball, StrategyAvalanche:
		plan, err := simulatePayoff(in.Debts, in.ExtraMonthly, in.Strategy)
		if err != nil {
			return DebtPayoffResult{}, err
		}
		return DebtPayoffResult{Plan: plan}, nil
	case StrategyCompare:
		snow, err := simulatePayoff(in.Debts, in.ExtraMonthly, StrategySnowball)
		if err != nil {
			return DebtPayoffResult{}, err
		}
		aval, err := simulatePayoff(in.Debts, in.ExtraMonthly, StrategyAvalanche)
		if err != nil {
			return DebtPayoffResult{}, err
		}
		return DebtPayoffResult{
			Snowball:    snow,
			Avalanche:   aval,
			SavedByBest: finance.Round2(math.Abs(snow.TotalInterest - aval.TotalInterest)),
		}, nil
	default:
		return DebtPayoffResult{}, calcerr.Invalidf("unknown strategy %q", in.Strategy)
	}
}

type debtState struct {
	name     string
	balance  float64
	rate     float64
	min      float64
	interest float64
	paidOff  int
}

func simulatePayoff(debts []Debt, extra float64, strategy PayoffStrategy) (*DebtPayoffPlan, error) {
	states := make([]*debtState, 0, len(debts))
	for _, d := range debts {
		states = append(states, &debtState{
			name:    d.Name,
			balance: d.Balance,
			rate:    d.AnnualRate / 100 / 12,
			min:     d.MinPayment,
		})
	}

	// Focus order is fixed up front: smallest balance first for snowball,
	// highest rate first for avalanche. Ties keep the input order.
	order := make([]*debtState, len(states))
	copy(order, states)
	if strategy == StrategySnowball {
		sort.SliceStable(order, func(i, j int) bool { return order[i].balance < order[j].balance })
	} else {
		sort.SliceStable(order, func(i, j int) bool { return order[i].rate > order[j].rate })
	}

	plan := &DebtPayoffPlan{Strategy: strategy}
	totalPaid := 0.0

	month := 0
	for remainingBalance(states) > 0.01 {
		month++
		if month > maxPayoffMonths {
			return nil, calcerr.Invalidf("debts not cleared within %d months, increase payments", maxPayoffMonths)
		}

		budget := extra
		for _, s := range states {
			if s.balance <= 0 {
				// Freed minimums join the extra budget.
				budget += s.min
				continue
			}
			interest := s.balance * s.rate
			s.interest += interest
			s.balance += interest

			pay := math.Min(s.min, s.balance)
			s.balance -= pay
			totalPaid += pay
		}

		// Spend the budget down the focus order, spilling over when a
		// focus debt clears mid-month.
		for _, s := range order {
			if budget <= 0 {
				break
			}
			if s.balance <= 0 {
				continue
			}
			pay := math.Min(budget, s.balance)
			s.balance -= pay
			totalPaid += pay
			budget -= pay
		}

		for _, s := range order {
			if s.balance <= 0.01 && s.paidOff == 0 {
				s.balance = 0
				s.paidOff = month
			}
		}
	}

	plan.Months = month
	plan.TotalPaid = finance.Round2(totalPaid)
	for _, s := range order {
		plan.TotalInterest += s.interest
		plan.Order = append(plan.Order, DebtPayoffLine{
			Name:         s.name,
			PayoffMonth:  s.paidOff,
			InterestPaid: finance.Round2(s.interest),
		})
	}
	plan.TotalInterest = finance.Round2(plan.TotalInterest)
	sort.SliceStable(plan.Order, func(i, j int) bool { return plan.Order[i].PayoffMonth < plan.Order[j].PayoffMonth })
	return plan, nil
}

func remainingBalance(states []*debtState) float64 {
	total := 0.0
	for _, s := range states {
		if s.balance > 0 {
			total += s.balance
		}
	}
	return total
}
