package calculators

import (
	"testing"

	"calckit/internal/calcerr"
)

func TestCalculateDebtPayoffSingleDebt(t *testing.T) {
	res, err := CalculateDebtPayoff(DebtPayoffInput{
		Debts:    []Debt{{Name: "Card", Balance: 1000, AnnualRate: 0, MinPayment: 100}},
		Strategy: StrategyAvalanche,
	})
	if err != nil {
		t.Fatalf("CalculateDebtPayoff failed: %v", err)
	}

	plan := res.Plan
	if plan == nil {
		t.Fatal("Expected a plan for a single-strategy run")
	}
	if plan.Months != 10 {
		t.Errorf("Incorrect months, got %d, want 10", plan.Months)
	}
	if plan.TotalPaid != 1000 {
		t.Errorf("Incorrect total paid, got %.2f, want 1000.00", plan.TotalPaid)
	}
	if plan.TotalInterest != 0 {
		t.Errorf("Incorrect interest, got %.2f, want 0.00", plan.TotalInterest)
	}
	if len(plan.Order) != 1 || plan.Order[0].PayoffMonth != 10 {
		t.Errorf("Incorrect payoff order: %+v", plan.Order)
	}
}

func twoDebts() []Debt {
	return []Debt{
		{Name: "Card", Balance: 1000, AnnualRate: 10, MinPayment: 20},
		{Name: "Loan", Balance: 500, AnnualRate: 0, MinPayment: 20},
	}
}

func TestCalculateDebtPayoffStrategyFocus(t *testing.T) {
	snow, err := CalculateDebtPayoff(DebtPayoffInput{Debts: twoDebts(), ExtraMonthly: 200, Strategy: StrategySnowball})
	if err != nil {
		t.Fatalf("CalculateDebtPayoff snowball failed: %v", err)
	}
	aval, err := CalculateDebtPayoff(DebtPayoffInput{Debts: twoDebts(), ExtraMonthly: 200, Strategy: StrategyAvalanche})
	if err != nil {
		t.Fatalf("CalculateDebtPayoff avalanche failed: %v", err)
	}

	// Snowball clears the small balance first, avalanche the dear one.
	if got := snow.Plan.Order[0].Name; got != "Loan" {
		t.Errorf("Incorrect snowball focus, got %s, want Loan", got)
	}
	if got := aval.Plan.Order[0].Name; got != "Card" {
		t.Errorf("Incorrect avalanche focus, got %s, want Card", got)
	}
	if aval.Plan.TotalInterest > snow.Plan.TotalInterest {
		t.Errorf("Avalanche paid more interest than snowball: %.2f vs %.2f",
			aval.Plan.TotalInterest, snow.Plan.TotalInterest)
	}
}

func TestCalculateDebtPayoffCompare(t *testing.T) {
	res, err := CalculateDebtPayoff(DebtPayoffInput{Debts: twoDebts(), ExtraMonthly: 200, Strategy: StrategyCompare})
	if err != nil {
		t.Fatalf("CalculateDebtPayoff compare failed: %v", err)
	}

	if res.Plan != nil {
		t.Error("Expected no single plan in compare mode")
	}
	if res.Snowball == nil || res.Avalanche == nil {
		t.Fatal("Expected both strategy plans in compare mode")
	}
	if res.SavedByBest <= 0 {
		t.Errorf("Expected a positive interest difference, got %.2f", res.SavedByBest)
	}
}

func TestCalculateDebtPayoffRollsFreedPayments(t *testing.T) {
	res, err := CalculateDebtPayoff(DebtPayoffInput{
		Debts: []Debt{
			{Name: "Small", Balance: 100, AnnualRate: 0, MinPayment: 50},
			{Name: "Big", Balance: 1000, AnnualRate: 0, MinPayment: 50},
		},
		Strategy: StrategySnowball,
	})
	if err != nil {
		t.Fatalf("CalculateDebtPayoff failed: %v", err)
	}

	// Small clears in 2 months; its 50 then doubles the pace on Big:
	// 1000 - 2*50 = 900 left, at 100 a month from month 3.
	plan := res.Plan
	if plan.Order[0].PayoffMonth != 2 {
		t.Errorf("Incorrect small payoff month, got %d, want 2", plan.Order[0].PayoffMonth)
	}
	if plan.Months != 11 {
		t.Errorf("Incorrect total months, got %d, want 11", plan.Months)
	}
}

func TestCalculateDebtPayoff_Underfunded(t *testing.T) {
	_, err := CalculateDebtPayoff(DebtPayoffInput{
		Debts:    []Debt{{Name: "Spiral", Balance: 10000, AnnualRate: 100, MinPayment: 100}},
		Strategy: StrategyAvalanche,
	})
	if !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for uncovered interest, got %v", err)
	}
}

func TestCalculateDebtPayoff_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   DebtPayoffInput
	}{
		{"no debts", DebtPayoffInput{Strategy: StrategySnowball}},
		{"unnamed debt", DebtPayoffInput{Debts: []Debt{{Balance: 100, MinPayment: 10}}, Strategy: StrategySnowball}},
		{"negative balance", DebtPayoffInput{Debts: []Debt{{Name: "X", Balance: -1, MinPayment: 10}}, Strategy: StrategySnowball}},
		{"unknown strategy", DebtPayoffInput{Debts: []Debt{{Name: "X", Balance: 100, MinPayment: 10}}, Strategy: "waterfall"}},
	}
	for _, tc := range cases {
		if _, err := CalculateDebtPayoff(tc.in); !calcerr.IsInvalid(err) {
			t.Errorf("%s: expected invalid input error, got %v", tc.name, err)
		}
	}
}
