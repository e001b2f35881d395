package calculators

import (
	"testing"

	"calckit/internal/calcerr"
)

func TestCalculateCompoundInterest(t *testing.T) {
	res, err := CalculateCompoundInterest(CompoundInterestInput{
		Principal:     1000,
		AnnualRatePct: 12,
		Years:         1,
		Compounding:   CompoundMonthly,
	})
	if err != nil {
		t.Fatalf("CalculateCompoundInterest failed: %v", err)
	}

	// 1000 * 1.01^12.
	if !almostEqual(res.FinalBalance, 1126.83) {
		t.Errorf("Incorrect balance, got %.2f, want 1126.83", res.FinalBalance)
	}
	if !almostEqual(res.TotalInterest, 126.83) {
		t.Errorf("Incorrect interest, got %.2f, want 126.83", res.TotalInterest)
	}
	if res.TotalContributions != 1000 {
		t.Errorf("Incorrect contributions, got %.2f, want 1000.00", res.TotalContributions)
	}
	if len(res.Years) != 1 {
		t.Fatalf("Incorrect snapshot count, got %d, want 1", len(res.Years))
	}
}

func TestCalculateCompoundInterestQuarterly(t *testing.T) {
	res, err := CalculateCompoundInterest(CompoundInterestInput{
		Principal:     1000,
		AnnualRatePct: 8,
		Years:         1,
		Compounding:   CompoundQuarterly,
	})
	if err != nil {
		t.Fatalf("CalculateCompoundInterest failed: %v", err)
	}

	// 1000 * 1.02^4.
	if !almostEqual(res.FinalBalance, 1082.43) {
		t.Errorf("Incorrect balance, got %.2f, want 1082.43", res.FinalBalance)
	}
}

func TestCalculateCompoundInterestContributionsOnly(t *testing.T) {
	res, err := CalculateCompoundInterest(CompoundInterestInput{
		MonthlyContribution: 100,
		AnnualRatePct:       0,
		Years:               2,
		Compounding:         CompoundMonthly,
	})
	if err != nil {
		t.Fatalf("CalculateCompoundInterest failed: %v", err)
	}

	if res.FinalBalance != 2400 {
		t.Errorf("Incorrect balance, got %.2f, want 2400.00", res.FinalBalance)
	}
	if res.TotalInterest != 0 {
		t.Errorf("Incorrect interest, got %.2f, want 0.00", res.TotalInterest)
	}
	if res.Years[0].Balance != 1200 {
		t.Errorf("Incorrect first snapshot, got %.2f, want 1200.00", res.Years[0].Balance)
	}
}

func TestCalculateCompoundInterest_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   CompoundInterestInput
	}{
		{"unknown frequency", CompoundInterestInput{Principal: 1000, AnnualRatePct: 5, Years: 1, Compounding: "daily"}},
		{"zero years", CompoundInterestInput{Principal: 1000, AnnualRatePct: 5, Years: 0, Compounding: CompoundMonthly}},
		{"rate too high", CompoundInterestInput{Principal: 1000, AnnualRatePct: 60, Years: 1, Compounding: CompoundMonthly}},
	}
	for _, tc := range cases {
		if _, err := CalculateCompoundInterest(tc.in); !calcerr.IsInvalid(err) {
			t.Errorf("%s: expected invalid input error, got %v", tc.name, err)
		}
	}
}

func TestCalculateSavingsGoal(t *testing.T) {
	res, err := CalculateSavingsGoal(SavingsGoalInput{
		TargetAmount:        1200,
		MonthlyContribution: 100,
	})
	if err != nil {
		t.Fatalf("CalculateSavingsGoal failed: %v", err)
	}

	if res.MonthsToGoal != 12 {
		t.Errorf("Incorrect months, got %d, want 12", res.MonthsToGoal)
	}
	if res.TotalDeposited != 1200 {
		t.Errorf("Incorrect deposits, got %.2f, want 1200.00", res.TotalDeposited)
	}
	if res.InterestEarned != 0 {
		t.Errorf("Incorrect interest, got %.2f, want 0.00", res.InterestEarned)
	}
	if !res.OnTrack {
		t.Error("Expected no-deadline goal to count as on track")
	}
}

func TestCalculateSavingsGoalWithGrowth(t *testing.T) {
	res, err := CalculateSavingsGoal(SavingsGoalInput{
		TargetAmount:   1050,
		CurrentSavings: 1000,
		AnnualRatePct:  12,
	})
	if err != nil {
		t.Fatalf("CalculateSavingsGoal failed: %v", err)
	}

	// 1% a month compounds past 1050 in the fifth month.
	if res.MonthsToGoal != 5 {
		t.Errorf("Incorrect months, got %d, want 5", res.MonthsToGoal)
	}
	if !almostEqual(res.InterestEarned, 51.01) {
		t.Errorf("Incorrect interest, got %.2f, want 51.01", res.InterestEarned)
	}
}

func TestCalculateSavingsGoalDeadline(t *testing.T) {
	res, err := CalculateSavingsGoal(SavingsGoalInput{
		TargetAmount:        1200,
		MonthlyContribution: 100,
		DeadlineMonths:      6,
	})
	if err != nil {
		t.Fatalf("CalculateSavingsGoal failed: %v", err)
	}

	if res.OnTrack {
		t.Error("Expected 12 months of saving to miss a 6 month deadline")
	}
	if !almostEqual(res.RequiredMonthly, 200) {
		t.Errorf("Incorrect required contribution, got %.2f, want 200.00", res.RequiredMonthly)
	}
}

func TestCalculateSavingsGoalAlreadyReached(t *testing.T) {
	res, err := CalculateSavingsGoal(SavingsGoalInput{
		TargetAmount:   1200,
		CurrentSavings: 2000,
	})
	if err != nil {
		t.Fatalf("CalculateSavingsGoal failed: %v", err)
	}

	if !res.AlreadyReached {
		t.Error("Expected savings above the target to be flagged as reached")
	}
	if res.MonthsToGoal != 0 {
		t.Errorf("Incorrect months, got %d, want 0", res.MonthsToGoal)
	}
}

func TestCalculateSavingsGoal_Unreachable(t *testing.T) {
	_, err := CalculateSavingsGoal(SavingsGoalInput{TargetAmount: 1200, CurrentSavings: 100})
	if !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error without contributions or growth, got %v", err)
	}
}
