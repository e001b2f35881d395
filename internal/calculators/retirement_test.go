package calculators

import (
	"testing"

	"calckit/internal/calcerr"
)

// oneYear401k builds a single projection year with growth switched off so
// contribution math can be checked in isolation.
func oneYear401k(age int, salary, contributionPct float64) Retirement401kInput {
	return Retirement401kInput{
		CurrentAge:      age,
		RetirementAge:   age + 1,
		AnnualSalary:    salary,
		ContributionPct: contributionPct,
	}
}

func TestCalculateRetirement401kCapsDeferral(t *testing.T) {
	res, err := CalculateRetirement401k(oneYear401k(30, 500000, 50))
	if err != nil {
		t.Fatalf("CalculateRetirement401k failed: %v", err)
	}

	if res.FinalBalance != 23000 {
		t.Errorf("Incorrect capped balance, got %.2f, want 23000.00", res.FinalBalance)
	}
	if len(res.Years) != 1 {
		t.Fatalf("Incorrect year count, got %d, want 1", len(res.Years))
	}
	if !res.Years[0].CappedByIRS {
		t.Error("Expected the deferral to be flagged as capped")
	}
	if res.Years[0].Employee != 23000 {
		t.Errorf("Incorrect employee contribution, got %.2f, want 23000.00", res.Years[0].Employee)
	}
}

func TestCalculateRetirement401kCatchUp(t *testing.T) {
	res, err := CalculateRetirement401k(oneYear401k(50, 500000, 50))
	if err != nil {
		t.Fatalf("CalculateRetirement401k failed: %v", err)
	}

	// 23000 deferral plus the 7500 catch-up from age 50.
	if res.FinalBalance != 30500 {
		t.Errorf("Incorrect catch-up balance, got %.2f, want 30500.00", res.FinalBalance)
	}
}

func TestCalculateRetirement401kEmployerMatch(t *testing.T) {
	in := oneYear401k(30, 100000, 10)
	in.EmployerMatchPct = 50
	in.EmployerMatchLimitPct = 6

	res, err := CalculateRetirement401k(in)
	if err != nil {
		t.Fatalf("CalculateRetirement401k failed: %v", err)
	}

	// Employee 10%, employer matches half of the first 6% of salary.
	if !almostEqual(res.TotalEmployee, 10000) {
		t.Errorf("Incorrect employee total, got %.2f, want 10000.00", res.TotalEmployee)
	}
	if !almostEqual(res.TotalEmployer, 3000) {
		t.Errorf("Incorrect employer total, got %.2f, want 3000.00", res.TotalEmployer)
	}
	if !almostEqual(res.FinalBalance, 13000) {
		t.Errorf("Incorrect final balance, got %.2f, want 13000.00", res.FinalBalance)
	}
}

func TestCalculateRetirement401kGrowth(t *testing.T) {
	in := oneYear401k(30, 100000, 10)
	in.RetirementAge = 32
	in.AnnualReturnPct = 10

	res, err := CalculateRetirement401k(in)
	if err != nil {
		t.Fatalf("CalculateRetirement401k failed: %v", err)
	}

	// Year 1 ends on 10000; year 2 grows it 10% and adds another 10000.
	if !almostEqual(res.Years[0].Balance, 10000) {
		t.Errorf("Incorrect year 1 balance, got %.2f, want 10000.00", res.Years[0].Balance)
	}
	if !almostEqual(res.FinalBalance, 21000) {
		t.Errorf("Incorrect final balance, got %.2f, want 21000.00", res.FinalBalance)
	}
}

func TestCalculateRetirement401k_InvalidInput(t *testing.T) {
	in := DefaultRetirement401kInput()
	in.RetirementAge = in.CurrentAge

	if _, err := CalculateRetirement401k(in); !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for retirement age, got %v", err)
	}

	in = DefaultRetirement401kInput()
	in.ContributionPct = 101
	if _, err := CalculateRetirement401k(in); !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for contribution, got %v", err)
	}
}
