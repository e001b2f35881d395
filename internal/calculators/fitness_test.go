package calculators

import (
	"math"
	"testing"

	"calckit/internal/calcerr"
)

func TestCalculateBMR(t *testing.T) {
	cases := []struct {
		name string
		in   BMRInput
		want float64
	}{
		{"male metric", BMRInput{Sex: SexMale, Age: 30, Units: UnitsMetric, Weight: 80, Height: 180}, 1780},
		{"female metric", BMRInput{Sex: SexFemale, Age: 30, Units: UnitsMetric, Weight: 80, Height: 180}, 1614},
	}

	for _, tc := range cases {
		res, err := CalculateBMR(tc.in)
		if err != nil {
			t.Fatalf("CalculateBMR(%s) failed: %v", tc.name, err)
		}
		if res.BMR != tc.want {
			t.Errorf("Incorrect BMR for %s, got %.2f, want %.2f", tc.name, res.BMR, tc.want)
		}
	}
}

func TestCalculateBMRImperialMatchesMetric(t *testing.T) {
	metric, err := CalculateBMR(BMRInput{Sex: SexMale, Age: 30, Units: UnitsMetric, Weight: 80, Height: 180})
	if err != nil {
		t.Fatalf("CalculateBMR metric failed: %v", err)
	}

	// 80 kg and 180 cm expressed in pounds and inches.
	imperial, err := CalculateBMR(BMRInput{Sex: SexMale, Age: 30, Units: UnitsImperial, Weight: 176.3698097, Height: 70.86614173})
	if err != nil {
		t.Fatalf("CalculateBMR imperial failed: %v", err)
	}

	if math.Abs(metric.BMR-imperial.BMR) > 0.1 {
		t.Errorf("Unit systems disagree: metric %.2f, imperial %.2f", metric.BMR, imperial.BMR)
	}
}

func TestCalculateTDEE(t *testing.T) {
	res, err := CalculateTDEE(DefaultTDEEInput())
	if err != nil {
		t.Fatalf("CalculateTDEE failed: %v", err)
	}

	// BMR 1780 at the 1.55 moderate multiplier.
	if !almostEqual(res.BMR, 1780) {
		t.Errorf("Incorrect BMR, got %.2f, want 1780.00", res.BMR)
	}
	if !almostEqual(res.Maintenance, 2759) {
		t.Errorf("Incorrect maintenance, got %.2f, want 2759.00", res.Maintenance)
	}
	if !almostEqual(res.TargetCalories, 2759) {
		t.Errorf("Incorrect target, got %.2f, want 2759.00", res.TargetCalories)
	}
	if !almostEqual(res.ProteinG, 128) {
		t.Errorf("Incorrect protein, got %.2f, want 128.00", res.ProteinG)
	}
	if !almostEqual(res.FatG, 76.64) {
		t.Errorf("Incorrect fat, got %.2f, want 76.64", res.FatG)
	}
	if !almostEqual(res.CarbsG, 389.31) {
		t.Errorf("Incorrect carbs, got %.2f, want 389.31", res.CarbsG)
	}
}

func TestCalculateTDEECut(t *testing.T) {
	in := DefaultTDEEInput()
	in.Goal = GoalCut

	res, err := CalculateTDEE(in)
	if err != nil {
		t.Fatalf("CalculateTDEE failed: %v", err)
	}

	if !almostEqual(res.TargetCalories, 2259) {
		t.Errorf("Incorrect cut target, got %.2f, want 2259.00", res.TargetCalories)
	}
	if !almostEqual(res.ProteinG, 160) {
		t.Errorf("Incorrect cut protein, got %.2f, want 160.00", res.ProteinG)
	}
}

func TestCalculateBMR_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   BMRInput
	}{
		{"age too low", BMRInput{Sex: SexMale, Age: 5, Units: UnitsMetric, Weight: 80, Height: 180}},
		{"weight too low", BMRInput{Sex: SexMale, Age: 30, Units: UnitsMetric, Weight: 10, Height: 180}},
		{"unknown sex", BMRInput{Sex: "other", Age: 30, Units: UnitsMetric, Weight: 80, Height: 180}},
		{"unknown units", BMRInput{Sex: SexMale, Age: 30, Units: "nautical", Weight: 80, Height: 180}},
	}
	for _, tc := range cases {
		if _, err := CalculateBMR(tc.in); !calcerr.IsInvalid(err) {
			t.Errorf("%s: expected invalid input error, got %v", tc.name, err)
		}
	}
}

func TestCalculateTDEE_InvalidInput(t *testing.T) {
	in := DefaultTDEEInput()
	in.Activity = "heroic"
	if _, err := CalculateTDEE(in); !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for activity, got %v", err)
	}

	in = DefaultTDEEInput()
	in.Goal = "recomp"
	if _, err := CalculateTDEE(in); !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for goal, got %v", err)
	}
}
