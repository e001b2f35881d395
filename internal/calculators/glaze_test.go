package calculators

import (
	"testing"

	"calckit/internal/calcerr"
)

func TestCalculateGlazeRecipe(t *testing.T) {
	res, err := CalculateGlazeRecipe(DefaultGlazeRecipeInput())
	if err != nil {
		t.Fatalf("CalculateGlazeRecipe failed: %v", err)
	}

	wantGrams := []float64{400, 300, 200, 100}
	if len(res.Base) != len(wantGrams) {
		t.Fatalf("Incorrect base line count, got %d, want %d", len(res.Base), len(wantGrams))
	}
	for i, want := range wantGrams {
		if res.Base[i].Grams != want {
			t.Errorf("Incorrect grams for %s, got %.2f, want %.2f", res.Base[i].Name, res.Base[i].Grams, want)
		}
	}

	if len(res.Additions) != 1 {
		t.Fatalf("Incorrect addition count, got %d, want 1", len(res.Additions))
	}
	if res.Additions[0].Grams != 20 {
		t.Errorf("Incorrect addition grams, got %.2f, want 20.00", res.Additions[0].Grams)
	}
	if res.BaseGrams != 1000 {
		t.Errorf("Incorrect base total, got %.2f, want 1000.00", res.BaseGrams)
	}
	if res.TotalGrams != 1020 {
		t.Errorf("Incorrect batch total, got %.2f, want 1020.00", res.TotalGrams)
	}
}

func TestCalculateGlazeRecipeScales(t *testing.T) {
	res, err := CalculateGlazeRecipe(GlazeRecipeInput{
		BatchGrams: 2500,
		Ingredients: []GlazeIngredient{
			{Name: "Nepheline Syenite", Percent: 50},
			{Name: "Silica", Percent: 50},
		},
	})
	if err != nil {
		t.Fatalf("CalculateGlazeRecipe failed: %v", err)
	}

	for _, line := range res.Base {
		if line.Grams != 1250 {
			t.Errorf("Incorrect grams for %s, got %.2f, want 1250.00", line.Name, line.Grams)
		}
	}
	if res.TotalGrams != 2500 {
		t.Errorf("Incorrect batch total, got %.2f, want 2500.00", res.TotalGrams)
	}
}

func TestCalculateGlazeRecipe_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   GlazeRecipeInput
	}{
		{"zero batch", GlazeRecipeInput{BatchGrams: 0, Ingredients: []GlazeIngredient{{Name: "Silica", Percent: 100}}}},
		{"no ingredients", GlazeRecipeInput{BatchGrams: 1000}},
		{"bad sum", GlazeRecipeInput{BatchGrams: 1000, Ingredients: []GlazeIngredient{{Name: "Silica", Percent: 90}}}},
		{"unnamed ingredient", GlazeRecipeInput{BatchGrams: 1000, Ingredients: []GlazeIngredient{{Name: "  ", Percent: 100}}}},
		{"oversized addition", GlazeRecipeInput{
			BatchGrams:  1000,
			Ingredients: []GlazeIngredient{{Name: "Silica", Percent: 100}},
			Additions:   []GlazeIngredient{{Name: "Cobalt Carbonate", Percent: 60}},
		}},
	}
	for _, tc := range cases {
		if _, err := CalculateGlazeRecipe(tc.in); !calcerr.IsInvalid(err) {
			t.Errorf("%s: expected invalid input error, got %v", tc.name, err)
		}
	}
}
