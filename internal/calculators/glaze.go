package calculators

import (
	"math"
	"strings"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

// Glaze batch scaling: a base recipe in percentages totalling 100, plus
// colorant/opacifier additions measured on top of the base.

// Base percentages may drift slightly from hand-adjusted recipes.
const glazeBaseTolerance = 0.5

type GlazeIngredient struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

type GlazeRecipeInput struct {
	BatchGrams  float64           `json:"batch_grams"`
	Ingredients []GlazeIngredient `json:"ingredients"`
	Additions   []GlazeIngredient `json:"additions"`
}

func DefaultGlazeRecipeInput() GlazeRecipeInput {
	// Leach 4-3-2-1 celadon base.
	return GlazeRecipeInput{
		BatchGrams: 1000,
		Ingredients: []GlazeIngredient{
			{Name: "Potash Feldspar", Percent: 40},
			{Name: "Silica", Percent: 30},
			{Name: "Whiting", Percent: 20},
			{Name: "Kaolin", Percent: 10},
		},
		Additions: []GlazeIngredient{
			{Name: "Red Iron Oxide", Percent: 2},
		},
	}
}

type GlazeLine struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Grams   float64 `json:"grams"`
}

type GlazeRecipeResult struct {
	Base       []GlazeLine `json:"base"`
	Additions  []GlazeLine `json:"additions,omitempty"`
	BaseGrams  float64     `json:"base_grams"`
	TotalGrams float64     `json:"total_grams"`
}

func CalculateGlazeRecipe(in GlazeRecipeInput) (GlazeRecipeResult, error) {
	if math.IsNaN(in.BatchGrams) || math.IsInf(in.BatchGrams, 0) || in.BatchGrams <= 0 {
		return GlazeRecipeResult{}, calcerr.Invalidf("batch size must be positive")
	}
	if in.BatchGrams > 1_000_000 {
		return GlazeRecipeResult{}, calcerr.Invalidf("batch size %.0f g exceeds maximum 1000000", in.BatchGrams)
	}
	if len(in.Ingredients) == 0 {
		return GlazeRecipeResult{}, calcerr.Invalidf("recipe has no ingredients")
	}

	baseSum := 0.0
	for i, ing := range in.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return GlazeRecipeResult{}, calcerr.Invalidf("ingredient %d has no name", i)
		}
		if ing.Percent <= 0 || ing.Percent > 100 || math.IsNaN(ing.Percent) {
			return GlazeRecipeResult{}, calcerr.Invalidf("ingredient %q: percent %.2f outside (0, 100]", ing.Name, ing.Percent)
		}
		baseSum += ing.Percent
	}
	if math.Abs(baseSum-100) > glazeBaseTolerance {
		return GlazeRecipeResult{}, calcerr.Invalidf("base percentages sum to %.2f, expected 100", baseSum)
	}

	res := GlazeRecipeResult{
		Base:      make([]GlazeLine, 0, len(in.Ingredients)),
		BaseGrams: in.BatchGrams,
	}

	total := in.BatchGrams
	for _, ing := range in.Ingredients {
		grams := ing.Percent / 100 * in.BatchGrams
		res.Base = append(res.Base, GlazeLine{
			Name:    ing.Name,
			Percent: ing.Percent,
			Grams:   finance.Round2(grams),
		})
	}

	for i, add := range in.Additions {
		if strings.TrimSpace(add.Name) == "" {
			return GlazeRecipeResult{}, calcerr.Invalidf("addition %d has no name", i)
		}
		if add.Percent <= 0 || add.Percent > 50 || math.IsNaN(add.Percent) {
			return GlazeRecipeResult{}, calcerr.Invalidf("addition %q: percent %.2f outside (0, 50]", add.Name, add.Percent)
		}
		grams := add.Percent / 100 * in.BatchGrams
		total += grams
		res.Additions = append(res.Additions, GlazeLine{
			Name:    add.Name,
			Percent: add.Percent,
			Grams:   finance.Round2(grams),
		})
	}

	res.TotalGrams = finance.Round2(total)
	return res, nil
}
