package calculators

import (
	"math"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/units"
)

// Tinseth IBU estimation. Hop utilization is the product of a gravity
// "bigness" factor and a boil-time factor:
//
//	bigness = 1.65 * 0.000125^(gravity-1)
//	boil    = (1 - e^(-0.04*minutes)) / 4.15

type HopAddition struct {
	AlphaAcidPct float64 `json:"alpha_acid_pct"`
	Weight       float64 `json:"weight"` // oz or g depending on units
	BoilTimeMin  float64 `json:"boil_time_min"`
}

type IBUInput struct {
	Units       UnitSystem    `json:"units"` // imperial: oz + gal, metric: g + l
	BatchVolume float64       `json:"batch_volume"`
	BoilGravity float64       `json:"boil_gravity"`
	Additions   []HopAddition `json:"additions"`
}

func DefaultIBUInput() IBUInput {
	return IBUInput{
		Units:       UnitsImperial,
		BatchVolume: 5,
		BoilGravity: 1.050,
		Additions: []HopAddition{
			{AlphaAcidPct: 5.5, Weight: 1, BoilTimeMin: 60},
			{AlphaAcidPct: 5.5, Weight: 0.5, BoilTimeMin: 15},
		},
	}
}

type AdditionIBU struct {
	Utilization float64 `json:"utilization"`
	IBU         float64 `json:"ibu"`
}

type IBUResult struct {
	TotalIBU  float64       `json:"total_ibu"`
	Additions []AdditionIBU `json:"additions"`
}

func CalculateIBU(in IBUInput) (IBUResult, error) {
	if in.BatchVolume <= 0 || math.IsNaN(in.BatchVolume) || math.IsInf(in.BatchVolume, 0) {
		return IBUResult{}, calcerr.Invalidf("batch volume must be positive")
	}
	if in.BoilGravity < 1.0 || in.BoilGravity > 1.2 {
		return IBUResult{}, calcerr.Invalidf("boil gravity %.3f outside [1.000, 1.200]", in.BoilGravity)
	}
	if len(in.Additions) == 0 {
		return IBUResult{}, calcerr.Invalidf("at least one hop addition is required")
	}
	if len(in.Additions) > MaxHopAdditions {
		return IBUResult{}, calcerr.Invalidf("too many hop additions: %d, maximum %d", len(in.Additions), MaxHopAdditions)
	}

	// Normalize to grams and liters.
	var liters float64
	switch in.Units {
	case UnitsMetric:
		liters = in.BatchVolume
	case UnitsImperial:
		liters = units.GallonsToLiters(in.BatchVolume)
	default:
		return IBUResult{}, calcerr.Invalidf("unknown unit system %q", in.Units)
	}

	bigness := 1.65 * math.Pow(0.000125, in.BoilGravity-1)

	res := IBUResult{Additions: make([]AdditionIBU, 0, len(in.Additions))}
	for i, add := range in.Additions {
		if add.AlphaAcidPct <= 0 || add.AlphaAcidPct > 25 {
			return IBUResult{}, calcerr.Invalidf("addition %d: alpha acid %.2f%% outside (0, 25]", i, add.AlphaAcidPct)
		}
		if add.Weight <= 0 {
			return IBUResult{}, calcerr.Invalidf("addition %d: weight must be positive", i)
		}
		if add.BoilTimeMin < 0 || add.BoilTimeMin > 240 {
			return IBUResult{}, calcerr.Invalidf("addition %d: boil time %.0f outside [0, 240]", i, add.BoilTimeMin)
		}

		grams := add.Weight
		if in.Units == UnitsImperial {
			grams = units.OuncesToGrams(add.Weight)
		}

		boilFactor := (1 - math.Exp(-0.04*add.BoilTimeMin)) / 4.15
		utilization := bigness * boilFactor
		mgPerLiter := add.AlphaAcidPct / 100 * grams * 1000 / liters
		ibu := utilization * mgPerLiter

		res.Additions = append(res.Additions, AdditionIBU{
			Utilization: finance.Round2(utilization * 100), // percent
			IBU:         finance.Round2(ibu),
		})
		res.TotalIBU += ibu
	}

	res.TotalIBU = finance.Round2(res.TotalIBU)
	return res, nil
}
