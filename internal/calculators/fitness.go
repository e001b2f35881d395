package calculators

import (
	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/units"
)

// Mifflin-St Jeor based BMR/TDEE with a goal-adjusted macro split.

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"   // kg, cm
	UnitsImperial UnitSystem = "imperial" // lb, in
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

type Goal string

const (
	GoalCut      Goal = "cut"
	GoalMaintain Goal = "maintain"
	GoalBulk     Goal = "bulk"
)

type BMRInput struct {
	Sex    Sex        `json:"sex"`
	Age    int        `json:"age"`
	Units  UnitSystem `json:"units"`
	Weight float64    `json:"weight"` // kg or lb depending on units
	Height float64    `json:"height"` // cm or in depending on units
}

func DefaultBMRInput() BMRInput {
	return BMRInput{
		Sex:    SexMale,
		Age:    30,
		Units:  UnitsMetric,
		Weight: 80,
		Height: 180,
	}
}

type BMRResult struct {
	BMR float64 `json:"bmr"` // kcal/day at rest
}

// normalized returns weight in kg and height in cm regardless of the
// input unit system.
func (in BMRInput) normalized() (weightKg, heightCm float64, err error) {
	switch in.Units {
	case UnitsMetric:
		return in.Weight, in.Height, nil
	case UnitsImperial:
		return units.PoundsToKilograms(in.Weight), units.InchesToCentimeters(in.Height), nil
	default:
		return 0, 0, calcerr.Invalidf("unknown unit system %q", in.Units)
	}
}

func (in BMRInput) validate() error {
	if in.Sex != SexMale && in.Sex != SexFemale {
		return calcerr.Invalidf("unknown sex %q", in.Sex)
	}
	if in.Age < 10 || in.Age > 120 {
		return calcerr.Invalidf("age %d outside [10, 120]", in.Age)
	}
	weightKg, heightCm, err := in.normalized()
	if err != nil {
		return err
	}
	if weightKg < 20 || weightKg > 400 {
		return calcerr.Invalidf("weight %.1f kg outside [20, 400]", weightKg)
	}
	if heightCm < 90 || heightCm > 250 {
		return calcerr.Invalidf("height %.1f cm outside [90, 250]", heightCm)
	}
	return nil
}

func mifflinStJeor(sex Sex, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

func CalculateBMR(in BMRInput) (BMRResult, error) {
	if err := in.validate(); err != nil {
		return BMRResult{}, err
	}
	weightKg, heightCm, err := in.normalized()
	if err != nil {
		return BMRResult{}, err
	}
	return BMRResult{BMR: finance.Round2(mifflinStJeor(in.Sex, weightKg, heightCm, in.Age))}, nil
}

type TDEEInput struct {
	BMRInput
	Activity ActivityLevel `json:"activity"`
	Goal     Goal          `json:"goal"`
}

func DefaultTDEEInput() TDEEInput {
	return TDEEInput{
		BMRInput: DefaultBMRInput(),
		Activity: ActivityModerate,
		Goal:     GoalMaintain,
	}
}

type TDEEResult struct {
	BMR            float64 `json:"bmr"`
	Maintenance    float64 `json:"maintenance_calories"`
	TargetCalories float64 `json:"target_calories"`
	ProteinG       float64 `json:"protein_g"`
	FatG           float64 `json:"fat_g"`
	CarbsG         float64 `json:"carbs_g"`
}

func CalculateTDEE(in TDEEInput) (TDEEResult, error) {
	if err := in.validate(); err != nil {
		return TDEEResult{}, err
	}

	multiplier, ok := activityMultipliers[in.Activity]
	if !ok {
		return TDEEResult{}, calcerr.Invalidf("unknown activity level %q", in.Activity)
	}

	var calorieAdjust, proteinPerKg float64
	switch in.Goal {
	case GoalCut:
		calorieAdjust, proteinPerKg = -500, 2.0
	case GoalMaintain:
		calorieAdjust, proteinPerKg = 0, 1.6
	case GoalBulk:
		calorieAdjust, proteinPerKg = 300, 1.8
	default:
		return TDEEResult{}, calcerr.Invalidf("unknown goal %q", in.Goal)
	}

	weightKg, heightCm, err := in.normalized()
	if err != nil {
		return TDEEResult{}, err
	}

	bmr := mifflinStJeor(in.Sex, weightKg, heightCm, in.Age)
	maintenance := bmr * multiplier
	target := maintenance + calorieAdjust

	protein := proteinPerKg * weightKg
	fat := target * 0.25 / 9
	carbs := (target - protein*4 - fat*9) / 4
	if carbs < 0 {
		carbs = 0
	}

	return TDEEResult{
		BMR:            finance.Round2(bmr),
		Maintenance:    finance.Round2(maintenance),
		TargetCalories: finance.Round2(target),
		ProteinG:       finance.Round2(protein),
		FatG:           finance.Round2(fat),
		CarbsG:         finance.Round2(carbs),
	}, nil
}
