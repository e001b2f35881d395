// Package units converts between the measurement units the calculator
// forms accept. Length, mass and volume are ratio scales driven by a
// factor table; temperature is affine and handled separately.
package units

import (
	"math"

	"calckit/internal/calcerr"
)

type Category string

const (
	CategoryLength      Category = "length"
	CategoryMass        Category = "mass"
	CategoryVolume      Category = "volume"
	CategoryTemperature Category = "temperature"
)

type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
	Kilometer  Unit = "km"
	Inch       Unit = "in"
	Foot       Unit = "ft"
	Yard       Unit = "yd"
	Mile       Unit = "mi"

	Milligram Unit = "mg"
	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Ounce     Unit = "oz"
	Pound     Unit = "lb"
	Stone     Unit = "st"

	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	FluidOunce Unit = "floz"
	Cup        Unit = "cup"
	Pint       Unit = "pt"
	Quart      Unit = "qt"
	Gallon     Unit = "gal"

	Celsius    Unit = "c"
	Fahrenheit Unit = "f"
	Kelvin     Unit = "k"
)

// Exact statutory conversion factors.
const (
	centimetersPerInch = 2.54
	gramsPerOunce      = 28.349523125
	gramsPerPound      = 453.59237
	litersPerGallon    = 3.785411784
)

type unitInfo struct {
	category Category
	factor   float64 // multiplier to the category base unit
}

// Base units: meter, gram, liter.
var unitTable = map[Unit]unitInfo{
	Millimeter: {CategoryLength, 0.001},
	Centimeter: {CategoryLength, 0.01},
	Meter:      {CategoryLength, 1},
	Kilometer:  {CategoryLength, 1000},
	Inch:       {CategoryLength, centimetersPerInch / 100},
	Foot:       {CategoryLength, 12 * centimetersPerInch / 100},
	Yard:       {CategoryLength, 36 * centimetersPerInch / 100},
	Mile:       {CategoryLength, 63360 * centimetersPerInch / 100},

	Milligram: {CategoryMass, 0.001},
	Gram:      {CategoryMass, 1},
	Kilogram:  {CategoryMass, 1000},
	Ounce:     {CategoryMass, gramsPerOunce},
	Pound:     {CategoryMass, gramsPerPound},
	Stone:     {CategoryMass, 14 * gramsPerPound},

	Milliliter: {CategoryVolume, 0.001},
	Liter:      {CategoryVolume, 1},
	Teaspoon:   {CategoryVolume, litersPerGallon / 768},
	Tablespoon: {CategoryVolume, litersPerGallon / 256},
	FluidOunce: {CategoryVolume, litersPerGallon / 128},
	Cup:        {CategoryVolume, litersPerGallon / 16},
	Pint:       {CategoryVolume, litersPerGallon / 8},
	Quart:      {CategoryVolume, litersPerGallon / 4},
	Gallon:     {CategoryVolume, litersPerGallon},

	Celsius:    {CategoryTemperature, 0},
	Fahrenheit: {CategoryTemperature, 0},
	Kelvin:     {CategoryTemperature, 0},
}

// Convert converts value between two units of the same category.
func Convert(value float64, from, to Unit) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, calcerr.Invalidf("value must be finite")
	}

	fi, ok := unitTable[from]
	if !ok {
		return 0, calcerr.Invalidf("unknown unit %q", from)
	}
	ti, ok := unitTable[to]
	if !ok {
		return 0, calcerr.Invalidf("unknown unit %q", to)
	}
	if fi.category != ti.category {
		return 0, calcerr.Invalidf("cannot convert %s (%s) to %s (%s)", from, fi.category, to, ti.category)
	}

	if fi.category == CategoryTemperature {
		return convertTemperature(value, from, to), nil
	}
	return value * fi.factor / ti.factor, nil
}

func convertTemperature(value float64, from, to Unit) float64 {
	var kelvin float64
	switch from {
	case Celsius:
		kelvin = value + 273.15
	case Fahrenheit:
		kelvin = (value-32)*5/9 + 273.15
	default:
		kelvin = value
	}

	switch to {
	case Celsius:
		return kelvin - 273.15
	case Fahrenheit:
		return (kelvin-273.15)*9/5 + 32
	default:
		return kelvin
	}
}

// Shorthands used by the fitness and brewing calculators.

func PoundsToKilograms(lb float64) float64 {
	return lb * gramsPerPound / 1000
}

func InchesToCentimeters(in float64) float64 {
	return in * centimetersPerInch
}

func OuncesToGrams(oz float64) float64 {
	return oz * gramsPerOunce
}

func GallonsToLiters(gal float64) float64 {
	return gal * litersPerGallon
}
