package calculators

import (
	"math"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/tables"
)

type InflationMode string

const (
	InflationFlat       InflationMode = "flat"
	InflationHistorical InflationMode = "historical"
)

type InflationInput struct {
	Mode   InflationMode `json:"mode"`
	Amount float64       `json:"amount"`

	// Flat mode.
	AnnualRatePct float64 `json:"annual_rate_pct"`
	Years         int     `json:"years"`

	// Historical mode, inclusive of the start year and exclusive of the end.
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

func DefaultInflationInput() InflationInput {
	return InflationInput{
		Mode:          InflationFlat,
		Amount:        1000,
		AnnualRatePct: 3,
		Years:         10,
		StartYear:     2000,
		EndYear:       2023,
	}
}

type InflationYear struct {
	Year    int     `json:"year"`
	RatePct float64 `json:"rate_pct"`
	Value   float64 `json:"value"`
}

type InflationResult struct {
	StartAmount    float64         `json:"start_amount"`
	EndAmount      float64         `json:"end_amount"`
	TotalChangePct float64         `json:"total_change_pct"`
	LossOfValuePct float64         `json:"loss_of_value_pct"`
	Years          []InflationYear `json:"years"`
}

// CalculateInflation projects what a sum of money will be worth after a run
// of inflation, either at a flat assumed rate or by replaying the recorded
// US CPI series year by year.
func CalculateInflation(in InflationInput) (InflationResult, error) {
	if err := checkMoney("amount", in.Amount); err != nil {
		return InflationResult{}, err
	}

	switch in.Mode {
	case InflationFlat:
		return inflationFlat(in)
	case InflationHistorical:
		return inflationHistorical(in)
	default:
		return InflationResult{}, calcerr.Invalidf("unknown inflation mode %q", in.Mode)
	}
}

func inflationFlat(in InflationInput) (InflationResult, error) {
	if in.AnnualRatePct < -20 || in.AnnualRatePct > 50 || math.IsNaN(in.AnnualRatePct) {
		return InflationResult{}, calcerr.Invalidf("annual rate %.2f%% outside [-20, 50]", in.AnnualRatePct)
	}
	if in.Years < 1 || in.Years > finance.MaxLoopYears {
		return InflationResult{}, calcerr.Invalidf("years must be between 1 and %d, got %d", finance.MaxLoopYears, in.Years)
	}

	res := InflationResult{
		StartAmount: in.Amount,
		Years:       make([]InflationYear, 0, in.Years),
	}
	value := in.Amount
	for y := 1; y <= in.Years; y++ {
		value *= 1 + in.AnnualRatePct/100
		res.Years = append(res.Years, InflationYear{
			Year:    y,
			RatePct: in.AnnualRatePct,
			Value:   finance.Round2(value),
		})
	}
	finishInflation(&res, value)
	return res, nil
}

func inflationHistorical(in InflationInput) (InflationResult, error) {
	if in.StartYear < tables.InflationMinYear || in.StartYear > tables.InflationMaxYear {
		return InflationResult{}, calcerr.Invalidf("start year %d outside recorded series %d-%d",
			in.StartYear, tables.InflationMinYear, tables.InflationMaxYear)
	}
	if in.EndYear <= in.StartYear || in.EndYear > tables.InflationMaxYear+1 {
		return InflationResult{}, calcerr.Invalidf("end year %d must be after %d and at most %d",
			in.EndYear, in.StartYear, tables.InflationMaxYear+1)
	}

	res := InflationResult{
		StartAmount: in.Amount,
		Years:       make([]InflationYear, 0, in.EndYear-in.StartYear),
	}
	value := in.Amount
	for year := in.StartYear; year < in.EndYear; year++ {
		rate, ok := tables.USInflationByYear[year]
		if !ok {
			return InflationResult{}, calcerr.Invalidf("no recorded inflation for year %d", year)
		}
		value *= 1 + rate/100
		res.Years = append(res.Years, InflationYear{
			Year:    year,
			RatePct: rate,
			Value:   finance.Round2(value),
		})
	}
	finishInflation(&res, value)
	return res, nil
}

func finishInflation(res *InflationResult, value float64) {
	res.EndAmount = finance.Round2(value)
	if res.StartAmount > 0 {
		res.TotalChangePct = finance.Round2((value/res.StartAmount - 1) * 100)
		// Purchasing power of the original amount in end-period money.
		res.LossOfValuePct = finance.Round2((1 - res.StartAmount/value) * 100)
	}
}
