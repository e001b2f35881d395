package calculators

import (
	"math"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
)

// TipRounding selects how the split is rounded up to friendly numbers.
type TipRounding string

const (
	TipRoundingNone      TipRounding = "none"
	TipRoundingTotal     TipRounding = "total"
	TipRoundingPerPerson TipRounding = "per_person"
)

type TipInput struct {
	BillAmount float64     `json:"bill_amount"`
	TipPct     float64     `json:"tip_pct"`
	PartySize  int         `json:"party_size"`
	Rounding   TipRounding `json:"rounding"`
}

func DefaultTipInput() TipInput {
	return TipInput{
		BillAmount: 50,
		TipPct:     18,
		PartySize:  2,
		Rounding:   TipRoundingNone,
	}
}

type TipResult struct {
	TipAmount    float64 `json:"tip_amount"`
	Total        float64 `json:"total"`
	PerPerson    float64 `json:"per_person"`
	TipPerPerson float64 `json:"tip_per_person"`
}

func CalculateTip(in TipInput) (TipResult, error) {
	if err := checkMoney("bill amount", in.BillAmount); err != nil {
		return TipResult{}, err
	}
	if err := checkPercent("tip", in.TipPct, 100); err != nil {
		return TipResult{}, err
	}
	if in.PartySize < 1 {
		return TipResult{}, calcerr.Invalidf("party size must be at least 1, got %d", in.PartySize)
	}

	people := float64(in.PartySize)
	tip := in.BillAmount * in.TipPct / 100
	total := in.BillAmount + tip
	perPerson := total / people

	switch in.Rounding {
	case TipRoundingNone:
	case TipRoundingTotal:
		total = math.Ceil(total)
		tip = total - in.BillAmount
		perPerson = total / people
	case TipRoundingPerPerson:
		perPerson = math.Ceil(perPerson)
		total = perPerson * people
		tip = total - in.BillAmount
	default:
		return TipResult{}, calcerr.Invalidf("unknown rounding mode %q", in.Rounding)
	}

	return TipResult{
		TipAmount:    finance.Round2(tip),
		Total:        finance.Round2(total),
		PerPerson:    finance.Round2(perPerson),
		TipPerPerson: finance.Round2(tip / people),
	}, nil
}
