package calculators

import (
	"calckit/internal/bracket"
	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/tables"
)

// Land Transaction Tax (Wales) and Land and Buildings Transaction Tax
// (Scotland). Both are bracket assessments over the purchase price; the
// additional-property variants add a flat surcharge on the full price.

type WalesLTTInput struct {
	PropertyPrice      float64 `json:"property_price"`
	AdditionalProperty bool    `json:"additional_property"`
}

func DefaultWalesLTTInput() WalesLTTInput {
	return WalesLTTInput{PropertyPrice: 250000}
}

type PropertyTaxResult struct {
	Bands         []bracket.BandTax `json:"bands,omitempty"`
	BracketTax    float64           `json:"bracket_tax"`
	Surcharge     float64           `json:"surcharge"`
	TotalTax      float64           `json:"total_tax"`
	EffectiveRate float64           `json:"effective_rate"`
}

func CalculateWalesLTT(cat *tables.Catalog, in WalesLTTInput) (PropertyTaxResult, error) {
	if err := checkMoney("property price", in.PropertyPrice); err != nil {
		return PropertyTaxResult{}, err
	}

	table, err := cat.Get(tables.WalesLTTMain2024)
	if err != nil {
		return PropertyTaxResult{}, err
	}
	assessment, err := table.Assess(in.PropertyPrice)
	if err != nil {
		return PropertyTaxResult{}, err
	}

	surcharge := 0.0
	if in.AdditionalProperty {
		surcharge, err = bracket.Surcharge(in.PropertyPrice, tables.WalesHigherRatesSurcharge)
		if err != nil {
			return PropertyTaxResult{}, err
		}
	}

	return buildPropertyTaxResult(in.PropertyPrice, assessment, surcharge), nil
}

// ScotlandBuyerType selects the LBTT treatment; the three cases are
// mutually exclusive.
type ScotlandBuyerType string

const (
	BuyerStandard           ScotlandBuyerType = "standard"
	BuyerFirstTime          ScotlandBuyerType = "first_time"
	BuyerAdditionalDwelling ScotlandBuyerType = "additional"
)

type ScotlandLBTTInput struct {
	PropertyPrice float64           `json:"property_price"`
	Buyer         ScotlandBuyerType `json:"buyer"`
}

func DefaultScotlandLBTTInput() ScotlandLBTTInput {
	return ScotlandLBTTInput{PropertyPrice: 250000, Buyer: BuyerStandard}
}

func CalculateScotlandLBTT(cat *tables.Catalog, in ScotlandLBTTInput) (PropertyTaxResult, error) {
	if err := checkMoney("property price", in.PropertyPrice); err != nil {
		return PropertyTaxResult{}, err
	}

	tableID := tables.ScotlandLBTTMain2024
	adsRate := 0.0
	switch in.Buyer {
	case BuyerStandard:
	case BuyerFirstTime:
		tableID = tables.ScotlandLBTTFirstTime2024
	case BuyerAdditionalDwelling:
		adsRate = tables.ScotlandADSRate
	default:
		return PropertyTaxResult{}, calcerr.Invalidf("unknown buyer type %q", in.Buyer)
	}

	table, err := cat.Get(tableID)
	if err != nil {
		return PropertyTaxResult{}, err
	}
	assessment, err := table.Assess(in.PropertyPrice)
	if err != nil {
		return PropertyTaxResult{}, err
	}

	surcharge := 0.0
	if adsRate > 0 {
		surcharge, err = bracket.Surcharge(in.PropertyPrice, adsRate)
		if err != nil {
			return PropertyTaxResult{}, err
		}
	}

	return buildPropertyTaxResult(in.PropertyPrice, assessment, surcharge), nil
}

func buildPropertyTaxResult(price float64, a bracket.Assessment, surcharge float64) PropertyTaxResult {
	total := a.Total + surcharge
	effective := 0.0
	if price > 0 {
		effective = total / price
	}
	return PropertyTaxResult{
		Bands:         a.Bands,
		BracketTax:    finance.Round2(a.Total),
		Surcharge:     finance.Round2(surcharge),
		TotalTax:      finance.Round2(total),
		EffectiveRate: effective,
	}
}
