// Package tables holds the static reference data behind the tax and
// finance calculators: bracket tables, statutory constants and the CPI
// series. Tables are validated once at load; a deployment can override
// or extend them from a YAML file.
package tables

import (
	"fmt"
	"math"
	"sort"

	"calckit/internal/bracket"
)

// Built-in table IDs.
const (
	WalesLTTMain2024          = "wales-ltt-main-2024"
	ScotlandLBTTMain2024      = "scotland-lbtt-main-2024"
	ScotlandLBTTFirstTime2024 = "scotland-lbtt-first-time-2024"
	UKIncome2024              = "uk-income-2024"
	USFederalSingle2024       = "us-federal-single-2024"
	FranceIncome2024          = "fr-income-2024"
	SpainIncome2024           = "es-income-2024"
	IrelandIncome2024         = "ie-income-2024"
)

// Property transaction tax constants.
const (
	// Flat surcharge on the full price for additional-property
	// purchases in Wales.
	WalesHigherRatesSurcharge = 0.04
	// Additional Dwelling Supplement rate in Scotland.
	ScotlandADSRate = 0.06
)

// UK income tax constants (2024/25).
const (
	UKPersonalAllowance = 12570
	UKTaperThreshold    = 100000 // allowance shrinks 1 for every 2 above this
)

// US federal constants (2024, single filer).
const (
	USStandardDeductionSingle = 14600
	USSocialSecurityWageBase  = 168600
	USSETaxableShare          = 0.9235
	USSocialSecurityRate      = 0.124
	USMedicareRate            = 0.029
	USSafeHarborAGIThreshold  = 150000
)

// 401(k) elective deferral limits (2024).
const (
	Deferral401kLimit = 23000
	CatchUp401kAmount = 7500
	CatchUp401kMinAge = 50
)

// USInflationByYear is the CPI-U annual average inflation rate, percent.
var USInflationByYear = map[int]float64{
	2000: 3.4, 2001: 2.8, 2002: 1.6, 2003: 2.3, 2004: 2.7,
	2005: 3.4, 2006: 3.2, 2007: 2.8, 2008: 3.8, 2009: -0.4,
	2010: 1.6, 2011: 3.2, 2012: 2.1, 2013: 1.5, 2014: 1.6,
	2015: 0.1, 2016: 1.3, 2017: 2.1, 2018: 2.4, 2019: 1.8,
	2020: 1.2, 2021: 4.7, 2022: 8.0, 2023: 4.1,
}

// Inflation data coverage.
const (
	InflationMinYear = 2000
	InflationMaxYear = 2023
)

var unbounded = math.Inf(1)

func builtin() map[string]*bracket.Table {
	return map[string]*bracket.Table{
		WalesLTTMain2024: bracket.MustTable(
			bracket.Band{UpperBound: 225000, Rate: 0},
			bracket.Band{UpperBound: 400000, Rate: 0.06},
			bracket.Band{UpperBound: 750000, Rate: 0.075},
			bracket.Band{UpperBound: 1500000, Rate: 0.10},
			bracket.Band{UpperBound: unbounded, Rate: 0.12},
		),
		ScotlandLBTTMain2024: bracket.MustTable(
			bracket.Band{UpperBound: 145000, Rate: 0},
			bracket.Band{UpperBound: 250000, Rate: 0.02},
			bracket.Band{UpperBound: 325000, Rate: 0.05},
			bracket.Band{UpperBound: 750000, Rate: 0.10},
			bracket.Band{UpperBound: unbounded, Rate: 0.12},
		),
		// First-time buyer relief raises the nil band to 175k.
		ScotlandLBTTFirstTime2024: bracket.MustTable(
			bracket.Band{UpperBound: 175000, Rate: 0},
			bracket.Band{UpperBound: 250000, Rate: 0.02},
			bracket.Band{UpperBound: 325000, Rate: 0.05},
			bracket.Band{UpperBound: 750000, Rate: 0.10},
			bracket.Band{UpperBound: unbounded, Rate: 0.12},
		),
		// Over taxable income, after the personal allowance.
		UKIncome2024: bracket.MustTable(
			bracket.Band{UpperBound: 37700, Rate: 0.20},
			bracket.Band{UpperBound: 125140, Rate: 0.40},
			bracket.Band{UpperBound: unbounded, Rate: 0.45},
		),
		USFederalSingle2024: bracket.MustTable(
			bracket.Band{UpperBound: 11600, Rate: 0.10},
			bracket.Band{UpperBound: 47150, Rate: 0.12},
			bracket.Band{UpperBound: 100525, Rate: 0.22},
			bracket.Band{UpperBound: 191950, Rate: 0.24},
			bracket.Band{UpperBound: 243725, Rate: 0.32},
			bracket.Band{UpperBound: 609350, Rate: 0.35},
			bracket.Band{UpperBound: unbounded, Rate: 0.37},
		),
		FranceIncome2024: bracket.MustTable(
			bracket.Band{UpperBound: 11294, Rate: 0},
			bracket.Band{UpperBound: 28797, Rate: 0.11},
			bracket.Band{UpperBound: 82341, Rate: 0.30},
			bracket.Band{UpperBound: 177106, Rate: 0.41},
			bracket.Band{UpperBound: unbounded, Rate: 0.45},
		),
		SpainIncome2024: bracket.MustTable(
			bracket.Band{UpperBound: 12450, Rate: 0.19},
			bracket.Band{UpperBound: 20200, Rate: 0.24},
			bracket.Band{UpperBound: 35200, Rate: 0.30},
			bracket.Band{UpperBound: 60000, Rate: 0.37},
			bracket.Band{UpperBound: 300000, Rate: 0.45},
			bracket.Band{UpperBound: unbounded, Rate: 0.47},
		),
		IrelandIncome2024: bracket.MustTable(
			bracket.Band{UpperBound: 42000, Rate: 0.20},
			bracket.Band{UpperBound: unbounded, Rate: 0.40},
		),
	}
}

// Catalog maps table IDs to validated bracket tables. It is built once
// at startup (built-ins plus optional overrides) and read-only after.
type Catalog struct {
	tables map[string]*bracket.Table
}

// Builtin returns a catalog with the built-in tables.
func Builtin() *Catalog {
	return &Catalog{tables: builtin()}
}

// Get returns the table for id.
func (c *Catalog) Get(id string) (*bracket.Table, error) {
	t, ok := c.tables[id]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", id)
	}
	return t, nil
}

// IDs returns all table IDs in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.tables))
	for id := range c.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
