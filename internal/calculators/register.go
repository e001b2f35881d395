package calculators

import (
	"fmt"

	"calckit/internal/registry"
	"calckit/internal/tables"
)

// RegisterAll wires every calculator into the registry. Table-backed
// calculators close over the catalog so runtime overrides loaded into it
// are picked up without re-registration.
func RegisterAll(reg *registry.Registry, cat *tables.Catalog) error {
	type registration struct {
		desc registry.Descriptor
		run  registry.Runner
	}

	regs := []registration{
		{
			desc: registry.Descriptor{Slug: "mortgage-calculator", Name: "Mortgage Payment", Category: CategoryFinance},
			run:  registry.Adapt(DefaultMortgageInput, CalculateMortgage),
		},
		{
			desc: registry.Descriptor{Slug: "401k-calculator", Name: "401(k) Retirement", Category: CategoryFinance},
			run:  registry.Adapt(DefaultRetirement401kInput, CalculateRetirement401k),
		},
		{
			desc: registry.Descriptor{Slug: "compound-interest-calculator", Name: "Compound Interest", Category: CategoryFinance},
			run:  registry.Adapt(DefaultCompoundInterestInput, CalculateCompoundInterest),
		},
		{
			desc: registry.Descriptor{Slug: "savings-goal-calculator", Name: "Savings Goal", Category: CategoryFinance},
			run:  registry.Adapt(DefaultSavingsGoalInput, CalculateSavingsGoal),
		},
		{
			desc: registry.Descriptor{Slug: "fire-calculator", Name: "FIRE Number", Category: CategoryFinance},
			run:  registry.Adapt(DefaultFIREInput, CalculateFIRE),
		},
		{
			desc: registry.Descriptor{Slug: "inflation-calculator", Name: "Inflation Impact", Category: CategoryFinance},
			run:  registry.Adapt(DefaultInflationInput, CalculateInflation),
		},
		{
			desc: registry.Descriptor{Slug: "debt-payoff-calculator", Name: "Debt Payoff Planner", Category: CategoryFinance},
			run:  registry.Adapt(DefaultDebtPayoffInput, CalculateDebtPayoff),
		},
		{
			desc: registry.Descriptor{Slug: "rental-roi-calculator", Name: "Rental Property ROI", Category: CategoryFinance},
			run:  registry.Adapt(DefaultRentalROIInput, CalculateRentalROI),
		},
		{
			desc: registry.Descriptor{Slug: "tip-calculator", Name: "Tip Split", Category: CategoryFinance},
			run:  registry.Adapt(DefaultTipInput, CalculateTip),
		},
		{
			desc: registry.Descriptor{Slug: "wales-ltt-calculator", Name: "Wales Land Transaction Tax", Category: CategoryTax},
			run: registry.Adapt(DefaultWalesLTTInput, func(in WalesLTTInput) (PropertyTaxResult, error) {
				return CalculateWalesLTT(cat, in)
			}),
		},
		{
			desc: registry.Descriptor{Slug: "scotland-lbtt-calculator", Name: "Scotland LBTT", Category: CategoryTax},
			run: registry.Adapt(DefaultScotlandLBTTInput, func(in ScotlandLBTTInput) (PropertyTaxResult, error) {
				return CalculateScotlandLBTT(cat, in)
			}),
		},
		{
			desc: registry.Descriptor{Slug: "uk-100k-tax-trap-calculator", Name: "UK £100k Tax Trap", Category: CategoryTax},
			run: registry.Adapt(DefaultUK100kTrapInput, func(in UK100kTrapInput) (UK100kTrapResult, error) {
				return CalculateUK100kTrap(cat, in)
			}),
		},
		{
			desc: registry.Descriptor{Slug: "us-quarterly-tax-calculator", Name: "US Quarterly Estimated Tax", Category: CategoryTax},
			run: registry.Adapt(DefaultUSQuarterlyTaxInput, func(in USQuarterlyTaxInput) (USQuarterlyTaxResult, error) {
				return CalculateUSQuarterlyTax(cat, in)
			}),
		},
		{
			desc: registry.Descriptor{Slug: "eu-salary-tax-calculator", Name: "EU Salary Tax", Category: CategoryTax},
			run: registry.Adapt(DefaultEUSalaryTaxInput, func(in EUSalaryTaxInput) (EUSalaryTaxResult, error) {
				return CalculateEUSalaryTax(cat, in)
			}),
		},
		{
			desc: registry.Descriptor{Slug: "bmr-calculator", Name: "Basal Metabolic Rate", Category: CategoryHealth},
			run:  registry.Adapt(DefaultBMRInput, CalculateBMR),
		},
		{
			desc: registry.Descriptor{Slug: "tdee-calculator", Name: "Daily Energy Expenditure", Category: CategoryHealth},
			run:  registry.Adapt(DefaultTDEEInput, CalculateTDEE),
		},
		{
			desc: registry.Descriptor{Slug: "beer-ibu-calculator", Name: "Beer Bitterness (IBU)", Category: CategoryBrewing},
			run:  registry.Adapt(DefaultIBUInput, CalculateIBU),
		},
		{
			desc: registry.Descriptor{Slug: "glaze-recipe-calculator", Name: "Glaze Batch Scaler", Category: CategoryPottery},
			run:  registry.Adapt(DefaultGlazeRecipeInput, CalculateGlazeRecipe),
		},
	}

	for _, r := range regs {
		if err := reg.Register(r.desc, r.run); err != nil {
			return fmt.Errorf("register %s: %w", r.desc.Slug, err)
		}
	}
	return nil
}
