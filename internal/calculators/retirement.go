package calculators

import (
	"math"

	"calckit/internal/calcerr"
	"calckit/internal/finance"
	"calckit/internal/tables"
)

type Retirement401kInput struct {
	CurrentAge            int     `json:"current_age"`
	RetirementAge         int     `json:"retirement_age"`
	AnnualSalary          float64 `json:"annual_salary"`
	ContributionPct       float64 `json:"contribution_pct"`
	EmployerMatchPct      float64 `json:"employer_match_pct"`       // share of the matched contribution, e.g. 50
	EmployerMatchLimitPct float64 `json:"employer_match_limit_pct"` // match applies up to this % of salary
	CurrentBalance        float64 `json:"current_balance"`
	AnnualReturnPct       float64 `json:"annual_return_pct"`
	SalaryGrowthPct       float64 `json:"salary_growth_pct"`
}

func DefaultRetirement401kInput() Retirement401kInput {
	return Retirement401kInput{
		CurrentAge:            30,
		RetirementAge:         65,
		AnnualSalary:          75000,
		ContributionPct:       10,
		EmployerMatchPct:      50,
		EmployerMatchLimitPct: 6,
		CurrentBalance:        25000,
		AnnualReturnPct:       7,
		SalaryGrowthPct:       3,
	}
}

type Retirement401kYear struct {
	Age         int     `json:"age"`
	Salary      float64 `json:"salary"`
	Employee    float64 `json:"employee_contribution"`
	Employer    float64 `json:"employer_contribution"`
	Balance     float64 `json:"balance"`
	CappedByIRS bool    `json:"capped_by_irs"`
}

type Retirement401kResult struct {
	FinalBalance   float64              `json:"final_balance"`
	TotalEmployee  float64              `json:"total_employee_contributions"`
	TotalEmployer  float64              `json:"total_employer_contributions"`
	TotalGrowth    float64              `json:"total_growth"`
	YearsProjected int                  `json:"years_projected"`
	Years          []Retirement401kYear `json:"years"`
}

// deferralLimit is the IRS elective deferral cap for the contributor's
// age in a given year.
func deferralLimit(age int) float64 {
	if age >= tables.CatchUp401kMinAge {
		return tables.Deferral401kLimit + tables.CatchUp401kAmount
	}
	return tables.Deferral401kLimit
}

func CalculateRetirement401k(in Retirement401kInput) (Retirement401kResult, error) {
	if in.CurrentAge < 18 || in.CurrentAge > 99 {
		return Retirement401kResult{}, calcerr.Invalidf("current age %d outside [18, 99]", in.CurrentAge)
	}
	if in.RetirementAge <= in.CurrentAge || in.RetirementAge > 100 {
		return Retirement401kResult{}, calcerr.Invalidf("retirement age %d must be above current age and at most 100", in.RetirementAge)
	}
	if err := checkMoney("annual salary", in.AnnualSalary); err != nil {
		return Retirement401kResult{}, err
	}
	if err := checkMoney("current balance", in.CurrentBalance); err != nil {
		return Retirement401kResult{}, err
	}
	if err := checkPercent("contribution", in.ContributionPct, 100); err != nil {
		return Retirement401kResult{}, err
	}
	if err := checkPercent("employer match", in.EmployerMatchPct, 100); err != nil {
		return Retirement401kResult{}, err
	}
	if err := checkPercent("employer match limit", in.EmployerMatchLimitPct, 100); err != nil {
		return Retirement401kResult{}, err
	}
	if err := checkPercent("annual return", in.AnnualReturnPct, 50); err != nil {
		return Retirement401kResult{}, err
	}
	if err := checkPercent("salary growth", in.SalaryGrowthPct, 50); err != nil {
		return Retirement401kResult{}, err
	}

	years := in.RetirementAge - in.CurrentAge
	growthRate := in.AnnualReturnPct / 100
	salaryGrowth := in.SalaryGrowthPct / 100

	res := Retirement401kResult{
		YearsProjected: years,
		Years:          make([]Retirement401kYear, 0, years),
	}

	balance := in.CurrentBalance
	salary := in.AnnualSalary
	for y := 0; y < years; y++ {
		age := in.CurrentAge + y
		limit := deferralLimit(age)

		requested := salary * in.ContributionPct / 100
		employee := math.Min(requested, limit)

		matchedPct := math.Min(in.ContributionPct, in.EmployerMatchLimitPct)
		employer := salary * matchedPct / 100 * in.EmployerMatchPct / 100

		balance = balance*(1+growthRate) + employee + employer
		res.TotalEmployee += employee
		res.TotalEmployer += employer

		res.Years = append(res.Years, Retirement401kYear{
			Age:         age + 1,
			Salary:      finance.Round2(salary),
			Employee:    finance.Round2(employee),
			Employer:    finance.Round2(employer),
			Balance:     finance.Round2(balance),
			CappedByIRS: requested > limit,
		})

		salary *= 1 + salaryGrowth
	}

	res.FinalBalance = finance.Round2(balance)
	res.TotalGrowth = finance.Round2(balance - in.CurrentBalance - res.TotalEmployee - res.TotalEmployer)
	res.TotalEmployee = finance.Round2(res.TotalEmployee)
	res.TotalEmployer = finance.Round2(res.TotalEmployer)
	return res, nil
}
