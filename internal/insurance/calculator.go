package insurance

import "math"

// Input is one employee's payroll parameters for a single month.
// MonthlySalary must be positive; the calculator does not validate and a
// non-positive salary produces degenerate (zero or negative) outputs.
type Input struct {
	// MonthlySalary in whole NTD.
	MonthlySalary int64 `json:"monthly_salary"`
	// InsuredSalary overrides grade-table resolution when > 0. It is used
	// directly as the health and pension base and capped at the labor table
	// maximum for the labor base.
	InsuredSalary int64 `json:"insured_salary"`
	// Dependents counts the employee's own insured dependents; only the
	// employee-side health premium uses it, clamped to at most 3.
	Dependents int `json:"dependents"`
	// VoluntaryPensionRate is the employee's self-contribution percentage,
	// clamped to [0, 6].
	VoluntaryPensionRate float64 `json:"voluntary_pension_rate"`
	// OccupationalAccidentRate overrides the table's industry average
	// when > 0.
	OccupationalAccidentRate float64 `json:"occupational_accident_rate"`
}

// Result is the full contribution breakdown for one employee-month.
// Every monetary field is whole NTD; each line item is rounded half-up
// independently and the totals are sums of the rounded items.
type Result struct {
	LaborInsuredSalary   int64 `json:"labor_insured_salary"`
	HealthInsuredSalary  int64 `json:"health_insured_salary"`
	PensionInsuredSalary int64 `json:"pension_insured_salary"`

	EmployerLaborInsurance       int64 `json:"employer_labor_insurance"`
	EmployerEmploymentInsurance  int64 `json:"employer_employment_insurance"`
	EmployerOccupationalAccident int64 `json:"employer_occupational_accident"`
	EmployerHealthInsurance      int64 `json:"employer_health_insurance"`
	EmployerPension              int64 `json:"employer_pension"`
	EmployerTotal                int64 `json:"employer_total"`

	EmployeeLaborInsurance      int64 `json:"employee_labor_insurance"`
	EmployeeEmploymentInsurance int64 `json:"employee_employment_insurance"`
	EmployeeHealthInsurance     int64 `json:"employee_health_insurance"`
	EmployeeVoluntaryPension    int64 `json:"employee_voluntary_pension"`
	EmployeeTotal               int64 `json:"employee_total"`

	NetSalary         int64 `json:"net_salary"`
	TotalEmployerCost int64 `json:"total_employer_cost"`
}

// Summary aggregates Calculate results over a whole roster.
type Summary struct {
	TotalSalary       int64 `json:"total_salary"`
	TotalEmployerCost int64 `json:"total_employer_cost"`
	TotalEmployeeCost int64 `json:"total_employee_cost"`
	TotalCompanyCost  int64 `json:"total_company_cost"`
	EmployeeCount     int   `json:"employee_count"`
}

func round(v float64) int64 {
	return int64(math.Round(v))
}

// Calculate derives the full statutory contribution breakdown for one
// employee-month against this rate table. It is a pure function: no I/O,
// no shared state, safe for concurrent use.
func (t RateTable) Calculate(in Input) Result {
	var r Result

	if in.InsuredSalary > 0 {
		r.LaborInsuredSalary = in.InsuredSalary
		if r.LaborInsuredSalary > t.MaxLaborInsured {
			r.LaborInsuredSalary = t.MaxLaborInsured
		}
		r.HealthInsuredSalary = in.InsuredSalary
		r.PensionInsuredSalary = in.InsuredSalary
	} else {
		r.LaborInsuredSalary = t.LaborInsured(in.MonthlySalary)
		r.HealthInsuredSalary = t.HealthInsured(in.MonthlySalary)
		r.PensionInsuredSalary = t.PensionInsured(in.MonthlySalary)
	}

	laborBase := float64(r.LaborInsuredSalary)
	healthBase := float64(r.HealthInsuredSalary)
	pensionBase := float64(r.PensionInsuredSalary)

	// Ordinary-accident sub-rate: full labor rate minus the
	// employment-insurance component, which is billed as its own line item.
	ordinaryRate := t.LaborRate - t.EmploymentRate

	occRate := t.OccupationalRate
	if in.OccupationalAccidentRate > 0 {
		occRate = in.OccupationalAccidentRate
	}

	dependents := in.Dependents
	if dependents < 0 {
		dependents = 0
	}
	if dependents > 3 {
		dependents = 3
	}

	voluntaryRate := in.VoluntaryPensionRate
	if voluntaryRate < 0 {
		voluntaryRate = 0
	}
	if voluntaryRate > 6 {
		voluntaryRate = 6
	}

	r.EmployerLaborInsurance = round(laborBase * ordinaryRate * t.LaborEmployerShare)
	r.EmployerEmploymentInsurance = round(laborBase * t.EmploymentRate * t.LaborEmployerShare)
	// No employer/employee split: occupational accident is entirely
	// employer-borne.
	r.EmployerOccupationalAccident = round(laborBase * occRate)
	r.EmployerHealthInsurance = round(healthBase * t.HealthRate * t.HealthEmployerShare * t.AvgDependentsFactor)
	r.EmployerPension = round(pensionBase * t.PensionEmployerRate)
	r.EmployerTotal = r.EmployerLaborInsurance +
		r.EmployerEmploymentInsurance +
		r.EmployerOccupationalAccident +
		r.EmployerHealthInsurance +
		r.EmployerPension

	r.EmployeeLaborInsurance = round(laborBase * ordinaryRate * t.LaborEmployeeShare)
	r.EmployeeEmploymentInsurance = round(laborBase * t.EmploymentRate * t.LaborEmployeeShare)
	r.EmployeeHealthInsurance = round(healthBase * t.HealthRate * t.HealthEmployeeShare * float64(1+dependents))
	r.EmployeeVoluntaryPension = round(pensionBase * voluntaryRate / 100)
	r.EmployeeTotal = r.EmployeeLaborInsurance +
		r.EmployeeEmploymentInsurance +
		r.EmployeeHealthInsurance +
		r.EmployeeVoluntaryPension

	r.NetSalary = in.MonthlySalary - r.EmployeeTotal
	r.TotalEmployerCost = in.MonthlySalary + r.EmployerTotal

	return r
}

// MonthlyHRCostSummary maps Calculate over a roster and sums each aggregate
// field independently.
func (t RateTable) MonthlyHRCostSummary(inputs []Input) Summary {
	var s Summary
	for _, in := range inputs {
		r := t.Calculate(in)
		s.TotalSalary += in.MonthlySalary
		s.TotalEmployerCost += r.EmployerTotal
		s.TotalEmployeeCost += r.EmployeeTotal
		s.TotalCompanyCost += r.TotalEmployerCost
	}
	s.EmployeeCount = len(inputs)
	return s
}

// Calculate runs against the default rate table.
func Calculate(in Input) Result {
	return DefaultTable().Calculate(in)
}

// MonthlyHRCostSummary runs against the default rate table.
func MonthlyHRCostSummary(inputs []Input) Summary {
	return DefaultTable().MonthlyHRCostSummary(inputs)
}
