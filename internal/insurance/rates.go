// Package insurance computes the statutory labor/health/pension contribution
// breakdown for a monthly salary under Taiwan's insured-salary grade tables.
//
// Rate tables are plain data, injected per calculation year: callers that
// need a different statutory year construct their own RateTable instead of
// recompiling. DefaultTable returns the current year's table.
package insurance

// Bracket maps a monthly-salary range onto its insured-salary grade.
// Ranges are inclusive on both ends and must not overlap; the first matching
// bracket wins.
type Bracket struct {
	Min     int64
	Max     int64
	Insured int64
}

// RateTable bundles one statutory year's grade tables and contribution rates.
type RateTable struct {
	Year int

	LaborBrackets   []Bracket
	HealthBrackets  []Bracket
	PensionBrackets []Bracket

	// Any salary above a table's top range resolves to these caps.
	MaxLaborInsured   int64
	MaxHealthInsured  int64
	MaxPensionInsured int64

	// LaborRate is the full labor-insurance premium rate including the
	// employment-insurance component; the ordinary-accident sub-rate is
	// LaborRate - EmploymentRate.
	LaborRate          float64
	EmploymentRate     float64
	LaborEmployerShare float64
	LaborEmployeeShare float64

	// Occupational-accident insurance is wholly employer-borne at the
	// industry average rate unless the input overrides it.
	OccupationalRate float64

	HealthRate          float64
	HealthEmployerShare float64
	HealthEmployeeShare float64
	// AvgDependentsFactor models the pooled average of dependents including
	// the insured person on the employer side. The individual employee's
	// dependent count only affects the employee side.
	AvgDependentsFactor float64

	PensionEmployerRate float64
}

// lookup returns the insured-salary grade for a salary, falling back to the
// table cap when the salary exceeds the top range.
func lookup(brackets []Bracket, salary, cap int64) int64 {
	for _, b := range brackets {
		if salary >= b.Min && salary <= b.Max {
			return b.Insured
		}
	}
	return cap
}

// LaborInsured resolves the labor-insurance insured salary for a monthly salary.
func (t RateTable) LaborInsured(salary int64) int64 {
	return lookup(t.LaborBrackets, salary, t.MaxLaborInsured)
}

// HealthInsured resolves the health-insurance insured salary for a monthly salary.
func (t RateTable) HealthInsured(salary int64) int64 {
	return lookup(t.HealthBrackets, salary, t.MaxHealthInsured)
}

// PensionInsured resolves the pension contribution wage for a monthly salary.
func (t RateTable) PensionInsured(salary int64) int64 {
	return lookup(t.PensionBrackets, salary, t.MaxPensionInsured)
}

// grades expands a list of ascending grade values into contiguous brackets:
// everything at or below the first grade maps to it, and each following
// grade covers (previous, grade].
func grades(values ...int64) []Bracket {
	out := make([]Bracket, len(values))
	var min int64
	for i, v := range values {
		out[i] = Bracket{Min: min, Max: v, Insured: v}
		min = v + 1
	}
	return out
}

// healthGrades is the health-insurance grade ladder. The lower grades track
// the labor table; the ladder continues past the labor cap up to 219,500.
var healthGrades = []int64{
	27470, 27600, 28800, 30300, 31800, 33300, 34800, 36300,
	38200, 40100, 42000, 43900, 45800,
	48200, 50600, 53000, 55400, 57800, 60800, 63800, 66800,
	69800, 72800, 76500, 80200, 83900, 87600, 92100, 96600,
	101100, 105600, 110100, 115500, 120900, 126300, 131700,
	137100, 142500, 147900, 150000, 156400, 162800, 169200,
	175600, 182000, 189500, 197000, 204500, 212000, 219500,
}

// DefaultTable returns the statutory rates and grade tables in force for the
// current calculation year.
func DefaultTable() RateTable {
	health := grades(healthGrades...)

	// Pension contribution wages share the health ladder up to its own cap.
	var pension []Bracket
	for _, b := range health {
		if b.Insured > 150000 {
			break
		}
		pension = append(pension, b)
	}

	return RateTable{
		Year: 2024,

		LaborBrackets: grades(
			27470, 27600, 28800, 30300, 31800, 33300, 34800, 36300,
			38200, 40100, 42000, 43900, 45800,
		),
		HealthBrackets:  health,
		PensionBrackets: pension,

		MaxLaborInsured:   45800,
		MaxHealthInsured:  219500,
		MaxPensionInsured: 150000,

		LaborRate:          0.115,
		EmploymentRate:     0.01,
		LaborEmployerShare: 0.7,
		LaborEmployeeShare: 0.2,

		OccupationalRate: 0.0021,

		HealthRate:          0.0517,
		HealthEmployerShare: 0.6,
		HealthEmployeeShare: 0.3,
		AvgDependentsFactor: 1.58,

		PensionEmployerRate: 0.06,
	}
}
