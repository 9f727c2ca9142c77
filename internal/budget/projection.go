package budget

import (
	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/mathutil"
)

// ProjectionPoint is the projected monthly position for one year.
type ProjectionPoint struct {
	Year   int     `json:"year"`
	Budget float64 `json:"budget"`
	Income float64 `json:"income"`
}

// Project returns one point per year from 0 through constants.ProjectionYears.
// Salaries and rental income grow by the yearly growth rate compounded;
// government help stays flat. Mortgage and expenses are held at today's
// values.
func Project(income IncomeParameters, monthlyMortgage, totalExpenses float64) []ProjectionPoint {
	points := make([]ProjectionPoint, 0, constants.ProjectionYears+1)
	outgoing := monthlyMortgage + totalExpenses

	for year := 0; year <= constants.ProjectionYears; year++ {
		growth := mathutil.GrowthFactor(income.YearlyIncomeGrowth, year)
		grown := income.PersonAIncome*growth + income.PersonBIncome*growth + income.RentalIncome*growth

		points = append(points, ProjectionPoint{
			Year:   year,
			Budget: mathutil.RoundCurrency(grown + income.GovernmentHelp - outgoing),
			Income: mathutil.RoundCurrency(grown),
		})
	}
	return points
}
