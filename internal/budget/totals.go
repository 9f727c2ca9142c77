package budget

import (
	"github.com/iwvelando/household-budget/pkg/mathutil"
)

// DerivedTotals holds every monthly figure derived from the inputs.
type DerivedTotals struct {
	LoanAmountAfterDownPayment    float64 `json:"loanAmountAfterDownPayment"`
	MonthlyMortgage               float64 `json:"monthlyMortgage"`
	NetMortgage                   float64 `json:"netMortgage"`
	MonthlyIncomeAfterTax         float64 `json:"monthlyIncomeAfterTax"`
	ExpenseTotal                  float64 `json:"expenseTotal"`
	TotalExpenses                 float64 `json:"totalExpenses"`
	TotalIncome                   float64 `json:"totalIncome"`
	TotalIncomeWithGovernmentHelp float64 `json:"totalIncomeWithGovernmentHelp"`
	NetAfterExpenses              float64 `json:"netAfterExpenses"`
	NetPerPerson                  float64 `json:"netPerPerson"`
}

// ComputeTotals derives the monthly totals. expenseTotal excludes the
// mortgage; TotalExpenses includes it. The net is split evenly between
// earners, which must be at least one.
func ComputeTotals(loan LoanParameters, income IncomeParameters, expenseTotal, monthlyMortgage float64, earners int) DerivedTotals {
	afterTax := income.PersonAIncome + income.PersonBIncome
	totalIncome := afterTax + income.RentalIncome
	totalExpenses := expenseTotal + monthlyMortgage
	net := totalIncome + income.GovernmentHelp - totalExpenses

	return DerivedTotals{
		LoanAmountAfterDownPayment:    loan.Principal(),
		MonthlyMortgage:               monthlyMortgage,
		NetMortgage:                   monthlyMortgage - income.GovernmentHelp,
		MonthlyIncomeAfterTax:         afterTax,
		ExpenseTotal:                  expenseTotal,
		TotalExpenses:                 totalExpenses,
		TotalIncome:                   totalIncome,
		TotalIncomeWithGovernmentHelp: totalIncome + income.GovernmentHelp,
		NetAfterExpenses:              net,
		NetPerPerson:                  mathutil.RoundCurrency(net / float64(earners)),
	}
}
