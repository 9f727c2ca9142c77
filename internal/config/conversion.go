package config

import (
	"fmt"

	"github.com/iwvelando/household-budget/internal/budget"
	"github.com/shopspring/decimal"
)

// LoanParameters converts the loan section for the budget engine.
func (conf *Configuration) LoanParameters() budget.LoanParameters {
	return budget.LoanParameters{
		TotalLoanAmount: conf.Loan.TotalLoanAmount,
		DownPayment:     conf.Loan.DownPayment,
		InterestRate:    conf.Loan.InterestRate,
		LoanTermYears:   conf.Loan.LoanTermYears,
	}
}

// IncomeParameters converts the income section for the budget engine.
func (conf *Configuration) IncomeParameters() budget.IncomeParameters {
	return budget.IncomeParameters{
		PersonAIncome:      conf.Income.PersonAIncome,
		PersonBIncome:      conf.Income.PersonBIncome,
		RentalIncome:       conf.Income.RentalIncome,
		GovernmentHelp:     conf.Income.GovernmentHelp,
		YearlyIncomeGrowth: conf.Income.YearlyIncomeGrowth,
	}
}

// State validates the configuration and builds the engine state from it.
// Expenses receive ids 1..n in file order.
func (conf *Configuration) State() (budget.State, error) {
	if err := conf.Validate(); err != nil {
		return budget.State{}, err
	}

	expenses := budget.NewExpenseList()
	for i, expense := range conf.Expenses {
		if _, ok := expenses.AddAmount(expense.Name, decimal.NewFromFloat(expense.Amount)); !ok {
			return budget.State{}, fmt.Errorf("%w: expense %d (%q) was rejected", budget.ErrInvalidInput, i, expense.Name)
		}
	}

	return budget.State{
		Loan:     conf.LoanParameters(),
		Income:   conf.IncomeParameters(),
		Expenses: expenses,
		Earners:  conf.Household.Earners,
	}, nil
}
