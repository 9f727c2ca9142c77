package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/household-budget/internal/budget"
	"github.com/iwvelando/household-budget/pkg/mathutil"
)

// Validate returns an error wrapping budget.ErrInvalidInput for any value the
// engine cannot accept.
func (conf *Configuration) Validate() error {
	if err := conf.LoanParameters().Validate(); err != nil {
		return fmt.Errorf("loan: %w", err)
	}
	if err := conf.IncomeParameters().Validate(); err != nil {
		return fmt.Errorf("income: %w", err)
	}
	if conf.Household.Earners < 1 {
		return fmt.Errorf("household: %w: earners must be at least 1, got %d",
			budget.ErrInvalidInput, conf.Household.Earners)
	}
	for i, expense := range conf.Expenses {
		if strings.TrimSpace(expense.Name) == "" {
			return fmt.Errorf("expenses[%d]: %w: name is empty", i, budget.ErrInvalidInput)
		}
		if !mathutil.IsFinite(expense.Amount) || expense.Amount < 0 {
			return fmt.Errorf("expenses[%d] %q: %w: amount must be a non-negative number",
				i, expense.Name, budget.ErrInvalidInput)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	warnings = append(warnings, conf.coerced...)

	if conf.Loan.InterestRate == 0 {
		warnings = append(warnings, "interest rate is 0, the principal is spread evenly over the term")
	}

	if mortgage, err := budget.MonthlyMortgage(conf.LoanParameters()); err == nil {
		var expenseTotal float64
		for _, expense := range conf.Expenses {
			expenseTotal += expense.Amount
		}
		totals := budget.ComputeTotals(conf.LoanParameters(), conf.IncomeParameters(), expenseTotal, mortgage, 1)
		if totals.NetAfterExpenses < 0 {
			warnings = append(warnings, fmt.Sprintf("monthly budget is negative (%.0f)", totals.NetAfterExpenses))
		}
	}

	seen := make(map[string]int)
	for _, expense := range conf.Expenses {
		key := strings.ToLower(strings.TrimSpace(expense.Name))
		seen[key]++
		if seen[key] == 2 {
			warnings = append(warnings, fmt.Sprintf("expense '%s' is listed more than once", expense.Name))
		}
	}

	if len(conf.Expenses) == 0 {
		warnings = append(warnings, "no expenses configured")
	}

	return warnings
}
