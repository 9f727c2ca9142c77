// Package budget implements the household budget engine: the mortgage
// payment, the expense list, the derived monthly totals and the five year
// projection. Every figure is recomputed from the inputs on each call; the
// engine keeps no state of its own.
package budget

import (
	"fmt"

	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/loans"
	"go.uber.org/zap"
)

// State is everything the user can edit.
type State struct {
	Loan     LoanParameters
	Income   IncomeParameters
	Expenses *ExpenseList
	// Earners is how many people share the net budget; zero means
	// constants.DefaultEarners.
	Earners int
}

// DefaultState returns the inputs the estimator starts with.
func DefaultState() State {
	return State{
		Loan:     DefaultLoanParameters(),
		Income:   DefaultIncomeParameters(),
		Expenses: DefaultExpenses(),
		Earners:  constants.DefaultEarners,
	}
}

// Validate checks the state at the boundary before it reaches the engine.
func (s State) Validate() error {
	if err := s.Loan.Validate(); err != nil {
		return err
	}
	if err := s.Income.Validate(); err != nil {
		return err
	}
	if s.Earners < 0 {
		return fmt.Errorf("%w: earners must be positive, got %d", ErrInvalidInput, s.Earners)
	}
	return nil
}

func (s State) earners() int {
	if s.Earners <= 0 {
		return constants.DefaultEarners
	}
	return s.Earners
}

// LoanSummary describes the full life of the mortgage.
type LoanSummary struct {
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	Payments       int     `json:"payments"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Result is one complete recomputation.
type Result struct {
	Totals     DerivedTotals     `json:"totals"`
	Projection []ProjectionPoint `json:"projection"`
	Expenses   []Expense         `json:"expenses"`
	Loan       LoanSummary       `json:"loan"`
}

// Engine recomputes results for a State.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine. A nil logger is replaced by a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Recompute derives every output from the state in a fixed number of
// arithmetic steps. Callers invoke it after each change to the loan, the
// income or the expense list.
func (e *Engine) Recompute(state State) (Result, error) {
	if err := state.Validate(); err != nil {
		return Result{}, err
	}

	mortgage, err := MonthlyMortgage(state.Loan)
	if err != nil {
		return Result{}, err
	}
	if state.Loan.InterestRate == 0 {
		e.logger.Debug("zero interest rate, spreading principal evenly",
			zap.String("op", "budget.Recompute"),
		)
	}

	expenseTotal := state.Expenses.Total().InexactFloat64()
	totals := ComputeTotals(state.Loan, state.Income, expenseTotal, mortgage, state.earners())

	summary, err := loans.Summarize(state.Loan.Principal(), state.Loan.InterestRate, state.Loan.TermMonths())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := Result{
		Totals:     totals,
		Projection: Project(state.Income, mortgage, expenseTotal),
		Expenses:   state.Expenses.Entries(),
		Loan: LoanSummary{
			Principal:      totals.LoanAmountAfterDownPayment,
			MonthlyPayment: mortgage,
			Payments:       summary.Payments,
			TotalPaid:      summary.TotalPaid,
			TotalInterest:  summary.TotalInterest,
		},
	}
	if result.Expenses == nil {
		result.Expenses = []Expense{}
	}

	e.logger.Debug("budget recomputed",
		zap.String("op", "budget.Recompute"),
		zap.Float64("monthly_mortgage", mortgage),
		zap.Float64("expense_total", expenseTotal),
		zap.Float64("net_after_expenses", totals.NetAfterExpenses),
		zap.Int("expenses", state.Expenses.Len()),
	)
	return result, nil
}
