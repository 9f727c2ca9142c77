package budget

import (
	"fmt"

	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/mathutil"
)

// LoanParameters describes the mortgage being estimated.
type LoanParameters struct {
	TotalLoanAmount float64 `json:"totalLoanAmount"`
	DownPayment     float64 `json:"downPayment"`
	InterestRate    float64 `json:"interestRate"` // annual, percent
	LoanTermYears   int     `json:"loanTermYears"`
}

// IncomeParameters describes the household's monthly income.
type IncomeParameters struct {
	PersonAIncome      float64 `json:"personAIncome"`
	PersonBIncome      float64 `json:"personBIncome"`
	RentalIncome       float64 `json:"rentalIncome"`
	GovernmentHelp     float64 `json:"governmentHelp"`
	YearlyIncomeGrowth float64 `json:"yearlyIncomeGrowth"` // percent
}

// DefaultLoanParameters returns the loan the estimator starts with.
func DefaultLoanParameters() LoanParameters {
	return LoanParameters{
		TotalLoanAmount: 5500000,
		DownPayment:     630000,
		InterestRate:    4.6,
		LoanTermYears:   30,
	}
}

// DefaultIncomeParameters returns the income the estimator starts with.
func DefaultIncomeParameters() IncomeParameters {
	return IncomeParameters{
		PersonAIncome:      20000,
		PersonBIncome:      20000,
		RentalIncome:       8300,
		GovernmentHelp:     2917,
		YearlyIncomeGrowth: 3.5,
	}
}

// Principal is the amount financed after the down payment.
func (l LoanParameters) Principal() float64 {
	return l.TotalLoanAmount - l.DownPayment
}

// TermMonths is the number of monthly payments. It is only meaningful once
// Validate has bounded LoanTermYears.
func (l LoanParameters) TermMonths() int {
	return l.LoanTermYears * constants.MonthsPerYear
}

// Validate checks the loan invariants.
func (l LoanParameters) Validate() error {
	if err := checkNonNegative("totalLoanAmount", l.TotalLoanAmount); err != nil {
		return err
	}
	if err := checkNonNegative("downPayment", l.DownPayment); err != nil {
		return err
	}
	if err := checkNonNegative("interestRate", l.InterestRate); err != nil {
		return err
	}
	if l.DownPayment > l.TotalLoanAmount {
		return fmt.Errorf("%w: downPayment %.2f exceeds totalLoanAmount %.2f",
			ErrInvalidInput, l.DownPayment, l.TotalLoanAmount)
	}
	return checkTerm(l.LoanTermYears)
}

// checkTerm bounds the term before it is converted to months.
func checkTerm(termYears int) error {
	if termYears <= 0 {
		return fmt.Errorf("%w: loanTermYears must be positive, got %d", ErrInvalidInput, termYears)
	}
	if termYears > constants.MaxLoanTermYears {
		return fmt.Errorf("%w: loanTermYears must be at most %d, got %d",
			ErrInvalidInput, constants.MaxLoanTermYears, termYears)
	}
	return nil
}

// Validate checks that every income figure is a non-negative number.
func (i IncomeParameters) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"personAIncome", i.PersonAIncome},
		{"personBIncome", i.PersonBIncome},
		{"rentalIncome", i.RentalIncome},
		{"governmentHelp", i.GovernmentHelp},
		{"yearlyIncomeGrowth", i.YearlyIncomeGrowth},
	}
	for _, field := range fields {
		if err := checkNonNegative(field.name, field.value); err != nil {
			return err
		}
	}
	return nil
}

func checkNonNegative(name string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, name)
	}
	if value < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %.2f", ErrInvalidInput, name, value)
	}
	return nil
}
