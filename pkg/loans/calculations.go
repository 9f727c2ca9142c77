// Package loans provides fixed-rate loan calculations.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/household-budget/pkg/mathutil"
)

// ErrInvalidTerm is returned when a loan has no payments to spread the
// principal over.
var ErrInvalidTerm = errors.New("loan term must be at least one month")

// Summary aggregates the full life of a loan.
type Summary struct {
	Payments      int     `json:"payments"`
	TotalPaid     float64 `json:"totalPaid"`
	TotalInterest float64 `json:"totalInterest"`
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula. The result is not rounded.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTerm, termMonths)
	}

	financed := principal - downPayment
	if financed <= 0 {
		return 0, nil
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	if periodicInterestRate == 0 {
		// (1+r)^n - 1 is zero here, so spread the principal evenly instead.
		return financed / float64(termMonths), nil
	}

	// P*r/(1-(1+r)^-n) stays finite where (1+r)^n overflows.
	discount := math.Pow(1.00+periodicInterestRate, -float64(termMonths))
	return financed * periodicInterestRate / (1.00 - discount), nil
}

// Summarize totals the life of a fixed-rate loan of the given financed
// principal without walking its schedule. Every payment is the unrounded
// monthly payment, so the total paid is that payment times the term and the
// interest is whatever exceeds the principal. A loan with nothing financed
// has no payments.
func Summarize(principal, annualInterestRate float64, termMonths int) (Summary, error) {
	monthlyPayment, err := CalculateMonthlyPayment(principal, 0, annualInterestRate, termMonths)
	if err != nil {
		return Summary{}, err
	}
	if principal <= 0 {
		return Summary{}, nil
	}

	summary := Summary{Payments: termMonths, TotalPaid: principal}
	if mathutil.MonthlyRate(annualInterestRate) == 0 {
		return summary, nil
	}
	summary.TotalPaid = monthlyPayment * float64(termMonths)
	summary.TotalInterest = summary.TotalPaid - principal
	return summary, nil
}
