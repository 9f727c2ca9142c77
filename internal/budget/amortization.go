package budget

import (
	"fmt"

	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/loans"
	"github.com/iwvelando/household-budget/pkg/mathutil"
)

// Amortize returns the fixed monthly payment, rounded to a whole currency
// unit, for a principal repaid over termYears at annualRatePercent. A zero
// rate spreads the principal evenly and a non-positive principal costs
// nothing. A term outside 1..constants.MaxLoanTermYears is ErrInvalidInput.
func Amortize(principal, annualRatePercent float64, termYears int) (float64, error) {
	if err := checkTerm(termYears); err != nil {
		return 0, err
	}
	payment, err := loans.CalculateMonthlyPayment(principal, 0, annualRatePercent, termYears*constants.MonthsPerYear)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return mathutil.RoundCurrency(payment), nil
}

// MonthlyMortgage is the rounded payment for the loan after its down payment.
func MonthlyMortgage(loan LoanParameters) (float64, error) {
	return Amortize(loan.Principal(), loan.InterestRate, loan.LoanTermYears)
}
