// Package output provides utilities for formatting and displaying budget results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/household-budget/internal/budget"
	"github.com/iwvelando/household-budget/pkg/format"
)

// Report is everything a renderer needs: the inputs, the recomputed result
// and any configuration warnings.
type Report struct {
	Loan   budget.LoanParameters   `json:"loanParameters"`
	Income budget.IncomeParameters `json:"incomeParameters"`
	budget.Result
	Warnings []string `json:"warnings,omitempty"`
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report Report) error {
	var b strings.Builder
	totals := report.Totals

	b.WriteString(renderTitle("Household budget"))
	b.WriteString("\n\n")

	b.WriteString(renderTable(table{
		Title:   "Loan",
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Total loan amount", format.Currency(report.Loan.TotalLoanAmount)},
			{"Down payment", format.Currency(report.Loan.DownPayment)},
			{"Loan after down payment", format.Currency(totals.LoanAmountAfterDownPayment)},
			{"Interest rate", format.Percent(report.Loan.InterestRate)},
			{"Term", fmt.Sprintf("%d years", report.Loan.LoanTermYears)},
			{separatorRow},
			{"Monthly payment", format.Currency(totals.MonthlyMortgage)},
			{"Paid over the term", format.Currency(report.Result.Loan.TotalPaid)},
			{"Interest over the term", format.Currency(report.Result.Loan.TotalInterest)},
		},
	}))
	b.WriteString("\n")

	b.WriteString(renderTable(table{
		Title:   "Income",
		Headers: []string{"Source", "Monthly"},
		Rows: [][]string{
			{"Person A", format.Currency(report.Income.PersonAIncome)},
			{"Person B", format.Currency(report.Income.PersonBIncome)},
			{"Rental income", format.Currency(report.Income.RentalIncome)},
			{"Government help", format.Currency(report.Income.GovernmentHelp)},
			{"Yearly growth", format.Percent(report.Income.YearlyIncomeGrowth)},
			{separatorRow},
			{"Income after tax", format.Currency(totals.MonthlyIncomeAfterTax)},
		},
	}))
	b.WriteString("\n")

	expenseRows := make([][]string, 0, len(report.Expenses)+2)
	for _, expense := range report.Expenses {
		expenseRows = append(expenseRows, []string{
			strconv.Itoa(expense.ID),
			expense.Name,
			format.Currency(expense.Amount.InexactFloat64()),
		})
	}
	expenseRows = append(expenseRows, []string{separatorRow}, []string{"", "Total", format.Currency(totals.ExpenseTotal)})
	b.WriteString(renderTable(table{
		Title:   "Expenses",
		Headers: []string{"ID", "Name", "Monthly"},
		Rows:    expenseRows,
	}))
	b.WriteString("\n")

	b.WriteString(renderTable(table{
		Title:   "Monthly totals",
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Mortgage", format.Currency(totals.MonthlyMortgage)},
			{"Mortgage after government help", format.Currency(totals.NetMortgage)},
			{"Expenses", format.Currency(totals.ExpenseTotal)},
			{"Expenses with mortgage", format.Currency(totals.TotalExpenses)},
			{"Income", format.Currency(totals.TotalIncome)},
			{"Income with government help", format.Currency(totals.TotalIncomeWithGovernmentHelp)},
			{separatorRow},
			{"Net after expenses", format.Currency(totals.NetAfterExpenses)},
			{"Net per person", format.Currency(totals.NetPerPerson)},
		},
	}))
	b.WriteString("\n")

	incomes := make([]float64, 0, len(report.Projection))
	budgets := make([]float64, 0, len(report.Projection))
	projectionRows := make([][]string, 0, len(report.Projection))
	for _, point := range report.Projection {
		incomes = append(incomes, point.Income)
		budgets = append(budgets, point.Budget)
		projectionRows = append(projectionRows, []string{
			strconv.Itoa(point.Year),
			format.Currency(point.Income),
			format.Currency(point.Budget),
		})
	}
	b.WriteString(renderTable(table{
		Title:   "Projection",
		Headers: []string{"Year", "Income", "Budget"},
		Rows:    projectionRows,
	}))
	fmt.Fprintf(&b, "  Income  %s\n", positiveStyle.Render(Sparkline(incomes)))
	budgetStyle := positiveStyle
	if totals.NetAfterExpenses < 0 {
		budgetStyle = negativeStyle
	}
	fmt.Fprintf(&b, "  Budget  %s\n", budgetStyle.Render(Sparkline(budgets)))

	for _, warning := range report.Warnings {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("warning: " + warning))
	}
	if len(report.Warnings) > 0 {
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat writes the projection as comma-separated values followed by the
// monthly totals.
func CsvFormat(w io.Writer, result budget.Result) error {
	cw := csv.NewWriter(w)

	records := [][]string{{"year", "income", "budget"}}
	for _, point := range result.Projection {
		records = append(records, []string{
			strconv.Itoa(point.Year),
			formatNumber(point.Income),
			formatNumber(point.Budget),
		})
	}

	totals := result.Totals
	records = append(records,
		[]string{"total", "amount"},
		[]string{"loanAmountAfterDownPayment", formatNumber(totals.LoanAmountAfterDownPayment)},
		[]string{"monthlyMortgage", formatNumber(totals.MonthlyMortgage)},
		[]string{"netMortgage", formatNumber(totals.NetMortgage)},
		[]string{"monthlyIncomeAfterTax", formatNumber(totals.MonthlyIncomeAfterTax)},
		[]string{"expenseTotal", formatNumber(totals.ExpenseTotal)},
		[]string{"totalExpenses", formatNumber(totals.TotalExpenses)},
		[]string{"totalIncome", formatNumber(totals.TotalIncome)},
		[]string{"totalIncomeWithGovernmentHelp", formatNumber(totals.TotalIncomeWithGovernmentHelp)},
		[]string{"netAfterExpenses", formatNumber(totals.NetAfterExpenses)},
		[]string{"netPerPerson", formatNumber(totals.NetPerPerson)},
	)

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// CsvString returns the CSV representation of result.
func CsvString(result budget.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the full report as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
