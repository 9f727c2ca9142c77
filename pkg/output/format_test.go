package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/household-budget/internal/budget"
)

func defaultReport(t *testing.T) Report {
	t.Helper()
	state := budget.DefaultState()
	result, err := budget.NewEngine(nil).Recompute(state)
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}
	return Report{Loan: state.Loan, Income: state.Income, Result: result}
}

func TestPrettyFormat(t *testing.T) {
	report := defaultReport(t)
	report.Warnings = []string{"interest rate is 0"}

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, report); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Household budget",
		"Loan",
		"4,870,000 kr",
		"24,966 kr",
		"4.6%",
		"30 years",
		"Húsa kontu",
		"15,400 kr",
		"10,851 kr",
		"5,426 kr",
		"57,365 kr",
		"19,916 kr",
		"Income  ",
		"Budget  ",
		"warning: interest rate is 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
}

func TestPrettyFormatEmptyExpenses(t *testing.T) {
	state := budget.DefaultState()
	state.Expenses = budget.NewExpenseList()
	result, err := budget.NewEngine(nil).Recompute(state)
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, Report{Loan: state.Loan, Income: state.Income, Result: result}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if strings.Contains(buf.String(), "warning:") {
		t.Error("expected no warnings section")
	}
}

func TestCsvFormat(t *testing.T) {
	report := defaultReport(t)

	records, err := csv.NewReader(strings.NewReader(CsvString(report.Result))).ReadAll()
	if err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}

	if len(records) != 1+6+1+10 {
		t.Fatalf("expected 18 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "year,income,budget" {
		t.Errorf("unexpected header %v", records[0])
	}
	if strings.Join(records[1], ",") != "0,48300,10851" {
		t.Errorf("unexpected year 0 row %v", records[1])
	}
	if strings.Join(records[6], ",") != "5,57365,19916" {
		t.Errorf("unexpected year 5 row %v", records[6])
	}
	if strings.Join(records[7], ",") != "total,amount" {
		t.Errorf("unexpected totals header %v", records[7])
	}
	if strings.Join(records[9], ",") != "monthlyMortgage,24966" {
		t.Errorf("unexpected mortgage row %v", records[9])
	}
}

func TestJSONFormat(t *testing.T) {
	report := defaultReport(t)

	var buf bytes.Buffer
	if err := JSONFormat(&buf, report); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"loanParameters", "incomeParameters", "totals", "projection", "expenses", "loan"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON output missing key %q", key)
		}
	}
	if _, ok := decoded["warnings"]; ok {
		t.Error("empty warnings should be omitted")
	}

	totals := decoded["totals"].(map[string]interface{})
	if totals["monthlyMortgage"].(float64) != 24966 {
		t.Errorf("unexpected monthly mortgage %v", totals["monthlyMortgage"])
	}
	expenses := decoded["expenses"].([]interface{})
	first := expenses[0].(map[string]interface{})
	if first["amount"].(float64) != 700 || first["id"].(float64) != 1 {
		t.Errorf("unexpected first expense %v", first)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"Empty", nil, ""},
		{"Flat", []float64{5, 5, 5}, "▁▁▁"},
		{"Rising", []float64{0, 7, 14}, "▁▄█"},
		{"Negative values", []float64{-10, 0, 4}, "▁▆█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values); got != tt.want {
				t.Errorf("Sparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
