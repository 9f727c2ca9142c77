package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/household-budget/internal/config"
	"go.uber.org/zap"
)

func TestParseExpenseFlag(t *testing.T) {
	tests := []struct {
		in         string
		wantName   string
		wantAmount string
		wantOK     bool
	}{
		{"Gym=350", "Gym", "350", true},
		{"a=b=12", "a=b", "12", true},
		{"Gym=", "Gym", "", true},
		{"=350", "", "", false},
		{"Gym", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, amount, ok := parseExpenseFlag(tt.in)
			if name != tt.wantName || amount != tt.wantAmount || ok != tt.wantOK {
				t.Errorf("parseExpenseFlag(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, name, amount, ok, tt.wantName, tt.wantAmount, tt.wantOK)
			}
		})
	}
}

func TestLoadConfiguration(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "budget.yaml")

	conf, err := loadConfiguration(missing, false)
	if err != nil {
		t.Fatalf("missing default file should fall back to defaults, got %v", err)
	}
	if conf.Loan.TotalLoanAmount != 5500000 {
		t.Errorf("expected default configuration, got %+v", conf.Loan)
	}

	if _, err := loadConfiguration(missing, true); err == nil {
		t.Error("expected error for explicitly named missing file")
	}

	if err := os.WriteFile(missing, []byte("loan:\n  loanTermYears: 20\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	conf, err = loadConfiguration(missing, false)
	if err != nil {
		t.Fatalf("loadConfiguration() error = %v", err)
	}
	if conf.Loan.LoanTermYears != 20 {
		t.Errorf("expected file value 20, got %d", conf.Loan.LoanTermYears)
	}
}

func TestRenderBudgetCSV(t *testing.T) {
	var buf bytes.Buffer
	err := renderBudget(&buf, zap.NewNop(), config.Default(), budgetOptions{OutputFormat: "csv"})
	if err != nil {
		t.Fatalf("renderBudget() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if strings.Join(records[1], ",") != "0,48300,10851" {
		t.Errorf("unexpected first projection row %v", records[1])
	}
}

func TestRenderBudgetExpenseEdits(t *testing.T) {
	var buf bytes.Buffer
	opts := budgetOptions{
		AddExpenses:    []string{"Gym=350", "broken", "Bad=abc"},
		RemoveExpenses: []int{1, 42},
		OutputFormat:   "json",
	}
	if err := renderBudget(&buf, zap.NewNop(), config.Default(), opts); err != nil {
		t.Fatalf("renderBudget() error = %v", err)
	}

	var report struct {
		Totals struct {
			ExpenseTotal float64 `json:"expenseTotal"`
		} `json:"totals"`
		Expenses []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"expenses"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	// 15400 - 700 (Benzin, id 1) + 350
	if report.Totals.ExpenseTotal != 15050 {
		t.Errorf("expected expense total 15050, got %v", report.Totals.ExpenseTotal)
	}
	if len(report.Expenses) != 12 {
		t.Fatalf("expected 12 expenses, got %d", len(report.Expenses))
	}
	last := report.Expenses[len(report.Expenses)-1]
	if last.ID != 13 || last.Name != "Gym" {
		t.Errorf("expected Gym with id 13 last, got %+v", last)
	}
}

func TestRenderBudgetOutputFormat(t *testing.T) {
	conf := config.Default()
	conf.Output.Format = "csv"

	var buf bytes.Buffer
	if err := renderBudget(&buf, zap.NewNop(), conf, budgetOptions{}); err != nil {
		t.Fatalf("renderBudget() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "year,income,budget") {
		t.Errorf("expected config output format csv, got %q", buf.String())
	}

	buf.Reset()
	if err := renderBudget(&buf, zap.NewNop(), conf, budgetOptions{OutputFormat: "pretty"}); err != nil {
		t.Fatalf("renderBudget() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Household budget") {
		t.Error("expected CLI override to select pretty output")
	}

	if err := renderBudget(&buf, zap.NewNop(), conf, budgetOptions{OutputFormat: "xml"}); err == nil {
		t.Error("expected error for invalid output format")
	}
}

func TestRenderBudgetInvalidConfiguration(t *testing.T) {
	conf := config.Default()
	conf.Loan.LoanTermYears = 0

	if err := renderBudget(&bytes.Buffer{}, zap.NewNop(), conf, budgetOptions{}); err == nil {
		t.Error("expected error for zero loan term")
	}
}
