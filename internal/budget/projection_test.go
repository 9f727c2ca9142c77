package budget

import (
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/iwvelando/household-budget/pkg/mathutil"
)

func TestProjectHouseholdScenario(t *testing.T) {
	points := Project(DefaultIncomeParameters(), 24966, 15400)

	if len(points) != constants.ProjectionYears+1 {
		t.Fatalf("expected %d points, got %d", constants.ProjectionYears+1, len(points))
	}
	if points[0].Budget != 10851 {
		t.Errorf("expected year 0 budget 10851, got %v", points[0].Budget)
	}
	if points[0].Income != 48300 {
		t.Errorf("expected year 0 income 48300, got %v", points[0].Income)
	}

	expectedYear5 := mathutil.RoundCurrency((20000 + 20000 + 8300) * math.Pow(1.035, 5))
	if points[5].Income != expectedYear5 {
		t.Errorf("expected year 5 income %v, got %v", expectedYear5, points[5].Income)
	}
	if points[5].Income != 57365 {
		t.Errorf("expected year 5 income 57365, got %v", points[5].Income)
	}
	if points[5].Budget != 19916 {
		t.Errorf("expected year 5 budget 19916, got %v", points[5].Budget)
	}
}

func TestProjectShape(t *testing.T) {
	inputs := []IncomeParameters{
		{},
		DefaultIncomeParameters(),
		{PersonAIncome: 1, YearlyIncomeGrowth: 100},
	}

	for _, income := range inputs {
		points := Project(income, 1000, 500)
		if len(points) != 6 {
			t.Fatalf("expected 6 points, got %d", len(points))
		}
		for i, point := range points {
			if point.Year != i {
				t.Errorf("point %d has year %d", i, point.Year)
			}
		}
	}
}

func TestProjectYearZeroIncomeIsUngrown(t *testing.T) {
	income := IncomeParameters{
		PersonAIncome:      1234.4,
		PersonBIncome:      1000,
		RentalIncome:       500.3,
		GovernmentHelp:     400,
		YearlyIncomeGrowth: 7,
	}

	points := Project(income, 0, 0)
	if points[0].Income != mathutil.RoundCurrency(1234.4+1000+500.3) {
		t.Errorf("expected year 0 income %v, got %v", mathutil.RoundCurrency(1234.4+1000+500.3), points[0].Income)
	}
}

func TestProjectGovernmentHelpIsFlat(t *testing.T) {
	income := IncomeParameters{GovernmentHelp: 2917, YearlyIncomeGrowth: 10}

	for _, point := range Project(income, 1000, 0) {
		if point.Income != 0 {
			t.Errorf("year %d: government help must not count as income, got %v", point.Year, point.Income)
		}
		if point.Budget != 1917 {
			t.Errorf("year %d: expected flat budget 1917, got %v", point.Year, point.Budget)
		}
	}
}

func TestProjectNegativeBudget(t *testing.T) {
	income := IncomeParameters{PersonAIncome: 10000}
	points := Project(income, 12000, 500)

	if points[0].Budget != -2500 {
		t.Errorf("expected negative budget -2500, got %v", points[0].Budget)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	income := DefaultIncomeParameters()
	first := Project(income, 24966, 15400)
	second := Project(income, 24966, 15400)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical projections, got %v and %v", first, second)
	}
}
