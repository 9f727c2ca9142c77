// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/household-budget/internal/budget"
)

// FindExpense finds an expense by name in the expenses slice.
// Returns a pointer to the expense if found, nil otherwise.
func FindExpense(expenses []budget.Expense, name string) *budget.Expense {
	for i := range expenses {
		if expenses[i].Name == name {
			return &expenses[i]
		}
	}
	return nil
}

// ProjectionAt returns the projection point for year, or nil when the
// projection does not reach that year.
func ProjectionAt(points []budget.ProjectionPoint, year int) *budget.ProjectionPoint {
	for i := range points {
		if points[i].Year == year {
			return &points[i]
		}
	}
	return nil
}
