package budget

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Expense is a named recurring monthly expense.
type Expense struct {
	ID     int
	Name   string
	Amount decimal.Decimal
}

// MarshalJSON writes the amount as a JSON number rather than a quoted string.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     int             `json:"id"`
		Name   string          `json:"name"`
		Amount json.RawMessage `json:"amount"`
	}{
		ID:     e.ID,
		Name:   e.Name,
		Amount: json.RawMessage(e.Amount.String()),
	})
}

// ExpenseList is an ordered collection of expenses. Ids come from a counter
// that only moves forward, so an id is never handed out twice even after
// removals. The zero value is an empty list ready for use.
type ExpenseList struct {
	entries []Expense
	lastID  int
}

// NewExpenseList returns an empty list.
func NewExpenseList() *ExpenseList {
	return &ExpenseList{}
}

// DefaultExpenses returns the list the estimator starts with.
func DefaultExpenses() *ExpenseList {
	list := NewExpenseList()
	for _, seed := range []struct {
		name   string
		amount int64
	}{
		{"Benzin", 700},
		{"Bilur", 1300},
		{"Matur", 4000},
		{"Tryggingar", 850},
		{"Olja og El", 1300},
		{"Húsa kontu", 2000},
		{"Feriu kontu", 2000},
		{"Emergency fund", 1000},
		{"Íløgu kontu", 1200},
		{"Online services", 200},
		{"Venjing x 2", 700},
		{"Telefon", 150},
	} {
		list.AddAmount(seed.name, decimal.NewFromInt(seed.amount))
	}
	return list
}

// RestoreExpenseList rebuilds a list from entries that already carry ids.
// New entries added afterwards continue after the largest restored id.
func RestoreExpenseList(entries []Expense) (*ExpenseList, error) {
	list := NewExpenseList()
	seen := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("%w: expense %q has id %d", ErrInvalidInput, entry.Name, entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateIdentifier, entry.ID)
		}
		if entry.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %q has negative amount %s", ErrInvalidInput, entry.Name, entry.Amount)
		}
		seen[entry.ID] = struct{}{}
		list.entries = append(list.entries, entry)
		if entry.ID > list.lastID {
			list.lastID = entry.ID
		}
	}
	return list, nil
}

// Add appends an expense from user-entered text. It is a no-op returning
// false when the name is blank or the amount is not a non-negative number.
func (l *ExpenseList) Add(name, amountText string) (Expense, bool) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return Expense{}, false
	}
	return l.AddAmount(name, amount)
}

// AddAmount appends an expense with an already parsed amount, under the same
// rules as Add.
func (l *ExpenseList) AddAmount(name string, amount decimal.Decimal) (Expense, bool) {
	name = strings.TrimSpace(name)
	if name == "" || amount.IsNegative() {
		return Expense{}, false
	}
	l.lastID++
	expense := Expense{ID: l.lastID, Name: name, Amount: amount}
	l.entries = append(l.entries, expense)
	return expense, true
}

// Remove deletes the expense with the given id. An unknown id leaves the list
// untouched and returns false.
func (l *ExpenseList) Remove(id int) bool {
	for i, entry := range l.entries {
		if entry.ID == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the expense with the given id.
func (l *ExpenseList) Get(id int) (Expense, bool) {
	for _, entry := range l.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Expense{}, false
}

// Total sums every amount exactly; an empty list totals zero.
func (l *ExpenseList) Total() decimal.Decimal {
	total := decimal.Zero
	if l == nil {
		return total
	}
	for _, entry := range l.entries {
		total = total.Add(entry.Amount)
	}
	return total
}

// Entries returns a copy of the expenses in display order.
func (l *ExpenseList) Entries() []Expense {
	if l == nil {
		return nil
	}
	return append([]Expense(nil), l.entries...)
}

// Len is the number of expenses.
func (l *ExpenseList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
