package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending limit for one category in one month.
// At most one budget exists per (Category, Month).
type Budget struct {
	ID        string
	Category  Category
	Amount    decimal.Decimal
	Month     string // "YYYY-MM"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BudgetDraft holds the caller-supplied fields of a new budget.
type BudgetDraft struct {
	Category Category
	Amount   decimal.Decimal
	Month    string
}

// BudgetPatch lists the fields to replace on update. Nil fields are kept.
type BudgetPatch struct {
	Category *Category
	Amount   *decimal.Decimal
	Month    *string
}

// Apply returns b with the non-nil patch fields copied over.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Month != nil {
		b.Month = *p.Month
	}
	return b
}

// SameSlot reports whether b and other cover the same category and month.
func (b Budget) SameSlot(other Budget) bool {
	return b.Category == other.Category && b.Month == other.Month
}

// Draft returns the caller-editable fields of b.
func (b Budget) Draft() BudgetDraft {
	return BudgetDraft{Category: b.Category, Amount: b.Amount, Month: b.Month}
}
