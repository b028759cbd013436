package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction. Amounts are always positive.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a recorded income or expense.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Date        Date
	Category    Category
	Type        TransactionType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionDraft holds the caller-supplied fields of a new transaction.
type TransactionDraft struct {
	Amount      decimal.Decimal
	Description string
	Date        Date
	Category    Category
	Type        TransactionType
}

// TransactionPatch lists the fields to replace on update. Nil fields are kept.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Description *string
	Date        *Date
	Category    *Category
	Type        *TransactionType
}

// Apply returns t with the non-nil patch fields copied over.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	return t
}

// Draft returns the caller-editable fields of t.
func (t Transaction) Draft() TransactionDraft {
	return TransactionDraft{
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		Category:    t.Category,
		Type:        t.Type,
	}
}
