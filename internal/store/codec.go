package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Collection keys.
const (
	TransactionsKey = "finance_transactions"
	BudgetsKey      = "finance_budgets"
)

const timestampFormat = time.RFC3339Nano

// transactionRecord is the on-disk shape of a Transaction.
type transactionRecord struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Date        *model.Date `json:"date"`
	Category    string      `json:"category"`
	Type        string      `json:"type"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

// budgetRecord is the on-disk shape of a Budget.
type budgetRecord struct {
	ID        string      `json:"id"`
	Category  string      `json:"category"`
	Amount    json.Number `json:"amount"`
	Month     string      `json:"month"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// EncodeTransactions serializes transactions as a JSON array.
func EncodeTransactions(txns []model.Transaction) ([]byte, error) {
	recs := make([]transactionRecord, len(txns))
	for i, t := range txns {
		t := t // per-iteration copy: &t.Date below must not alias across iterations (go 1.21 loop semantics)
		recs[i] = transactionRecord{
			ID:          t.ID,
			Amount:      json.Number(t.Amount.String()),
			Description: t.Description,
			Date:        &t.Date,
			Category:    string(t.Category),
			Type:        string(t.Type),
			CreatedAt:   t.CreatedAt.UTC().Format(timestampFormat),
			UpdatedAt:   t.UpdatedAt.UTC().Format(timestampFormat),
		}
	}
	return json.Marshal(recs)
}

// DecodeTransactions parses a JSON array of transactions. Any invalid record
// fails the whole collection.
func DecodeTransactions(data []byte) ([]model.Transaction, error) {
	var recs []transactionRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing transactions: %w", err)
	}

	txns := make([]model.Transaction, 0, len(recs))
	for i, rec := range recs {
		t, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (r transactionRecord) toModel() (model.Transaction, error) {
	if err := requireFields(
		field{"id", r.ID != ""},
		field{"amount", r.Amount != ""},
		field{"description", r.Description != ""},
		field{"date", r.Date != nil},
		field{"category", r.Category != ""},
		field{"type", r.Type != ""},
		field{"createdAt", r.CreatedAt != ""},
		field{"updatedAt", r.UpdatedAt != ""},
	); err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(string(r.Amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", r.Amount, err)
	}
	created, updated, err := parseTimestamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		ID:          r.ID,
		Amount:      amount,
		Description: r.Description,
		Date:        *r.Date,
		Category:    model.Category(r.Category),
		Type:        model.TransactionType(r.Type),
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

// EncodeBudgets serializes budgets as a JSON array.
func EncodeBudgets(budgets []model.Budget) ([]byte, error) {
	recs := make([]budgetRecord, len(budgets))
	for i, b := range budgets {
		recs[i] = budgetRecord{
			ID:        b.ID,
			Category:  string(b.Category),
			Amount:    json.Number(b.Amount.String()),
			Month:     b.Month,
			CreatedAt: b.CreatedAt.UTC().Format(timestampFormat),
			UpdatedAt: b.UpdatedAt.UTC().Format(timestampFormat),
		}
	}
	return json.Marshal(recs)
}

// DecodeBudgets parses a JSON array of budgets. Any invalid record fails the
// whole collection.
func DecodeBudgets(data []byte) ([]model.Budget, error) {
	var recs []budgetRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing budgets: %w", err)
	}

	budgets := make([]model.Budget, 0, len(recs))
	for i, rec := range recs {
		b, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("budget %d: %w", i, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func (r budgetRecord) toModel() (model.Budget, error) {
	if err := requireFields(
		field{"id", r.ID != ""},
		field{"category", r.Category != ""},
		field{"amount", r.Amount != ""},
		field{"month", r.Month != ""},
		field{"createdAt", r.CreatedAt != ""},
		field{"updatedAt", r.UpdatedAt != ""},
	); err != nil {
		return model.Budget{}, err
	}

	amount, err := decimal.NewFromString(string(r.Amount))
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing amount %q: %w", r.Amount, err)
	}
	created, updated, err := parseTimestamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return model.Budget{}, err
	}

	return model.Budget{
		ID:        r.ID,
		Category:  model.Category(r.Category),
		Amount:    amount,
		Month:     r.Month,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// field is a required record field and whether the record carries it.
type field struct {
	name    string
	present bool
}

// requireFields reports the first absent field, in the order given.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return fmt.Errorf("missing required field %q", f.name)
		}
	}
	return nil
}

func parseTimestamps(createdAt, updatedAt string) (created, updated time.Time, err error) {
	created, err = time.Parse(timestampFormat, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing createdAt %q: %w", createdAt, err)
	}
	updated, err = time.Parse(timestampFormat, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updatedAt %q: %w", updatedAt, err)
	}
	return created.UTC(), updated.UTC(), nil
}
