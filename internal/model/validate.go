package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLen is the longest accepted description, in characters.
const MaxDescriptionLen = 200

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrMissingDate        = errors.New("missing date")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrCategoryMismatch   = errors.New("category not allowed for transaction type")
	ErrInvalidMonth       = errors.New("invalid month")
)

var (
	minTransactionAmount = decimal.RequireFromString("0.01")
	minBudgetAmount      = decimal.NewFromInt(1)
)

// ValidationError ties a rejected field to the reason it was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

// Validate checks a draft before it is handed to the store.
// All violations are reported together.
func (d TransactionDraft) Validate(cats CategoryChecker) error {
	var errs []error

	if d.Amount.LessThan(minTransactionAmount) {
		errs = append(errs, ValidationError{"amount", fmt.Errorf("%w: must be at least %s", ErrInvalidAmount, minTransactionAmount)})
	}

	switch n := utf8.RuneCountInString(d.Description); {
	case n == 0:
		errs = append(errs, ValidationError{"description", ErrEmptyDescription})
	case n > MaxDescriptionLen:
		errs = append(errs, ValidationError{"description", fmt.Errorf("%w: %d > %d characters", ErrDescriptionTooLong, n, MaxDescriptionLen)})
	}

	if d.Date.IsZero() {
		errs = append(errs, ValidationError{"date", ErrMissingDate})
	}

	if !d.Type.Valid() {
		errs = append(errs, ValidationError{"type", fmt.Errorf("%w: %q", ErrInvalidType, d.Type)})
	}

	info, ok := cats.Lookup(d.Category)
	switch {
	case !ok:
		errs = append(errs, ValidationError{"category", fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)})
	case d.Type.Valid() && !info.Allows(d.Type):
		errs = append(errs, ValidationError{"category", fmt.Errorf("%w: %s is %s-only", ErrCategoryMismatch, d.Category, info.Applicability)})
	}

	return errors.Join(errs...)
}

// Validate checks a budget draft before it is handed to the store.
func (d BudgetDraft) Validate(cats CategoryChecker) error {
	var errs []error

	if d.Amount.LessThan(minBudgetAmount) {
		errs = append(errs, ValidationError{"amount", fmt.Errorf("%w: must be at least %s", ErrInvalidAmount, minBudgetAmount)})
	}
	if !ValidMonth(d.Month) {
		errs = append(errs, ValidationError{"month", fmt.Errorf("%w: %q, expected YYYY-MM", ErrInvalidMonth, d.Month)})
	}
	if _, ok := cats.Lookup(d.Category); !ok {
		errs = append(errs, ValidationError{"category", fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)})
	}

	return errors.Join(errs...)
}

// ValidMonth reports whether s is a well-formed "YYYY-MM" key.
func ValidMonth(s string) bool {
	t, err := time.Parse("2006-01", s)
	return err == nil && t.Format("2006-01") == s
}
