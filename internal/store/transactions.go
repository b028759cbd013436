package store

import (
	"fmt"
	"time"

	"github.com/cleared-dev/tally/internal/model"
)

// TransactionStore is the record store for transactions.
type TransactionStore struct {
	c    *collection[model.Transaction]
	opts options
}

// NewTransactionStore returns a store persisting to backend under TransactionsKey.
func NewTransactionStore(backend Backend, opts ...Option) *TransactionStore {
	o := buildOptions(opts)
	return &TransactionStore{
		c: &collection[model.Transaction]{
			backend: backend,
			key:     TransactionsKey,
			encode:  EncodeTransactions,
			decode:  DecodeTransactions,
			logger:  o.logger,
		},
		opts: o,
	}
}

// All returns every transaction. Read failures are logged and yield an empty slice.
func (s *TransactionStore) All() []model.Transaction {
	return s.c.All()
}

// Load returns every transaction, or the error that prevented reading them.
func (s *TransactionStore) Load() ([]model.Transaction, error) {
	return s.c.Load()
}

// Get returns the transaction with id, or ErrNotFound.
func (s *TransactionStore) Get(id string) (model.Transaction, error) {
	txns, err := s.c.Load()
	if err != nil {
		return model.Transaction{}, err
	}
	for _, t := range txns {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

func (s *TransactionStore) build(draft model.TransactionDraft, now time.Time) model.Transaction {
	return model.Transaction{
		ID:          s.opts.newID(),
		Amount:      draft.Amount,
		Description: draft.Description,
		Date:        draft.Date,
		Category:    draft.Category,
		Type:        draft.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Add assigns an id and timestamps to draft, appends it and persists the collection.
func (s *TransactionStore) Add(draft model.TransactionDraft) (model.Transaction, error) {
	t := s.build(draft, s.opts.stamp())

	err := s.c.mutate(func(txns []model.Transaction) ([]model.Transaction, bool, error) {
		return append(txns, t), true, nil
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// AddAll appends every draft in a single write. Either all are stored or none.
func (s *TransactionStore) AddAll(drafts []model.TransactionDraft) ([]model.Transaction, error) {
	if len(drafts) == 0 {
		return nil, nil
	}
	now := s.opts.stamp()
	added := make([]model.Transaction, len(drafts))
	for i, d := range drafts {
		added[i] = s.build(d, now)
	}

	err := s.c.mutate(func(txns []model.Transaction) ([]model.Transaction, bool, error) {
		return append(txns, added...), true, nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Update merges patch into the transaction with id and refreshes UpdatedAt.
// It returns ErrNotFound if there is no such transaction.
func (s *TransactionStore) Update(id string, patch model.TransactionPatch) (model.Transaction, error) {
	var updated model.Transaction
	err := s.c.mutate(func(txns []model.Transaction) ([]model.Transaction, bool, error) {
		for i, t := range txns {
			if t.ID != id {
				continue
			}
			updated = patch.Apply(t)
			updated.ID = t.ID
			updated.CreatedAt = t.CreatedAt
			updated.UpdatedAt = s.opts.touch(t.UpdatedAt)
			txns[i] = updated
			return txns, true, nil
		}
		return nil, false, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return updated, nil
}

// Delete removes the transaction with id and reports whether one was removed.
func (s *TransactionStore) Delete(id string) (bool, error) {
	removed := false
	err := s.c.mutate(func(txns []model.Transaction) ([]model.Transaction, bool, error) {
		kept := txns[:0:0]
		for _, t := range txns {
			if t.ID == id {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		return kept, removed, nil
	})
	return removed, err
}

// ReplaceAll overwrites the whole collection.
func (s *TransactionStore) ReplaceAll(txns []model.Transaction) error {
	return s.c.ReplaceAll(txns)
}

// Clear removes the persisted collection.
func (s *TransactionStore) Clear() error {
	return s.c.Clear()
}
