package store

import (
	"fmt"

	"github.com/cleared-dev/tally/internal/model"
)

// BudgetStore is the record store for budgets. It keeps at most one budget
// per (category, month).
type BudgetStore struct {
	c    *collection[model.Budget]
	opts options
}

// NewBudgetStore returns a store persisting to backend under BudgetsKey.
func NewBudgetStore(backend Backend, opts ...Option) *BudgetStore {
	o := buildOptions(opts)
	return &BudgetStore{
		c: &collection[model.Budget]{
			backend: backend,
			key:     BudgetsKey,
			encode:  EncodeBudgets,
			decode:  DecodeBudgets,
			logger:  o.logger,
		},
		opts: o,
	}
}

// All returns every budget. Read failures are logged and yield an empty slice.
func (s *BudgetStore) All() []model.Budget {
	return s.c.All()
}

// Load returns every budget, or the error that prevented reading them.
func (s *BudgetStore) Load() ([]model.Budget, error) {
	return s.c.Load()
}

// ByMonth returns the budgets whose month equals month exactly.
func (s *BudgetStore) ByMonth(month string) []model.Budget {
	var result []model.Budget
	for _, b := range s.All() {
		if b.Month == month {
			result = append(result, b)
		}
	}
	return result
}

// Get returns the budget with id, or ErrNotFound.
func (s *BudgetStore) Get(id string) (model.Budget, error) {
	budgets, err := s.c.Load()
	if err != nil {
		return model.Budget{}, err
	}
	for _, b := range budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Budget{}, fmt.Errorf("budget %s: %w", id, ErrNotFound)
}

// Add stores a new budget, replacing any existing budget for the same
// category and month.
func (s *BudgetStore) Add(draft model.BudgetDraft) (model.Budget, error) {
	now := s.opts.stamp()
	b := model.Budget{
		ID:        s.opts.newID(),
		Category:  draft.Category,
		Amount:    draft.Amount,
		Month:     draft.Month,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.c.mutate(func(budgets []model.Budget) ([]model.Budget, bool, error) {
		kept := budgets[:0:0]
		for _, existing := range budgets {
			if existing.SameSlot(b) {
				s.opts.logger.Debug("replacing budget", "id", existing.ID, "category", existing.Category, "month", existing.Month)
				continue
			}
			kept = append(kept, existing)
		}
		return append(kept, b), true, nil
	})
	if err != nil {
		return model.Budget{}, err
	}
	return b, nil
}

// Update merges patch into the budget with id and refreshes UpdatedAt. If the
// patch moves the budget onto a (category, month) held by another budget, that
// budget is removed. It returns ErrNotFound if there is no such budget.
func (s *BudgetStore) Update(id string, patch model.BudgetPatch) (model.Budget, error) {
	var updated model.Budget
	err := s.c.mutate(func(budgets []model.Budget) ([]model.Budget, bool, error) {
		idx := -1
		for i, b := range budgets {
			if b.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false, fmt.Errorf("budget %s: %w", id, ErrNotFound)
		}

		prev := budgets[idx]
		updated = patch.Apply(prev)
		updated.ID = prev.ID
		updated.CreatedAt = prev.CreatedAt
		updated.UpdatedAt = s.opts.touch(prev.UpdatedAt)

		kept := budgets[:0:0]
		for _, b := range budgets {
			switch {
			case b.ID == id:
				kept = append(kept, updated)
			case b.SameSlot(updated):
				s.opts.logger.Debug("evicting budget", "id", b.ID, "category", b.Category, "month", b.Month)
			default:
				kept = append(kept, b)
			}
		}
		return kept, true, nil
	})
	if err != nil {
		return model.Budget{}, err
	}
	return updated, nil
}

// Delete removes the budget with id and reports whether one was removed.
func (s *BudgetStore) Delete(id string) (bool, error) {
	removed := false
	err := s.c.mutate(func(budgets []model.Budget) ([]model.Budget, bool, error) {
		kept := budgets[:0:0]
		for _, b := range budgets {
			if b.ID == id {
				removed = true
				continue
			}
			kept = append(kept, b)
		}
		return kept, removed, nil
	})
	return removed, err
}

// ReplaceAll overwrites the whole collection.
func (s *BudgetStore) ReplaceAll(budgets []model.Budget) error {
	return s.c.ReplaceAll(budgets)
}

// Clear removes the persisted collection.
func (s *BudgetStore) Clear() error {
	return s.c.Clear()
}
