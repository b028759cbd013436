// Package categories is the static category registry.
package categories

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cleared-dev/tally/internal/model"
)

// maxSuggestDistance bounds how far a typo may be from a category id
// before Suggest gives up.
const maxSuggestDistance = 3

// Registry provides lookup over the category table. It is read-only.
type Registry struct {
	infos []model.CategoryInfo
	byID  map[model.Category]model.CategoryInfo
}

var defaultRegistry = newRegistry(defaultTable())

// Default returns the registry of the eleven predefined categories.
func Default() *Registry {
	return defaultRegistry
}

func newRegistry(infos []model.CategoryInfo) *Registry {
	byID := make(map[model.Category]model.CategoryInfo, len(infos))
	for _, c := range infos {
		byID[c.ID] = c
	}
	return &Registry{infos: infos, byID: byID}
}

// All returns every category in display order.
func (r *Registry) All() []model.CategoryInfo {
	out := make([]model.CategoryInfo, len(r.infos))
	copy(out, r.infos)
	return out
}

// Info returns the metadata for id. The category set is closed and input is
// validated at the boundary, so an unknown id is a programming error and panics.
func (r *Registry) Info(id model.Category) model.CategoryInfo {
	c, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("categories: unknown category %q", id))
	}
	return c
}

// Lookup returns the metadata for id and whether it exists.
func (r *Registry) Lookup(id model.Category) (model.CategoryInfo, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Income returns categories usable for income (income or both).
func (r *Registry) Income() []model.CategoryInfo {
	return r.filter(model.AppliesToIncome)
}

// Expense returns categories usable for expenses (expense or both).
func (r *Registry) Expense() []model.CategoryInfo {
	return r.filter(model.AppliesToExpense)
}

// ForType returns the categories usable with t.
func (r *Registry) ForType(t model.TransactionType) []model.CategoryInfo {
	if t == model.TypeIncome {
		return r.Income()
	}
	return r.Expense()
}

func (r *Registry) filter(a model.Applicability) []model.CategoryInfo {
	var result []model.CategoryInfo
	for _, c := range r.infos {
		if c.Applicability == a || c.Applicability == model.AppliesToBoth {
			result = append(result, c)
		}
	}
	return result
}

// Suggest returns the category id closest to input, matched against ids and
// display names case-insensitively.
func (r *Registry) Suggest(input string) (model.Category, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}

	best := model.Category("")
	bestDist := maxSuggestDistance + 1
	for _, c := range r.infos {
		for _, candidate := range []string{string(c.ID), strings.ToLower(c.Name)} {
			if d := levenshtein.ComputeDistance(input, candidate); d < bestDist {
				best, bestDist = c.ID, d
			}
		}
	}
	return best, best != ""
}

// Parse resolves user input to a category id, case-insensitively.
// Unknown input yields an error naming the closest match, if any.
func (r *Registry) Parse(input string) (model.Category, error) {
	id := model.Category(strings.ToLower(strings.TrimSpace(input)))
	if _, ok := r.byID[id]; ok {
		return id, nil
	}
	if s, ok := r.Suggest(input); ok {
		return "", fmt.Errorf("%w %q (did you mean %q?)", model.ErrUnknownCategory, input, s)
	}
	return "", fmt.Errorf("%w %q", model.ErrUnknownCategory, input)
}
