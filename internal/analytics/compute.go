// Package analytics derives series, breakdowns, budget statuses and the
// dashboard from snapshots of the record store.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
)

var hundred = decimal.NewFromInt(100)

// percent returns round(part/whole*100), or 0 when whole is zero. Halves round
// away from zero.
func percent(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(whole).Round(0).IntPart())
}

// MonthlySeries sums amounts per month key, one entry per key in months and
// in the same order. Transactions of both types are counted.
func MonthlySeries(txns []model.Transaction, months []string) []model.MonthlyExpense {
	idx := make(map[string]int, len(months))
	series := make([]model.MonthlyExpense, len(months))
	for i, m := range months {
		idx[m] = i
		series[i] = model.MonthlyExpense{Month: m, Amount: decimal.Zero}
	}

	for _, t := range txns {
		if i, ok := idx[t.Date.MonthKey()]; ok {
			series[i].Amount = series[i].Amount.Add(t.Amount)
		}
	}
	return series
}

// CategoryBreakdown sums the transactions dated within r per category, in the
// order given. Categories with nothing spent are omitted; transactions in a
// category not listed are ignored.
func CategoryBreakdown(txns []model.Transaction, r period.Range, order []model.CategoryInfo) []model.CategoryExpense {
	sums := make(map[model.Category]decimal.Decimal, len(order))
	for _, info := range order {
		sums[info.ID] = decimal.Zero
	}

	total := decimal.Zero
	for _, t := range txns {
		if !r.ContainsDate(t.Date) {
			continue
		}
		sum, ok := sums[t.Category]
		if !ok {
			continue
		}
		sums[t.Category] = sum.Add(t.Amount)
		total = total.Add(t.Amount)
	}

	var rows []model.CategoryExpense
	for _, info := range order {
		amount := sums[info.ID]
		if !amount.IsPositive() {
			continue
		}
		rows = append(rows, model.CategoryExpense{
			Category:   info.ID,
			Amount:     amount,
			Percentage: percent(amount, total),
		})
	}
	return rows
}

// StatusesFor compares each budget with the spend in its category during its
// month.
func StatusesFor(budgets []model.Budget, txns []model.Transaction) []model.BudgetStatus {
	statuses := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := decimal.Zero
		for _, t := range txns {
			if t.Category == b.Category && t.Date.MonthKey() == b.Month {
				spent = spent.Add(t.Amount)
			}
		}
		statuses = append(statuses, model.BudgetStatus{
			Category:     b.Category,
			Budgeted:     b.Amount,
			Spent:        spent,
			Remaining:    b.Amount.Sub(spent),
			Percentage:   percent(spent, b.Amount),
			IsOverBudget: spent.GreaterThan(b.Amount),
		})
	}
	return statuses
}

// ComputeTotals sums income and expenses separately.
func ComputeTotals(txns []model.Transaction) model.Totals {
	totals := model.Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, t := range txns {
		switch t.Type {
		case model.TypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case model.TypeExpense:
			totals.Expenses = totals.Expenses.Add(t.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expenses)
	return totals
}

// SummarizeBudgets aggregates a list of statuses.
func SummarizeBudgets(statuses []model.BudgetStatus) model.BudgetSummary {
	s := model.BudgetSummary{Count: len(statuses), Budgeted: decimal.Zero, Spent: decimal.Zero}
	for _, st := range statuses {
		if st.IsOverBudget {
			s.OverBudget++
		}
		s.Budgeted = s.Budgeted.Add(st.Budgeted)
		s.Spent = s.Spent.Add(st.Spent)
	}
	s.Percentage = percent(s.Spent, s.Budgeted)
	return s
}

// InRange returns the transactions dated within r, preserving order.
func InRange(txns []model.Transaction, r period.Range) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if r.ContainsDate(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// InMonth returns the transactions whose date falls in the month key.
func InMonth(txns []model.Transaction, month string) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Date.MonthKey() == month {
			out = append(out, t)
		}
	}
	return out
}

// NewestFirst returns a copy of txns sorted by date, latest first. Equal dates
// keep their input order.
func NewestFirst(txns []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[j].Date.Before(sorted[i].Date)
	})
	return sorted
}

// Recent returns at most n transactions, latest date first.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	sorted := NewestFirst(txns)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
