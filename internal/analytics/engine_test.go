package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
)

// Wednesday, 15 May 2024.
var today = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return today }

type txnSlice []model.Transaction

func (s txnSlice) All() []model.Transaction { return s }

type budgetSlice []model.Budget

func (s budgetSlice) ByMonth(month string) []model.Budget {
	var out []model.Budget
	for _, b := range s {
		if b.Month == month {
			out = append(out, b)
		}
	}
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var seq int

func tx(amount, day string, cat model.Category, typ model.TransactionType) model.Transaction {
	seq++
	d, err := model.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		ID:          fmt.Sprintf("t%d", seq),
		Amount:      dec(amount),
		Description: "txn",
		Date:        d,
		Category:    cat,
		Type:        typ,
	}
}

func expense(amount, day string, cat model.Category) model.Transaction {
	return tx(amount, day, cat, model.TypeExpense)
}

func income(amount, day string, cat model.Category) model.Transaction {
	return tx(amount, day, cat, model.TypeIncome)
}

func newEngine(txns []model.Transaction, budgets []model.Budget, opts ...Option) *Engine {
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return NewEngine(txnSlice(txns), budgetSlice(budgets), opts...)
}

func TestMonthlyExpenses_Series(t *testing.T) {
	e := newEngine([]model.Transaction{
		expense("50", "2024-03-10", model.CategoryFood),
		expense("30", "2024-05-02", model.CategoryBills),
		expense("99", "2024-01-31", model.CategoryFood), // outside the window
	}, nil)

	got := e.MonthlyExpenses(3)
	require.Len(t, got, 3)

	want := []struct {
		month  string
		amount string
	}{
		{"2024-03", "50"},
		{"2024-04", "0"},
		{"2024-05", "30"},
	}
	for i, w := range want {
		assert.Equal(t, w.month, got[i].Month)
		assert.True(t, got[i].Amount.Equal(dec(w.amount)), "%s: got %s", w.month, got[i].Amount)
	}
}

func TestMonthlyExpenses_CountsIncomeToo(t *testing.T) {
	// The series sums every transaction in the month, income included.
	e := newEngine([]model.Transaction{
		expense("40", "2024-05-02", model.CategoryFood),
		income("1000", "2024-05-01", model.CategorySalary),
	}, nil)

	got := e.MonthlyExpenses(1)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-05", got[0].Month)
	assert.True(t, got[0].Amount.Equal(dec("1040")))
}

func TestMonthlyExpenses_DefaultLength(t *testing.T) {
	e := newEngine(nil, nil)
	got := e.MonthlyExpenses(e.SeriesMonths())
	require.Len(t, got, DefaultSeriesMonths)
	assert.Equal(t, "2023-06", got[0].Month)
	assert.Equal(t, "2024-05", got[len(got)-1].Month)
	for _, m := range got {
		assert.True(t, m.Amount.IsZero())
	}

	assert.Equal(t, 6, newEngine(nil, nil, WithSeriesMonths(6)).SeriesMonths())
}

func TestMonthlyExpenses_ZeroMonths(t *testing.T) {
	e := newEngine(nil, nil)
	assert.Empty(t, e.MonthlyExpenses(0))
	assert.Empty(t, e.MonthlyExpenses(-1))
}

func TestCategoryExpenses(t *testing.T) {
	e := newEngine([]model.Transaction{
		expense("30", "2024-05-01", model.CategoryBills),
		expense("60", "2024-05-03", model.CategoryFood),
		expense("10", "2024-05-31", model.CategoryFood),
		expense("500", "2024-04-30", model.CategoryShopping), // last month
	}, nil)

	got := e.CategoryExpenses(period.ThisMonth)
	require.Len(t, got, 2)

	// Registry order: food before bills.
	assert.Equal(t, model.CategoryFood, got[0].Category)
	assert.True(t, got[0].Amount.Equal(dec("70")))
	assert.Equal(t, 70, got[0].Percentage)
	assert.Equal(t, model.CategoryBills, got[1].Category)
	assert.True(t, got[1].Amount.Equal(dec("30")))
	assert.Equal(t, 30, got[1].Percentage)

	last := e.CategoryExpenses(period.LastMonth)
	require.Len(t, last, 1)
	assert.Equal(t, model.CategoryShopping, last[0].Category)
	assert.Equal(t, 100, last[0].Percentage)
}

func TestCategoryExpenses_PercentagesSumToHundred(t *testing.T) {
	tests := []struct {
		name    string
		amounts map[model.Category]string
	}{
		{"thirds", map[model.Category]string{
			model.CategoryFood: "1", model.CategoryBills: "1", model.CategoryHealth: "1",
		}},
		{"uneven", map[model.Category]string{
			model.CategoryFood: "12.34", model.CategoryTransport: "56.78", model.CategoryFees: "0.99",
			model.CategoryEntertainment: "41.50", model.CategoryShopping: "7",
		}},
		{"single", map[model.Category]string{model.CategoryOthers: "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []model.Transaction
			for cat, amount := range tt.amounts {
				txns = append(txns, expense(amount, "2024-05-10", cat))
			}
			rows := newEngine(txns, nil).CategoryExpenses(period.ThisMonth)
			require.Len(t, rows, len(tt.amounts))

			sum := 0
			for _, r := range rows {
				sum += r.Percentage
			}
			assert.InDelta(t, 100, sum, float64(len(rows)), "percentages should sum to about 100")
		})
	}
}

func TestCategoryExpenses_Empty(t *testing.T) {
	assert.Empty(t, newEngine(nil, nil).CategoryExpenses(period.All))
}

func TestBudgetStatuses(t *testing.T) {
	e := newEngine(
		[]model.Transaction{
			expense("70", "2024-05-02", model.CategoryFood),
			expense("50", "2024-05-20", model.CategoryFood),
			expense("40", "2024-04-20", model.CategoryFood), // other month
			expense("15", "2024-05-20", model.CategoryBills),
		},
		[]model.Budget{
			{ID: "b1", Category: model.CategoryFood, Amount: dec("100"), Month: "2024-05"},
			{ID: "b2", Category: model.CategoryBills, Amount: dec("60"), Month: "2024-05"},
			{ID: "b3", Category: model.CategoryFood, Amount: dec("100"), Month: "2024-04"},
		},
	)

	got := e.BudgetStatuses("2024-05")
	require.Len(t, got, 2)

	food := got[0]
	assert.Equal(t, model.CategoryFood, food.Category)
	assert.True(t, food.Budgeted.Equal(dec("100")))
	assert.True(t, food.Spent.Equal(dec("120")))
	assert.True(t, food.Remaining.Equal(dec("-20")))
	assert.Equal(t, 120, food.Percentage)
	assert.True(t, food.IsOverBudget)

	bills := got[1]
	assert.True(t, bills.Spent.Equal(dec("15")))
	assert.True(t, bills.Remaining.Equal(dec("45")))
	assert.Equal(t, 25, bills.Percentage)
	assert.False(t, bills.IsOverBudget)

	assert.Empty(t, e.BudgetStatuses("2024-06"))
}

func TestBudgetStatuses_ExactlySpentIsNotOver(t *testing.T) {
	e := newEngine(
		[]model.Transaction{expense("100", "2024-05-02", model.CategoryFood)},
		[]model.Budget{{ID: "b1", Category: model.CategoryFood, Amount: dec("100"), Month: "2024-05"}},
	)
	got := e.BudgetStatuses("2024-05")
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].Percentage)
	assert.False(t, got[0].IsOverBudget)
	assert.True(t, got[0].Remaining.IsZero())
}

func TestDashboard(t *testing.T) {
	txns := []model.Transaction{
		income("2000", "2024-05-01", model.CategorySalary),
		expense("120", "2024-05-03", model.CategoryFood),
		expense("80", "2024-05-14", model.CategoryBills),
		expense("300", "2024-04-28", model.CategoryShopping),
		income("500", "2024-04-15", model.CategoryFreelance),
		expense("10", "2024-05-14", model.CategoryTransport),
		expense("5", "2023-12-24", model.CategoryFees),
	}
	snapshot := append([]model.Transaction(nil), txns...)
	e := newEngine(txns, []model.Budget{
		{ID: "b1", Category: model.CategoryFood, Amount: dec("100"), Month: "2024-05"},
		{ID: "b2", Category: model.CategoryFood, Amount: dec("100"), Month: "2024-04"},
	})

	d := e.Dashboard()
	assert.Equal(t, "2024-05", d.Month)
	assert.True(t, d.TotalIncome.Equal(dec("2000")), "this month only: %s", d.TotalIncome)
	assert.True(t, d.TotalExpenses.Equal(dec("210")), "this month only: %s", d.TotalExpenses)
	assert.True(t, d.Net.Equal(dec("1790")))

	require.Len(t, d.Recent, DefaultRecentCount)
	assert.Equal(t, txns[2].ID, d.Recent[0].ID, "ties keep input order")
	assert.Equal(t, txns[5].ID, d.Recent[1].ID)
	assert.Equal(t, txns[1].ID, d.Recent[2].ID)
	assert.Equal(t, txns[0].ID, d.Recent[3].ID)
	assert.Equal(t, txns[3].ID, d.Recent[4].ID)

	require.Len(t, d.Budgets, 1)
	assert.True(t, d.Budgets[0].IsOverBudget)

	// Income categories appear in the breakdown too.
	var cats []model.Category
	for _, c := range d.Categories {
		cats = append(cats, c.Category)
	}
	assert.Equal(t, []model.Category{
		model.CategoryFood, model.CategoryTransport, model.CategoryBills, model.CategorySalary,
	}, cats)

	assert.Equal(t, snapshot, txns, "the snapshot is not reordered")
}

func TestDashboard_RecentCount(t *testing.T) {
	txns := []model.Transaction{
		expense("1", "2024-05-01", model.CategoryFood),
		expense("2", "2024-05-02", model.CategoryFood),
		expense("3", "2024-05-03", model.CategoryFood),
	}
	d := newEngine(txns, nil, WithRecentCount(2)).Dashboard()
	require.Len(t, d.Recent, 2)
	assert.True(t, d.Recent[0].Amount.Equal(dec("3")))

	d = newEngine(txns[:1], nil).Dashboard()
	assert.Len(t, d.Recent, 1)
}

func TestDashboard_Empty(t *testing.T) {
	d := newEngine(nil, nil).Dashboard()
	assert.True(t, d.TotalIncome.IsZero())
	assert.True(t, d.TotalExpenses.IsZero())
	assert.True(t, d.Net.IsZero())
	assert.Empty(t, d.Recent)
	assert.Empty(t, d.Categories)
	assert.Empty(t, d.Budgets)
}

func TestTransactions_Period(t *testing.T) {
	txns := []model.Transaction{
		expense("1", "2024-05-12", model.CategoryFood), // Sunday, start of this week
		expense("2", "2024-05-18", model.CategoryFood), // Saturday, end of this week
		expense("3", "2024-05-11", model.CategoryFood), // previous Saturday
		expense("4", "2024-04-30", model.CategoryFood),
	}
	e := newEngine(txns, nil)

	week := e.Transactions(period.ThisWeek)
	require.Len(t, week, 2)
	assert.Equal(t, txns[1].ID, week[0].ID)
	assert.Equal(t, txns[0].ID, week[1].ID)

	assert.Len(t, e.Transactions(period.ThisMonth), 3)
	assert.Len(t, e.Transactions(period.LastMonth), 1)
	assert.Len(t, e.Transactions(period.All), 4)
}
