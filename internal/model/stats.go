package model

import "github.com/shopspring/decimal"

// MonthlyExpense is the summed amount for one month of a series.
type MonthlyExpense struct {
	Month  string
	Amount decimal.Decimal
}

// CategoryExpense is one row of a category breakdown.
type CategoryExpense struct {
	Category   Category
	Amount     decimal.Decimal
	Percentage int // of the period total
}

// BudgetStatus compares a budget with the actual spend in its category and month.
type BudgetStatus struct {
	Category     Category
	Budgeted     decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal // negative when over budget
	Percentage   int
	IsOverBudget bool
}

// Totals sums a list of transactions by direction.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// BudgetSummary aggregates a month of budget statuses.
type BudgetSummary struct {
	Count      int
	OverBudget int
	Budgeted   decimal.Decimal
	Spent      decimal.Decimal
	Percentage int // Spent of Budgeted, 0 when nothing is budgeted
}

// DashboardStats is the consolidated current-month view.
type DashboardStats struct {
	Month         string
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Net           decimal.Decimal
	Categories    []CategoryExpense
	Recent        []Transaction
	Budgets       []BudgetStatus
}
