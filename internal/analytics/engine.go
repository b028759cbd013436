package analytics

import (
	"time"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/log"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
)

// Defaults for the dashboard and the monthly series.
const (
	DefaultSeriesMonths = 12
	DefaultRecentCount  = 5
)

// TransactionSource supplies a fresh snapshot of every transaction.
type TransactionSource interface {
	All() []model.Transaction
}

// BudgetSource supplies the budgets of one month.
type BudgetSource interface {
	ByMonth(month string) []model.Budget
}

// Engine recomputes every view from a fresh snapshot on each call.
type Engine struct {
	txns         TransactionSource
	budgets      BudgetSource
	registry     *categories.Registry
	now          func() time.Time
	seriesMonths int
	recentCount  int
	logger       *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRegistry sets the category registry that orders breakdowns.
func WithRegistry(r *categories.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithSeriesMonths sets the series length reported by SeriesMonths.
func WithSeriesMonths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.seriesMonths = n
		}
	}
}

// WithRecentCount sets how many recent transactions the dashboard lists.
func WithRecentCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.recentCount = n
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an Engine reading from txns and budgets.
func NewEngine(txns TransactionSource, budgets BudgetSource, opts ...Option) *Engine {
	e := &Engine{
		txns:         txns,
		budgets:      budgets,
		registry:     categories.Default(),
		now:          time.Now,
		seriesMonths: DefaultSeriesMonths,
		recentCount:  DefaultRecentCount,
		logger:       log.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentMonth returns the month key of the engine's today.
func (e *Engine) CurrentMonth() string {
	return period.CurrentMonth(e.now())
}

// SeriesMonths is the configured length of the monthly series.
func (e *Engine) SeriesMonths() int {
	return e.seriesMonths
}

// MonthlyExpenses returns the trailing n months ending at the current month,
// oldest first. Every transaction in a listed month is added, whatever its
// type. n <= 0 gives an empty series.
func (e *Engine) MonthlyExpenses(n int) []model.MonthlyExpense {
	months := period.TrailingMonths(e.now(), n)
	return MonthlySeries(e.txns.All(), months)
}

// CategoryExpenses returns the per-category breakdown of the period.
func (e *Engine) CategoryExpenses(p period.Period) []model.CategoryExpense {
	r := period.RangeFor(p, e.now())
	return CategoryBreakdown(e.txns.All(), r, e.registry.All())
}

// BudgetStatuses returns one status per budget set for month.
func (e *Engine) BudgetStatuses(month string) []model.BudgetStatus {
	return StatusesFor(e.budgets.ByMonth(month), e.txns.All())
}

// Transactions returns the transactions in the period, latest date first.
func (e *Engine) Transactions(p period.Period) []model.Transaction {
	r := period.RangeFor(p, e.now())
	return NewestFirst(InRange(e.txns.All(), r))
}

// Dashboard assembles the current-month overview.
func (e *Engine) Dashboard() model.DashboardStats {
	now := e.now()
	month := period.CurrentMonth(now)
	all := e.txns.All()

	totals := ComputeTotals(InMonth(all, month))
	stats := model.DashboardStats{
		Month:         month,
		TotalIncome:   totals.Income,
		TotalExpenses: totals.Expenses,
		Net:           totals.Net,
		Categories:    CategoryBreakdown(all, period.RangeFor(period.ThisMonth, now), e.registry.All()),
		Recent:        Recent(all, e.recentCount),
		Budgets:       StatusesFor(e.budgets.ByMonth(month), all),
	}
	e.logger.Debug("dashboard computed", "month", month, "transactions", len(all), "budgets", len(stats.Budgets))
	return stats
}
