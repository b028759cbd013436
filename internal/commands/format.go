package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// signed renders an amount with "+" for income and "-" for expenses.
func signed(t model.Transaction) string {
	if t.Type == model.TypeIncome {
		return "+" + export.FormatCurrency(t.Amount)
	}
	return "-" + export.FormatCurrency(t.Amount)
}

// money renders a possibly negative total.
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + export.FormatCurrency(d)
	}
	return export.FormatCurrency(d)
}

func categoryLabel(reg *categories.Registry, c model.Category) string {
	if info, ok := reg.Lookup(c); ok {
		return info.Icon + " " + info.Name
	}
	return string(c)
}

func writeTransactions(w io.Writer, reg *categories.Registry, txns []model.Transaction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Description, categoryLabel(reg, t.Category), signed(t))
	}
	return tw.Flush()
}

// progressBar draws pct (clamped to 0..100) as a fixed-width bar.
func progressBar(pct int) string {
	const width = 20
	filled := min(max(pct, 0), 100) * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w %q", model.ErrInvalidAmount, s)
	}
	return d, nil
}

func parseDateFlag(s string, now time.Time) (model.Date, error) {
	switch strings.ToLower(s) {
	case "", "today":
		return model.DateOf(now), nil
	case "yesterday":
		return model.DateOf(now.AddDate(0, 0, -1)), nil
	}
	return model.ParseDate(s)
}
