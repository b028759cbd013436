// Package export renders transactions for spreadsheets.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/model"
)

// Header is the first row of an export.
var Header = []string{"Date", "Description", "Category", "Amount"}

// DisplayDateFormat is the date layout used in exported rows.
const DisplayDateFormat = "Jan 2, 2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders the absolute value of amount as US dollars with
// thousands grouping, e.g. "$1,234.56".
func FormatCurrency(amount decimal.Decimal) string {
	abs := amount.Abs().Round(2)
	whole := abs.Truncate(0)
	cents := abs.Sub(whole).Shift(2).IntPart()
	return printer.Sprintf("$%d.%02d", whole.IntPart(), cents)
}

// FormatDate renders d as "Jan 2, 2006".
func FormatDate(d model.Date) string {
	return d.Time(time.UTC).Format(DisplayDateFormat)
}

// FileName returns the suggested export file name for the day of now.
func FileName(now time.Time) string {
	return "transactions-" + now.Format(model.DateFormat) + ".csv"
}

// Row returns the export cells of t, unquoted. A nil reg means the default
// registry.
func Row(t model.Transaction, reg *categories.Registry) []string {
	if reg == nil {
		reg = categories.Default()
	}
	name := string(t.Category)
	if info, ok := reg.Lookup(t.Category); ok {
		name = info.Name
	}
	return []string{FormatDate(t.Date), t.Description, name, FormatCurrency(t.Amount)}
}

// Transactions writes the header and one row per transaction, in input order.
// Every cell is quoted and rows are separated by "\n" with no trailing newline.
func Transactions(w io.Writer, txns []model.Transaction) error {
	return TransactionsWith(w, txns, categories.Default())
}

// TransactionsWith is Transactions with an explicit category registry.
func TransactionsWith(w io.Writer, txns []model.Transaction, reg *categories.Registry) error {
	bw := bufio.NewWriter(w)

	if err := writeRow(bw, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
		if err := writeRow(bw, Row(t, reg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return bw.Flush()
}

// TransactionsString returns the export as a string.
func TransactionsString(txns []model.Transaction) string {
	var sb strings.Builder
	_ = Transactions(&sb, txns) // strings.Builder never fails
	return sb.String()
}

func writeRow(w *bufio.Writer, cells []string) error {
	for i, c := range cells {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(c)); err != nil {
			return err
		}
	}
	return nil
}

// quote wraps s in double quotes, doubling any embedded quote.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
