package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"12.5", "$12.50"},
		{"1234.56", "$1,234.56"},
		{"-1234.56", "$1,234.56"},
		{"1000000", "$1,000,000.00"},
		{"0.005", "$0.01"},
		{"99.994", "$99.99"},
		{"999.999", "$1,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "May 3, 2024", FormatDate(model.NewDate(2024, time.May, 3)))
	assert.Equal(t, "Dec 31, 1999", FormatDate(model.NewDate(1999, time.December, 31)))
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.May, 3, 23, 10, 0, 0, time.Local)
	assert.Equal(t, "transactions-2024-05-03.csv", FileName(now))
}

func TestTransactionsString(t *testing.T) {
	txns := []model.Transaction{
		{
			Amount: decimal.RequireFromString("1234.56"), Description: `Rent "May"`,
			Date: model.NewDate(2024, time.May, 1), Category: model.CategoryBills, Type: model.TypeExpense,
		},
		{
			Amount: decimal.RequireFromString("3000"), Description: "Pay, May",
			Date: model.NewDate(2024, time.May, 2), Category: model.CategorySalary, Type: model.TypeIncome,
		},
	}

	got := TransactionsString(txns)
	want := strings.Join([]string{
		`"Date","Description","Category","Amount"`,
		`"May 1, 2024","Rent ""May""","Bills","$1,234.56"`,
		`"May 2, 2024","Pay, May","Salary","$3,000.00"`,
	}, "\n")
	assert.Equal(t, want, got)

	// The output is valid CSV.
	records, err := csv.NewReader(strings.NewReader(got)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Rent "May"`, records[1][1])
	assert.Equal(t, "Pay, May", records[2][1])
}

func TestTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Transactions(&buf, nil))
	assert.Equal(t, `"Date","Description","Category","Amount"`, buf.String())
}

func TestRow_UnknownCategory(t *testing.T) {
	row := Row(model.Transaction{
		Amount: decimal.NewFromInt(1), Description: "x",
		Date: model.NewDate(2024, time.January, 9), Category: "pets",
	}, nil)
	assert.Equal(t, []string{"Jan 9, 2024", "x", "pets", "$1.00"}, row)
}
