package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/model"
)

func readChase(t *testing.T) []Row {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "chase_checking.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := (&ChaseParser{}).Parse(f)
	require.NoError(t, err)
	return rows
}

func TestChaseParser_Parse(t *testing.T) {
	rows := readChase(t)
	require.Len(t, rows, 6)

	assert.Equal(t, "SPOTIFY USA", rows[0].Description)
	assert.Equal(t, "-11.99", rows[0].Amount.StringFixed(2))
	assert.Equal(t, model.NewDate(2025, time.January, 3), rows[0].Date)
	assert.Empty(t, rows[0].Category)

	assert.Equal(t, "ACME CORP PAYROLL", rows[2].Description)
	assert.True(t, rows[2].Amount.IsPositive())

	assert.Equal(t, "SHELL OIL 5551, SPRINGFIELD", rows[3].Description, "quoted comma")
	assert.Equal(t, model.NewDate(2025, time.January, 22), rows[5].Date)
}

func TestChaseParser_EmptyFile(t *testing.T) {
	rows, err := (&ChaseParser{}).Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestChaseParser_Errors(t *testing.T) {
	header := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad date", "DEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n", "parsing date"},
		{"bad amount", "DEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n", "parsing amount"},
		{"wrong field count", "DEBIT,01/03/2025,desc\n", "reading chase CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&ChaseParser{}).Parse(strings.NewReader(header + tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTallyParser_ReadsExport(t *testing.T) {
	txns := []model.Transaction{
		{Amount: decimal.RequireFromString("1234.56"), Description: `Rent "May"`, Date: model.NewDate(2024, time.May, 1), Category: model.CategoryBills, Type: model.TypeExpense},
		{Amount: decimal.RequireFromString("3000"), Description: "Paycheck", Date: model.NewDate(2024, time.May, 2), Category: model.CategorySalary, Type: model.TypeIncome},
		{Amount: decimal.RequireFromString("7.5"), Description: "Misc", Date: model.NewDate(2024, time.May, 3), Category: model.CategoryOthers, Type: model.TypeExpense},
	}

	rows, err := (&TallyParser{}).Parse(strings.NewReader(export.TransactionsString(txns)))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, `Rent "May"`, rows[0].Description)
	assert.Equal(t, model.CategoryBills, rows[0].Category)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("-1234.56")))
	assert.Equal(t, model.NewDate(2024, time.May, 1), rows[0].Date)

	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("3000")), "income category reads as income")
	assert.True(t, rows[2].Amount.IsNegative(), "shared category reads as expense")

	drafts := Drafts(rows, model.CategoryOthers)
	require.Len(t, drafts, 3)
	for i, d := range drafts {
		assert.Equal(t, txns[i].Draft().Type, d.Type)
		assert.True(t, txns[i].Amount.Equal(d.Amount))
		assert.Equal(t, txns[i].Category, d.Category)
	}
}

func TestTallyParser_UnknownCategory(t *testing.T) {
	body := `"Date","Description","Category","Amount"` + "\n" + `"May 1, 2024","x","Pets","$1.00"`
	_, err := (&TallyParser{}).Parse(strings.NewReader(body))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestDrafts(t *testing.T) {
	rows := readChase(t)
	drafts := Drafts(append(rows, Row{Description: "zero", Amount: decimal.Zero}), model.CategoryOthers)
	require.Len(t, drafts, 6, "zero rows dropped")

	assert.Equal(t, model.TypeExpense, drafts[0].Type)
	assert.Equal(t, "11.99", drafts[0].Amount.StringFixed(2), "amounts are positive")
	assert.Equal(t, model.CategoryOthers, drafts[0].Category)
	assert.Equal(t, model.TypeIncome, drafts[2].Type)

	cats := categoriesFake{}
	for _, d := range drafts {
		assert.NoError(t, d.Validate(cats))
	}
}

type categoriesFake struct{}

func (categoriesFake) Lookup(c model.Category) (model.CategoryInfo, bool) {
	return model.CategoryInfo{ID: c, Applicability: model.AppliesToBoth}, true
}

func TestDedupe(t *testing.T) {
	rows := readChase(t)
	drafts := Drafts(rows, model.CategoryOthers)

	existing := []model.Transaction{{
		Amount: drafts[1].Amount, Description: "whole foods market #123 ",
		Date: drafts[1].Date, Category: model.CategoryFood, Type: model.TypeExpense,
	}}

	fresh, skipped := Dedupe(append(drafts, drafts[0]), existing)
	assert.Equal(t, 2, skipped, "one already stored, one repeated in the batch")
	assert.Len(t, fresh, 5)
	for _, d := range fresh {
		assert.NotEqual(t, "WHOLE FOODS MARKET #123", d.Description)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))

	r.Register(&ChaseParser{})
	require.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("CHASE"))
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })

	assert.Equal(t, []string{"chase", "tally"}, DefaultRegistry().Formats())
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, Dir)
	require.NoError(t, os.MkdirAll(filepath.Join(importDir, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "processed", "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bank.CSV", files[0].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_NoImportDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, Dir)
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "bank.csv"))

	_, err := os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(dir, "import", "processed", "bank.csv"))
}
