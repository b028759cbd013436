package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
	}{
		{"2024-05-03", NewDate(2024, time.May, 3)},
		{"2024-12-31", NewDate(2024, time.December, 31)},
		{"2024-05-03T00:00:00.000Z", NewDate(2024, time.May, 3)},
		{"2024-05-31T23:30:00-05:00", NewDate(2024, time.May, 31)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}

	for _, bad := range []string{"", "2024/05/03", "03-05-2024", "2024-02-30"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestDateMonthKeyAndString(t *testing.T) {
	d := NewDate(2024, time.March, 7)
	assert.Equal(t, "2024-03", d.MonthKey())
	assert.Equal(t, "2024-03-07", d.String())
}

func TestDateBefore(t *testing.T) {
	a := NewDate(2024, time.March, 7)
	assert.True(t, a.Before(NewDate(2024, time.March, 8)))
	assert.True(t, a.Before(NewDate(2024, time.April, 1)))
	assert.True(t, a.Before(NewDate(2025, time.January, 1)))
	assert.False(t, a.Before(a))
	assert.False(t, a.Before(NewDate(2023, time.December, 31)))
}

func TestDateTime(t *testing.T) {
	got := NewDate(2024, time.May, 3).Time(time.UTC)
	assert.Equal(t, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.May, 3)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-05-03"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, d, got)

	assert.Error(t, json.Unmarshal([]byte(`20240503`), &got))
}

func TestTransactionPatchApply(t *testing.T) {
	orig := Transaction{
		ID:          "abc",
		Amount:      decimal.NewFromInt(10),
		Description: "Coffee",
		Date:        NewDate(2024, time.May, 1),
		Category:    CategoryFood,
		Type:        TypeExpense,
	}

	amount := decimal.NewFromInt(25)
	desc := "Dinner"
	got := TransactionPatch{Amount: &amount, Description: &desc}.Apply(orig)

	assert.Equal(t, "abc", got.ID)
	assert.True(t, got.Amount.Equal(amount))
	assert.Equal(t, "Dinner", got.Description)
	assert.Equal(t, orig.Date, got.Date)
	assert.Equal(t, orig.Category, got.Category)
	assert.Equal(t, orig.Type, got.Type)
	assert.Equal(t, "Coffee", orig.Description, "original must not change")
}

func TestBudgetSameSlot(t *testing.T) {
	a := Budget{Category: CategoryFood, Month: "2024-05"}
	assert.True(t, a.SameSlot(Budget{Category: CategoryFood, Month: "2024-05", ID: "other"}))
	assert.False(t, a.SameSlot(Budget{Category: CategoryFood, Month: "2024-06"}))
	assert.False(t, a.SameSlot(Budget{Category: CategoryBills, Month: "2024-05"}))
}
