package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.January, "2024-01"},
		{2024, time.December, "2024-12"},
		{999, time.May, "0999-05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonth(tt.year, tt.month))
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input     string
		wantYear  int
		wantMonth time.Month
	}{
		{"2024-01", 2024, time.January},
		{"2024-12", 2024, time.December},
		{"2000-02", 2000, time.February},
	}
	for _, tt := range tests {
		year, month, err := ParseMonth(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.input, FormatMonth(year, month), "round trip")
	}
}

func TestParseMonth_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"2024",
		"2024-1",
		"2024-13",
		"2024-00",
		"24-05",
		"xxxx-05",
		"2024-05-01",
		"+024-05",
		"2024-+5",
	}
	for _, input := range badInputs {
		_, _, err := ParseMonth(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2024-05", 1, "2024-06"},
		{"2024-12", 1, "2025-01"},
		{"2024-01", -1, "2023-12"},
		{"2024-05", -17, "2022-12"},
		{"2024-05", 0, "2024-05"},
	}
	for _, tt := range tests {
		got, err := AddMonths(tt.key, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %+d", tt.key, tt.n)
	}

	_, err := AddMonths("bad", 1)
	assert.Error(t, err)
}

func TestTrailingMonths(t *testing.T) {
	ref := time.Date(2024, time.May, 31, 12, 0, 0, 0, time.Local)
	assert.Equal(t, []string{"2024-03", "2024-04", "2024-05"}, TrailingMonths(ref, 3))

	ref = time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, TrailingMonths(ref, 4))

	assert.Equal(t, []string{"2024-02"}, TrailingMonths(ref, 1))
	assert.Nil(t, TrailingMonths(ref, 0))
}

func TestCurrentMonth(t *testing.T) {
	ref := time.Date(2024, time.May, 15, 9, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-05", CurrentMonth(ref))
}

func TestMonthLabel(t *testing.T) {
	got, err := MonthLabel("2024-05")
	require.NoError(t, err)
	assert.Equal(t, "May 2024", got)

	_, err = MonthLabel("May")
	assert.Error(t, err)
}
