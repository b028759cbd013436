// Package period computes calendar ranges and month keys.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMonth returns a month key like "2024-05".
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonth parses "2024-05" into year and month. The key must be in
// canonical form so that FormatMonth(ParseMonth(k)) == k.
func ParseMonth(key string) (year int, month time.Month, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid month key %q: expected YYYY-MM", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %d out of range", key, m)
	}
	if FormatMonth(year, time.Month(m)) != key {
		return 0, 0, fmt.Errorf("invalid month key %q: not in canonical form", key)
	}

	return year, time.Month(m), nil
}

// MonthOf returns the key of the month containing t, in t's location.
func MonthOf(t time.Time) string {
	return FormatMonth(t.Year(), t.Month())
}

// CurrentMonth returns the key of the month containing now in local time.
func CurrentMonth(now time.Time) string {
	return MonthOf(now.In(time.Local))
}

// AddMonths shifts a month key by n months (negative n goes back).
func AddMonths(key string, n int) (string, error) {
	year, month, err := ParseMonth(key)
	if err != nil {
		return "", err
	}
	return MonthOf(time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)), nil
}

// TrailingMonths returns the n month keys ending at the month of now, oldest first.
func TrailingMonths(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	local := now.In(time.Local)
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		first := time.Date(local.Year(), local.Month()-time.Month(i), 1, 0, 0, 0, 0, time.Local)
		keys = append(keys, MonthOf(first))
	}
	return keys
}

// MonthLabel renders a month key for display, e.g. "May 2024".
func MonthLabel(key string) (string, error) {
	year, month, err := ParseMonth(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d", month, year), nil
}
