package period

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"github.com/cleared-dev/tally/internal/model"
)

// Period names a calendar window relative to today.
type Period string

const (
	ThisWeek  Period = "this-week"
	ThisMonth Period = "this-month"
	LastMonth Period = "last-month"
	All       Period = "all"
)

// Periods lists every named period, in menu order.
var Periods = []Period{All, ThisWeek, ThisMonth, LastMonth}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want one of this-week, this-month, last-month, all)", s)
}

// Range is an inclusive pair of instants.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within r, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsDate reports whether local midnight of d lies within r.
func (r Range) ContainsDate(d model.Date) bool {
	return r.Contains(d.Time(time.Local))
}

// Weeks always start on Sunday.
var calendar = &now.Config{WeekStartDay: time.Sunday}

// Bounds of the "all" period, wide enough for any realistic date.
var (
	allStart = func() time.Time { return time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local) }
	allEnd   = func() time.Time { return time.Date(2100, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local) }
)

// RangeFor returns the window p covers as of ref, in local time. Unknown
// periods are treated as All.
func RangeFor(p Period, ref time.Time) Range {
	n := calendar.With(ref.In(time.Local))

	switch p {
	case ThisWeek:
		return Range{Start: n.BeginningOfWeek(), End: n.EndOfWeek()}
	case ThisMonth:
		return Range{Start: n.BeginningOfMonth(), End: n.EndOfMonth()}
	case LastMonth:
		prev := calendar.With(n.BeginningOfMonth().AddDate(0, 0, -1))
		return Range{Start: prev.BeginningOfMonth(), End: prev.EndOfMonth()}
	default:
		return Range{Start: allStart(), End: allEnd()}
	}
}
