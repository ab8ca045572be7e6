// internal/calendar/calendar.go

// Package calendar provides the date arithmetic used by the message rules:
// week-of-month and week-of-year computation, elapsed-year and elapsed-month
// counters, and ordinal suffix formatting.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekOfMonth names which occurrence of a weekday within a month (or within
// an interval) a rule refers to.
type WeekOfMonth int

const (
	First WeekOfMonth = iota
	Second
	Third
	Fourth
	Last
)

var weekOfMonthNames = []string{"First", "Second", "Third", "Fourth", "Last"}

func (w WeekOfMonth) String() string {
	if w < First || w > Last {
		return fmt.Sprintf("WeekOfMonth(%d)", int(w))
	}
	return weekOfMonthNames[w]
}

// ParseWeekOfMonth converts a configured week name to its WeekOfMonth value.
func ParseWeekOfMonth(name string) (WeekOfMonth, error) {
	for i, n := range weekOfMonthNames {
		if strings.EqualFold(name, n) {
			return WeekOfMonth(i), nil
		}
	}
	return First, fmt.Errorf("unknown week of month %q", name)
}

// ParseMonth converts a configured month name ("January" .. "December") to a
// time.Month.
func ParseMonth(name string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}

// ParseWeekday converts a configured weekday name ("Sunday" .. "Saturday")
// to a time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// DateOf strips the time of day and location from t, returning midnight UTC
// of t's civil date. Normalizing to UTC keeps day arithmetic exact across
// DST transitions.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same civil date, ignoring
// time of day and location.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// DaysBetween returns the number of civil days from a's date to b's date,
// negative when b is earlier.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / (24 * time.Hour))
}

// DaysInMonth returns the length of t's month.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// WeekOfYear returns the zero-based week number of t, with weeks starting on
// Sunday and a partial first week counting as week 0.
func WeekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (t.YearDay() - 1 + int(jan1.Weekday())) / 7
}

// MonthWeek returns which calendar week of its month t falls in, as the
// difference between t's week of year and the week of year of the first of
// the month. A fifth week comes out as Last.
func MonthWeek(t time.Time) WeekOfMonth {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return WeekOfMonth(WeekOfYear(t) - WeekOfYear(first))
}

// YearsSince returns the number of full years elapsed from start to now. The
// current year only counts once the anniversary has been reached.
func YearsSince(start, now time.Time) int {
	years := now.Year() - start.Year() - 1
	if now.Month() > start.Month() || (now.Month() == start.Month() && now.Day() >= start.Day()) {
		years++
	}
	return years
}

// MonthsSince returns the number of month boundaries crossed from start to
// now. The day of month is deliberately ignored, so the count ticks over on
// the first of the month rather than on the monthly anniversary.
func MonthsSince(start, now time.Time) int {
	return (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
}

// Ordinal formats n with its English ordinal suffix: 1st, 2nd, 3rd, 4th,
// 11th, 42nd, 101st.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
