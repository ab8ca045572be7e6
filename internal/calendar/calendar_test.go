package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		0:    "0th",
		1:    "1st",
		2:    "2nd",
		3:    "3rd",
		4:    "4th",
		11:   "11th",
		12:   "12th",
		13:   "13th",
		21:   "21st",
		42:   "42nd",
		69:   "69th",
		101:  "101st",
		111:  "111th",
		1003: "1003rd",
	}
	for n, expected := range cases {
		assert.Equal(t, expected, Ordinal(n), "Ordinal(%d)", n)
	}
}

func TestYearsSince(t *testing.T) {
	start := date(2020, time.March, 10)

	// Anniversary reached this year.
	assert.Equal(t, 5, YearsSince(start, date(2025, time.March, 10)))
	assert.Equal(t, 5, YearsSince(start, date(2025, time.April, 1)))
	// Anniversary not yet reached this year.
	assert.Equal(t, 4, YearsSince(start, date(2025, time.March, 9)))
	assert.Equal(t, 4, YearsSince(start, date(2025, time.February, 1)))

	// Exact multiples of a year for a range of counts.
	for n := 0; n <= 10; n++ {
		now := date(2015+n, time.June, 15)
		assert.Equal(t, n, YearsSince(date(2015, time.June, 15), now), "N=%d", n)
	}
}

func TestMonthsSince(t *testing.T) {
	start := date(2024, time.November, 15)

	assert.Equal(t, 0, MonthsSince(start, date(2024, time.November, 30)))
	assert.Equal(t, 2, MonthsSince(start, date(2025, time.January, 1)))
	// Day of month is ignored: the count ticks on the month boundary even
	// though a full month has not elapsed.
	assert.Equal(t, 1, MonthsSince(start, date(2024, time.December, 1)))
	assert.Equal(t, 14, MonthsSince(start, date(2026, time.January, 20)))
}

func TestWeekOfYear(t *testing.T) {
	// 2025-01-01 is a Wednesday, so Jan 1-4 are the partial week 0 and the
	// first Sunday (Jan 5) opens week 1.
	assert.Equal(t, 0, WeekOfYear(date(2025, time.January, 1)))
	assert.Equal(t, 0, WeekOfYear(date(2025, time.January, 4)))
	assert.Equal(t, 1, WeekOfYear(date(2025, time.January, 5)))
	assert.Equal(t, 1, WeekOfYear(date(2025, time.January, 11)))
}

func TestMonthWeek(t *testing.T) {
	assert.Equal(t, First, MonthWeek(date(2025, time.January, 1)))
	assert.Equal(t, Second, MonthWeek(date(2025, time.January, 5)))
	assert.Equal(t, Last, MonthWeek(date(2025, time.January, 31)))

	// February 2025 starts on a Saturday: the 1st sits alone in week 0.
	assert.Equal(t, First, MonthWeek(date(2025, time.February, 1)))
	assert.Equal(t, Second, MonthWeek(date(2025, time.February, 2)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(date(2024, time.February, 10)))
	assert.Equal(t, 28, DaysInMonth(date(2025, time.February, 10)))
	assert.Equal(t, 31, DaysInMonth(date(2025, time.January, 1)))
	assert.Equal(t, 30, DaysInMonth(date(2025, time.April, 30)))
}

func TestDateHelpers(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	evening := time.Date(2025, time.March, 10, 23, 45, 0, 0, loc)

	assert.True(t, SameDate(evening, date(2025, time.March, 10)))
	assert.False(t, SameDate(evening, date(2025, time.March, 11)))

	assert.Equal(t, 7, DaysBetween(date(2025, time.March, 3), date(2025, time.March, 10)))
	assert.Equal(t, -7, DaysBetween(date(2025, time.March, 10), date(2025, time.March, 3)))
	assert.Equal(t, 0, DaysBetween(evening, date(2025, time.March, 10)))
}

func TestParsers(t *testing.T) {
	m, err := ParseMonth("January")
	assert.NoError(t, err)
	assert.Equal(t, time.January, m)

	d, err := ParseWeekday("monday")
	assert.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	w, err := ParseWeekOfMonth("Last")
	assert.NoError(t, err)
	assert.Equal(t, Last, w)

	_, err = ParseMonth("Januember")
	assert.Error(t, err)
	_, err = ParseWeekday("Funday")
	assert.Error(t, err)
	_, err = ParseWeekOfMonth("Fifth")
	assert.Error(t, err)
}
