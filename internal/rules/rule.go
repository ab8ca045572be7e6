// internal/rules/rule.go

package rules

import (
	"time"

	"herald/internal/calendar"
)

// Rule is one candidate message: a date predicate plus the template to post
// when the predicate matches. All predicate fields are optional; a rule with
// none set is the catch-all default. The configuration loader guarantees the
// shape invariants (range bounds both present or both absent, the
// month/weekday/week triple all present or all absent, After only alongside
// a range) before a Rule reaches the evaluator.
type Rule struct {
	Template     string
	Date         *time.Time
	DateStart    *time.Time
	DateEnd      *time.Time
	Month        *time.Month
	DayOfWeek    *time.Weekday
	WeekOfMonth  *calendar.WeekOfMonth
	After        *After
	Replacements []Replacement
}

// After refines a date-range rule with an astronomical anchor: the rule
// matches the WeekOfInterval-th occurrence of DayOfWeek after the first
// event of the named phase at or after the range start.
type After struct {
	Kind           string
	Phase          string
	DayOfWeek      time.Weekday
	WeekOfInterval calendar.WeekOfMonth
}

// After kinds.
const (
	AfterMoonPhase = "MoonPhase"
)

// Replacement is one template token substitution, applied in order after a
// rule is selected.
type Replacement struct {
	Token string
	Kind  string
	Value string
}

// Replacement kinds.
const (
	ReplaceSubstitute       = "Substitute"
	ReplaceYearsSinceStart  = "YearsSinceStart"
	ReplaceMonthsSinceStart = "MonthsSinceStart"
)

// IsDefault reports whether the rule has no predicate fields set and so
// matches every date.
func (r *Rule) IsDefault() bool {
	return r.Date == nil && r.DateStart == nil && r.DateEnd == nil &&
		r.Month == nil && r.DayOfWeek == nil && r.WeekOfMonth == nil &&
		r.After == nil
}
