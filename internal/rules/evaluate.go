// internal/rules/evaluate.go

package rules

import (
	"time"

	"github.com/rs/zerolog/log"

	"herald/internal/calendar"
)

// PhaseResolver locates the first occurrence of a named lunar phase at or
// after a start instant. A miss (unknown name, or phase outside the bounded
// scan) reports ok == false; it is never an error.
type PhaseResolver interface {
	FirstPhaseOnOrAfter(start time.Time, phaseName string) (time.Time, bool)
}

// Evaluator decides whether a rule's predicate matches an instant.
type Evaluator struct {
	resolver PhaseResolver
}

func NewEvaluator(resolver PhaseResolver) *Evaluator {
	return &Evaluator{resolver: resolver}
}

// Matches evaluates r against now. The predicate categories are tried in
// fixed order and the first applicable one decides: catch-all, exact date,
// date range (optionally refined by After), then Nth-weekday-of-month. A
// rule that fits none of the categories never matches.
func (e *Evaluator) Matches(r *Rule, now time.Time) bool {
	if r.IsDefault() {
		return true
	}

	if r.Date != nil {
		return calendar.SameDate(now, *r.Date)
	}

	if r.DateStart != nil && r.DateEnd != nil {
		d := calendar.DateOf(now)
		inRange := !d.Before(calendar.DateOf(*r.DateStart)) && !d.After(calendar.DateOf(*r.DateEnd))
		if inRange && r.After != nil {
			return e.matchesAfter(r, now)
		}
		return inRange
	}

	if r.Month != nil && r.DayOfWeek != nil && r.WeekOfMonth != nil {
		return now.Month() == *r.Month &&
			now.Weekday() == *r.DayOfWeek &&
			weekOfMonthMatches(*r.WeekOfMonth, now)
	}

	return false
}

// matchesAfter evaluates the compound "after astronomical event" predicate.
// The caller has already established that now is inside the rule's range.
func (e *Evaluator) matchesAfter(r *Rule, now time.Time) bool {
	switch r.After.Kind {
	case AfterMoonPhase:
		event, ok := e.resolver.FirstPhaseOnOrAfter(*r.DateStart, r.After.Phase)
		if !ok {
			log.Warn().
				Str("phase", r.After.Phase).
				Time("start", *r.DateStart).
				Time("end", *r.DateEnd).
				Msg("Phase not found when scanning moon phases in interval")
			return false
		}

		if !now.After(event) {
			return false
		}
		if now.Weekday() != r.After.DayOfWeek {
			return false
		}

		// When the anchor event itself lands on the target weekday,
		// counting starts from the following week.
		searchFrom := calendar.DateOf(event)
		if event.Weekday() == r.After.DayOfWeek {
			searchFrom = searchFrom.AddDate(0, 0, 7)
		}

		return weekOfIntervalMatches(r.After.WeekOfInterval, calendar.DaysBetween(searchFrom, now))
	default:
		return false
	}
}

// weekOfMonthMatches implements the month-based week predicate. Last means
// "within the final seven days of the month"; the numbered weeks are fixed
// seven-day buckets counted by day of month, not calendar-aligned weeks.
// The two are intentionally different computations.
func weekOfMonthMatches(w calendar.WeekOfMonth, now time.Time) bool {
	if w == calendar.Last {
		return calendar.DaysInMonth(now)-now.Day() <= 7
	}
	return now.Day()/7 == int(w)
}

// weekOfIntervalMatches counts whole weeks elapsed since the search anchor.
// Last is only defined for the month predicate and never matches here.
func weekOfIntervalMatches(w calendar.WeekOfMonth, days int) bool {
	return w != calendar.Last && days/7 == int(w)
}
