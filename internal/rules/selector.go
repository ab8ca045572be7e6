// internal/rules/selector.go

package rules

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoMatchingRule reports that no rule in the applicable pools matched the
// queried date. A correctly configured rule set always carries a catch-all
// default, so this indicates misconfiguration; the caller should log and
// skip the cycle rather than retry.
var ErrNoMatchingRule = errors.New("no matching message rule")

// Selector picks the message(s) to post for an instant from the global rule
// pools plus a destination's own pool. The pools are immutable snapshots
// built at configuration load; every query builds its merged candidate
// lists fresh, so a Selector is safe for concurrent readers.
type Selector struct {
	eval      *Evaluator
	defaults  []Rule
	overrides []Rule
}

func NewSelector(eval *Evaluator, defaults, overrides []Rule) *Selector {
	return &Selector{eval: eval, defaults: defaults, overrides: overrides}
}

// FindMessage implements the first-match policy with override precedence.
// Override candidates (global overrides plus the destination pool) are
// consulted first and may produce nothing; normal candidates (global
// defaults plus the destination pool) must then produce a match, otherwise
// ErrNoMatchingRule is returned.
func (s *Selector) FindMessage(destination []Rule, now time.Time) (string, error) {
	if r, ok := s.firstMatch(concat(s.overrides, destination), now); ok {
		return Render(r, now), nil
	}
	if r, ok := s.firstMatch(concat(s.defaults, destination), now); ok {
		return Render(r, now), nil
	}
	log.Error().Time("date", now).Msg("No matching message rule found for date")
	return "", fmt.Errorf("%w for %s", ErrNoMatchingRule, now.Format("2006-01-02"))
}

// CollectMessages implements the collect-all policy: every matching rule
// across all pools is rendered, in pool concatenation order (global
// overrides, global defaults, destination). An empty result is still
// ErrNoMatchingRule, since callers depend on always having content to post.
func (s *Selector) CollectMessages(destination []Rule, now time.Time) ([]string, error) {
	pool := concat(concat(s.overrides, s.defaults), destination)
	var messages []string
	for i := range pool {
		if s.eval.Matches(&pool[i], now) {
			messages = append(messages, Render(&pool[i], now))
		}
	}
	if len(messages) == 0 {
		log.Error().Time("date", now).Msg("No matching message rule found for date")
		return nil, fmt.Errorf("%w for %s", ErrNoMatchingRule, now.Format("2006-01-02"))
	}
	return messages, nil
}

func (s *Selector) firstMatch(pool []Rule, now time.Time) (*Rule, bool) {
	ordered := orderBySpecificity(pool)
	for i := range ordered {
		if s.eval.Matches(&ordered[i], now) {
			return &ordered[i], true
		}
	}
	return nil, false
}

// unsetPart is the sentinel each unset month/week/weekday field contributes
// to a rule's specificity sum, pushing fully generic rules to the end.
const unsetPart = 1 << 15

// orderBySpecificity sorts a candidate list so that the most specific rules
// are evaluated first: exact-date rules by date (absent last), then range
// rules by start (absent last), then by the summed numeric values of the
// month/week/weekday fields.
func orderBySpecificity(pool []Rule) []Rule {
	ordered := make([]Rule, len(pool))
	copy(ordered, pool)

	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := dateKey(ordered[i].Date), dateKey(ordered[j].Date)
		if di != dj {
			return di < dj
		}
		si, sj := dateKey(ordered[i].DateStart), dateKey(ordered[j].DateStart)
		if si != sj {
			return si < sj
		}
		return patternKey(&ordered[i]) < patternKey(&ordered[j])
	})

	return ordered
}

func dateKey(t *time.Time) int64 {
	if t == nil {
		return math.MaxInt64
	}
	return t.Unix()
}

func patternKey(r *Rule) int {
	key := 0
	if r.Month != nil {
		key += int(*r.Month)
	} else {
		key += unsetPart
	}
	if r.WeekOfMonth != nil {
		key += int(*r.WeekOfMonth)
	} else {
		key += unsetPart
	}
	if r.DayOfWeek != nil {
		key += int(*r.DayOfWeek)
	} else {
		key += unsetPart
	}
	return key
}

func concat(a, b []Rule) []Rule {
	merged := make([]Rule, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged
}
