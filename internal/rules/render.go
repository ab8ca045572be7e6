// internal/rules/render.go

package rules

import (
	"strings"
	"time"

	"herald/internal/calendar"
)

// Render applies r's token replacements to its template, left to right. The
// counter kinds need the rule's range start to anchor the elapsed count and
// fall back to the literal value when it is absent; tokens with no
// replacement entry are left verbatim.
func Render(r *Rule, now time.Time) string {
	out := r.Template
	for _, rep := range r.Replacements {
		value := rep.Value
		if r.DateStart != nil {
			switch rep.Kind {
			case ReplaceYearsSinceStart:
				value = calendar.Ordinal(calendar.YearsSince(*r.DateStart, now))
			case ReplaceMonthsSinceStart:
				value = calendar.Ordinal(calendar.MonthsSince(*r.DateStart, now))
			}
		}
		out = strings.ReplaceAll(out, rep.Token, value)
	}
	return out
}
