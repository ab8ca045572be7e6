package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func civilDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func TestQuartersAfterSequence(t *testing.T) {
	events := QuartersAfter(date(2024, time.January, 1), 8)
	require.Len(t, events, 8)

	for i := 1; i < len(events); i++ {
		assert.True(t, events[i].Time.After(events[i-1].Time), "events must be chronological")
		assert.Equal(t, (events[i-1].Phase+1)%4, events[i].Phase, "phases must cycle by quarter")
	}

	assert.True(t, !events[0].Time.Before(date(2024, time.January, 1)), "first event must not precede the start")
}

// Expected civil dates are the published UTC dates of the phase events.
func TestFirstPhaseOnOrAfter(t *testing.T) {
	cases := []struct {
		start time.Time
		phase string
		day   string
	}{
		{date(2024, time.January, 1), "ThirdQuarter", "2024-01-04"},
		{date(2024, time.January, 1), "NewMoon", "2024-01-11"},
		{date(2024, time.January, 1), "FirstQuarter", "2024-01-18"},
		{date(2024, time.January, 1), "FullMoon", "2024-01-25"},
		{date(2024, time.March, 22), "FullMoon", "2024-03-25"},
		{date(2025, time.March, 22), "NewMoon", "2025-03-29"},
		{date(2025, time.March, 22), "FullMoon", "2025-04-13"},
		{date(2026, time.March, 22), "FullMoon", "2026-04-02"},
		{date(2025, time.July, 1), "FullMoon", "2025-07-10"},
	}

	var resolver Resolver
	for _, tc := range cases {
		t.Run(tc.phase+" from "+civilDay(tc.start), func(t *testing.T) {
			event, ok := resolver.FirstPhaseOnOrAfter(tc.start, tc.phase)
			require.True(t, ok)
			assert.Equal(t, tc.day, civilDay(event))
			assert.True(t, !event.Before(tc.start))
		})
	}
}

func TestFirstPhaseOnOrAfterUnknownPhase(t *testing.T) {
	var resolver Resolver
	_, ok := resolver.FirstPhaseOnOrAfter(date(2025, time.January, 1), "BlueMoon")
	assert.False(t, ok)
}

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase("FullMoon")
	assert.NoError(t, err)
	assert.Equal(t, FullMoon, p)
	assert.Equal(t, "FullMoon", p.String())

	_, err = ParsePhase("fullmoon")
	assert.Error(t, err, "phase names are exact")
}
