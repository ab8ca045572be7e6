// internal/astro/moonphase.go

// Package astro computes the instants of the four lunar quarter phases using
// the series from Meeus, Astronomical Algorithms, chapter 49. Accuracy is a
// few minutes, comfortably within the day-level agreement the message rules
// need.
package astro

import (
	"fmt"
	"math"
	"time"
)

// Phase identifies one of the four principal lunar phases.
type Phase int

const (
	NewMoon Phase = iota
	FirstQuarter
	FullMoon
	ThirdQuarter
)

var phaseNames = []string{"NewMoon", "FirstQuarter", "FullMoon", "ThirdQuarter"}

func (p Phase) String() string {
	if p < NewMoon || p > ThirdQuarter {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase converts a configured phase name to its Phase value.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if name == n {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown moon phase %q", name)
}

// Event is a single quarter-phase occurrence.
type Event struct {
	Phase Phase
	Time  time.Time
}

// ScanQuarters is how many successive quarter events FirstPhaseOnOrAfter
// examines: ten quarters is two and a half lunations, enough to contain any
// named phase within a multi-week rule window.
const ScanQuarters = 10

// QuartersAfter returns the first n quarter-phase events at or after start,
// in chronological order.
func QuartersAfter(start time.Time, n int) []Event {
	// Back up half a lunation so the estimate cannot skip an event that
	// falls just after start.
	k := nearestQuarterK(start) - 0.5
	events := make([]Event, 0, n)
	for len(events) < n {
		t := truePhase(k)
		if !t.Before(start) {
			events = append(events, Event{Phase: phaseOf(k), Time: t})
		}
		k += 0.25
	}
	return events
}

// Resolver locates phase events for the rule evaluator. The zero value is
// ready to use.
type Resolver struct{}

// FirstPhaseOnOrAfter scans forward from start through ScanQuarters quarter
// events and returns the instant of the first one matching the named phase.
// An unknown name or a phase outside the scan window reports ok == false
// rather than an error.
func (Resolver) FirstPhaseOnOrAfter(start time.Time, phaseName string) (time.Time, bool) {
	phase, err := ParsePhase(phaseName)
	if err != nil {
		return time.Time{}, false
	}
	for _, ev := range QuartersAfter(start, ScanQuarters) {
		if ev.Phase == phase {
			return ev.Time, true
		}
	}
	return time.Time{}, false
}

// nearestQuarterK estimates the lunation number k (new moon = integer k,
// quarters at steps of 0.25) near t, per Meeus eq. 49.2.
func nearestQuarterK(t time.Time) float64 {
	year := float64(t.Year()) + float64(t.YearDay()-1)/365.25
	return math.Floor((year-2000)*12.3685*4) / 4
}

func phaseOf(k float64) Phase {
	frac := math.Mod(k, 1)
	if frac < 0 {
		frac++
	}
	return Phase(int(math.Round(frac * 4)) % 4)
}

// phaseTerm is one row of a periodic-correction table: coef * E^e *
// sin(m*M + mp*M' + f*F + om*Omega), with angles in degrees.
type phaseTerm struct {
	coef         float64
	e            int
	m, mp, f, om int
}

var newMoonTerms = []phaseTerm{
	{-0.40720, 0, 0, 1, 0, 0},
	{0.17241, 1, 1, 0, 0, 0},
	{0.01608, 0, 0, 2, 0, 0},
	{0.01039, 0, 0, 0, 2, 0},
	{0.00739, 1, -1, 1, 0, 0},
	{-0.00514, 1, 1, 1, 0, 0},
	{0.00208, 2, 2, 0, 0, 0},
	{-0.00111, 0, 0, 1, -2, 0},
	{-0.00057, 0, 0, 1, 2, 0},
	{0.00056, 1, 1, 2, 0, 0},
	{-0.00042, 0, 0, 3, 0, 0},
	{0.00042, 1, 1, 0, 2, 0},
	{0.00038, 1, 1, 0, -2, 0},
	{-0.00024, 1, -1, 2, 0, 0},
	{-0.00017, 0, 0, 0, 0, 1},
	{-0.00007, 0, 2, 1, 0, 0},
	{0.00004, 0, 0, 2, -2, 0},
	{0.00004, 0, 3, 0, 0, 0},
	{0.00003, 0, 1, 1, -2, 0},
	{0.00003, 0, 0, 2, 2, 0},
	{-0.00003, 0, 1, 1, 2, 0},
	{0.00003, 0, -1, 1, 2, 0},
	{-0.00002, 0, -1, 1, -2, 0},
	{-0.00002, 0, 1, 3, 0, 0},
	{0.00002, 0, 0, 4, 0, 0},
}

var fullMoonTerms = []phaseTerm{
	{-0.40614, 0, 0, 1, 0, 0},
	{0.17302, 1, 1, 0, 0, 0},
	{0.01614, 0, 0, 2, 0, 0},
	{0.01043, 0, 0, 0, 2, 0},
	{0.00734, 1, -1, 1, 0, 0},
	{-0.00515, 1, 1, 1, 0, 0},
	{0.00209, 2, 2, 0, 0, 0},
	{-0.00111, 0, 0, 1, -2, 0},
	{-0.00057, 0, 0, 1, 2, 0},
	{0.00056, 1, 1, 2, 0, 0},
	{-0.00042, 0, 0, 3, 0, 0},
	{0.00042, 1, 1, 0, 2, 0},
	{0.00038, 1, 1, 0, -2, 0},
	{-0.00024, 1, -1, 2, 0, 0},
	{-0.00017, 0, 0, 0, 0, 1},
	{-0.00007, 0, 2, 1, 0, 0},
	{0.00004, 0, 0, 2, -2, 0},
	{0.00004, 0, 3, 0, 0, 0},
	{0.00003, 0, 1, 1, -2, 0},
	{0.00003, 0, 0, 2, 2, 0},
	{-0.00003, 0, 1, 1, 2, 0},
	{0.00003, 0, -1, 1, 2, 0},
	{-0.00002, 0, -1, 1, -2, 0},
	{-0.00002, 0, 1, 3, 0, 0},
	{0.00002, 0, 0, 4, 0, 0},
}

var quarterTerms = []phaseTerm{
	{-0.62801, 0, 0, 1, 0, 0},
	{0.17172, 1, 1, 0, 0, 0},
	{-0.01183, 1, 1, 1, 0, 0},
	{0.00862, 0, 0, 2, 0, 0},
	{0.00804, 0, 0, 0, 2, 0},
	{0.00454, 1, -1, 1, 0, 0},
	{0.00204, 2, 2, 0, 0, 0},
	{-0.00180, 0, 0, 1, -2, 0},
	{-0.00070, 0, 0, 1, 2, 0},
	{-0.00040, 0, 0, 3, 0, 0},
	{-0.00034, 1, -1, 2, 0, 0},
	{0.00032, 1, 1, 0, 2, 0},
	{0.00032, 1, 1, 0, -2, 0},
	{-0.00028, 2, 2, 1, 0, 0},
	{0.00027, 1, 1, 2, 0, 0},
	{-0.00017, 0, 0, 0, 0, 1},
	{-0.00005, 0, -1, 1, -2, 0},
	{0.00004, 0, 0, 2, 2, 0},
	{-0.00004, 0, 1, 1, 2, 0},
	{0.00004, 0, -2, 1, 0, 0},
	{0.00003, 0, 1, 1, -2, 0},
	{0.00003, 0, 3, 0, 0, 0},
	{0.00002, 0, 0, 2, -2, 0},
	{0.00002, 0, -1, 1, 2, 0},
	{-0.00002, 0, 1, 3, 0, 0},
}

// planetaryArg is one of the additional arguments A1..A14 from table 49.A.
type planetaryArg struct {
	coef   float64
	c0, ck float64
}

var planetaryArgs = []planetaryArg{
	{0.000325, 299.77, 0.107408}, // A1 also carries a -0.009173*T^2 term
	{0.000165, 251.88, 0.016321},
	{0.000164, 251.83, 26.651886},
	{0.000126, 349.42, 36.412478},
	{0.000110, 84.66, 18.206239},
	{0.000062, 141.74, 53.303771},
	{0.000060, 207.14, 2.453732},
	{0.000056, 154.84, 7.306860},
	{0.000047, 34.52, 27.261239},
	{0.000042, 207.19, 0.121824},
	{0.000040, 291.34, 1.844379},
	{0.000037, 161.72, 24.198154},
	{0.000035, 239.56, 25.513099},
	{0.000023, 331.55, 3.592518},
}

// truePhase returns the instant of the quarter event with lunation number k
// (a multiple of 0.25).
func truePhase(k float64) time.Time {
	T := k / 1236.85

	jde := 2451550.09766 + 29.530588861*k +
		T*T*(0.00015437+T*(-0.000000150+T*0.00000000073))

	E := 1 - 0.002516*T - 0.0000074*T*T
	M := 2.5534 + 29.10535670*k - T*T*(0.0000014+0.00000011*T)
	Mp := 201.5643 + 385.81693528*k + T*T*(0.0107582+T*(0.00001238-T*0.000000058))
	F := 160.7108 + 390.67050284*k + T*T*(-0.0016118+T*(-0.00000227+T*0.000000011))
	Om := 124.7746 - 1.56375588*k + T*T*(0.0020672+0.00000215*T)

	phase := phaseOf(k)
	terms := quarterTerms
	switch phase {
	case NewMoon:
		terms = newMoonTerms
	case FullMoon:
		terms = fullMoonTerms
	}

	for _, pt := range terms {
		c := pt.coef
		for i := 0; i < pt.e; i++ {
			c *= E
		}
		arg := float64(pt.m)*M + float64(pt.mp)*Mp + float64(pt.f)*F + float64(pt.om)*Om
		jde += c * sind(arg)
	}

	if phase == FirstQuarter || phase == ThirdQuarter {
		w := 0.00306 - 0.00038*E*cosd(M) + 0.00026*cosd(Mp) -
			0.00002*cosd(Mp-M) + 0.00002*cosd(Mp+M) + 0.00002*cosd(2*F)
		if phase == FirstQuarter {
			jde += w
		} else {
			jde -= w
		}
	}

	for i, pa := range planetaryArgs {
		a := pa.c0 + pa.ck*k
		if i == 0 {
			a -= 0.009173 * T * T
		}
		jde += pa.coef * sind(a)
	}

	return jdeToTime(jde)
}

func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

// jdeToTime converts a Julian ephemeris day to UTC. Delta-T (about a minute
// in the current era) is ignored; it is far below day-level precision.
func jdeToTime(jde float64) time.Time {
	sec := (jde - 2440587.5) * 86400
	i, frac := math.Modf(sec)
	return time.Unix(int64(i), int64(frac*1e9)).UTC()
}
