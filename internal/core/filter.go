package core

import (
	"sort"
	"strings"
	"time"
)

// Window selects a relative date range for filtering rounds.
type Window string

const (
	WindowAll        Window = "all"
	WindowLastMonth  Window = "last-month"
	WindowLast3Month Window = "last-3-months"
	WindowLastYear   Window = "last-year"
)

// Valid reports whether w is a known window value. The empty string is
// accepted and treated as WindowAll.
func (w Window) Valid() bool {
	switch w {
	case "", WindowAll, WindowLastMonth, WindowLast3Month, WindowLastYear:
		return true
	}
	return false
}

// Cutoff returns the inclusive lower bound for the window relative to now.
// The second return is false when the window passes everything.
func (w Window) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowLastMonth:
		return monthsBack(now, 1), true
	case WindowLast3Month:
		return monthsBack(now, 3), true
	case WindowLastYear:
		return monthsBack(now, 12), true
	default:
		return time.Time{}, false
	}
}

// monthsBack subtracts whole calendar months, clamping the day to the last
// valid day of the target month (Mar 31 minus one month is Feb 28/29, not
// an overflow into March).
func monthsBack(t time.Time, months int) time.Time {
	y := t.Year()
	m := int(t.Month()) - months
	for m < 1 {
		m += 12
		y--
	}
	d := t.Day()
	if last := daysIn(y, time.Month(m)); d > last {
		d = last
	}
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Filter is the predicate the dashboard applies to the scorecard list.
// All three conditions are ANDed; zero values pass everything.
type Filter struct {
	// Course is an exact course name, or "all"/"" for no course filter.
	Course string

	// Window keeps rounds played on or after now minus the window.
	Window Window

	// Search is a case-insensitive substring matched against the course
	// name or the notes. Rounds without notes never match on notes.
	Search string
}

// Match reports whether one scorecard passes the filter, evaluated at now.
func (f Filter) Match(sc Scorecard, now time.Time) bool {
	if f.Course != "" && f.Course != "all" && sc.CourseName != f.Course {
		return false
	}
	if cutoff, bounded := f.Window.Cutoff(now); bounded && sc.DatePlayed.Before(cutoff) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		inCourse := strings.Contains(strings.ToLower(sc.CourseName), q)
		inNotes := sc.Notes != "" && strings.Contains(strings.ToLower(sc.Notes), q)
		if !inCourse && !inNotes {
			return false
		}
	}
	return true
}

// Apply returns the scorecards passing the filter, in input order.
// The input slice is never mutated.
func (f Filter) Apply(cards []Scorecard, now time.Time) []Scorecard {
	out := make([]Scorecard, 0, len(cards))
	for _, sc := range cards {
		if f.Match(sc, now) {
			out = append(out, sc)
		}
	}
	return out
}

// SortNewestFirst returns a copy sorted by date played descending, the
// display order of the card grid. The sort is stable.
func SortNewestFirst(cards []Scorecard) []Scorecard {
	out := make([]Scorecard, len(cards))
	copy(out, cards)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].DatePlayed.Before(out[i].DatePlayed.Time)
	})
	return out
}
