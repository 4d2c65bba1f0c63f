package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalRounds != 0 || s.CoursesPlayed != 0 || s.HasRounds {
		t.Fatalf("empty summary = %+v", s)
	}
	if got := s.FormatAverage(); got != "0" {
		t.Fatalf("FormatAverage() = %q, want \"0\"", got)
	}
	if got := s.FormatBest(); got != "N/A" {
		t.Fatalf("FormatBest() = %q, want \"N/A\"", got)
	}
}

func TestSummarizeTwoRounds(t *testing.T) {
	// +5 and -2 at the same course.
	over := fullRound("Pebble", NewDate(2024, 1, 1), 4, 0)
	over.Holes[0].Score += 5
	under := fullRound("Pebble", NewDate(2024, 6, 1), 4, 0)
	under.Holes[0].Score -= 2

	s := Summarize([]Scorecard{over, under})
	if s.TotalRounds != 2 {
		t.Fatalf("total rounds = %d, want 2", s.TotalRounds)
	}
	if s.AvgRelativeToPar != 1.5 {
		t.Fatalf("avg = %v, want 1.5", s.AvgRelativeToPar)
	}
	if got := s.FormatAverage(); got != "+1.5" {
		t.Fatalf("FormatAverage() = %q, want \"+1.5\"", got)
	}
	if s.BestRelativeToPar != -2 || s.BestCourse != "Pebble" {
		t.Fatalf("best = %d at %q, want -2 at Pebble", s.BestRelativeToPar, s.BestCourse)
	}
	if s.CoursesPlayed != 1 {
		t.Fatalf("courses played = %d, want 1", s.CoursesPlayed)
	}
}

func TestSummarizeBestTieKeepsFirst(t *testing.T) {
	a := fullRound("Augusta", NewDate(2025, 1, 1), 4, 0)
	b := fullRound("Pebble", NewDate(2025, 2, 1), 4, 0)
	s := Summarize([]Scorecard{a, b})
	if s.BestCourse != "Augusta" {
		t.Fatalf("tie should keep first occurrence, got %q", s.BestCourse)
	}
}

func TestCourseCounts(t *testing.T) {
	cards := []Scorecard{
		{CourseName: "Pebble"},
		{CourseName: "Pebble"},
		{CourseName: "Augusta"},
	}
	got := CourseCounts(cards)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Course != "Pebble" || got[0].Rounds != 2 {
		t.Fatalf("first = %+v, want Pebble x2", got[0])
	}
	if got[1].Course != "Augusta" || got[1].Rounds != 1 {
		t.Fatalf("second = %+v, want Augusta x1", got[1])
	}
}

func TestTrendSeriesOrdersByDate(t *testing.T) {
	later := fullRound("Pebble", NewDate(2024, 6, 1), 4, 0)
	later.Holes[0].Score -= 2
	earlier := fullRound("Pebble", NewDate(2024, 1, 1), 4, 0)
	earlier.Holes[0].Score += 5

	pts := TrendSeries([]Scorecard{later, earlier})
	if len(pts) != 2 {
		t.Fatalf("len = %d, want 2", len(pts))
	}
	if pts[0].RelativeToPar != 5 || pts[1].RelativeToPar != -2 {
		t.Fatalf("points out of order: %+v", pts)
	}
	if pts[0].Date.String() != "2024-01-01" {
		t.Fatalf("first point date = %s", pts[0].Date)
	}
}

func TestTrendSeriesStableOnSameDate(t *testing.T) {
	d := NewDate(2025, 5, 5)
	a := fullRound("A", d, 4, 0)
	b := fullRound("B", d, 4, 1)
	pts := TrendSeries([]Scorecard{a, b})
	if pts[0].CourseName != "A" || pts[1].CourseName != "B" {
		t.Fatalf("same-date rounds reordered: %+v", pts)
	}
}
