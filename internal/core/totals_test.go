package core

import "testing"

// fullRound builds an 18-hole scorecard whose every hole has the given par
// and a score of par+perHoleOver.
func fullRound(course string, date Date, par, perHoleOver int) Scorecard {
	holes := make([]Hole, 0, HolesPerRound)
	for n := 1; n <= HolesPerRound; n++ {
		holes = append(holes, Hole{Number: n, Par: par, Score: par + perHoleOver})
	}
	return Scorecard{ID: course + date.String(), CourseName: course, DatePlayed: date, Holes: holes}
}

func TestTotalsSplitsFrontAndBack(t *testing.T) {
	sc := fullRound("Pebble", NewDate(2025, 3, 1), 4, 1)
	got := Totals(sc)

	if got.OutPar != 36 || got.InPar != 36 {
		t.Fatalf("nine-hole pars = %d/%d, want 36/36", got.OutPar, got.InPar)
	}
	if got.OutScore != 45 || got.InScore != 45 {
		t.Fatalf("nine-hole scores = %d/%d, want 45/45", got.OutScore, got.InScore)
	}
	if got.OutPar+got.InPar != got.TotalPar {
		t.Fatalf("out+in par %d != total par %d", got.OutPar+got.InPar, got.TotalPar)
	}
	if got.OutScore+got.InScore != got.TotalScore {
		t.Fatalf("out+in score %d != total score %d", got.OutScore+got.InScore, got.TotalScore)
	}
	if got.RelativeToPar != 18 {
		t.Fatalf("relative to par = %d, want 18", got.RelativeToPar)
	}
}

func TestTotalsMissingHoleUndercounts(t *testing.T) {
	sc := fullRound("Augusta", NewDate(2025, 2, 15), 4, 0)
	// Drop hole 11: its par and score must contribute zero.
	holes := sc.Holes[:0:0]
	for _, h := range sc.Holes {
		if h.Number != 11 {
			holes = append(holes, h)
		}
	}
	sc.Holes = holes

	got := Totals(sc)
	if got.TotalScore != 17*4 {
		t.Fatalf("total score = %d, want %d", got.TotalScore, 17*4)
	}
	if got.InPar != 8*4 {
		t.Fatalf("in par = %d, want %d", got.InPar, 8*4)
	}
	if got.RelativeToPar != 0 {
		t.Fatalf("relative to par = %d, want 0", got.RelativeToPar)
	}
}

func TestTotalsIgnoresOutOfRangeHoles(t *testing.T) {
	sc := Scorecard{Holes: []Hole{
		{Number: 0, Par: 4, Score: 4},
		{Number: 19, Par: 4, Score: 4},
		{Number: 1, Par: 3, Score: 5},
	}}
	got := Totals(sc)
	if got.TotalPar != 3 || got.TotalScore != 5 {
		t.Fatalf("totals = %d/%d, want 3/5", got.TotalPar, got.TotalScore)
	}
}

func TestFormatRelative(t *testing.T) {
	cases := []struct {
		n          int
		short, word string
	}{
		{0, "E", "Even"},
		{3, "+3", "+3"},
		{-2, "-2", "-2"},
		{12, "+12", "+12"},
	}
	for _, tc := range cases {
		if got := FormatRelative(tc.n); got != tc.short {
			t.Fatalf("FormatRelative(%d) = %q, want %q", tc.n, got, tc.short)
		}
		if got := FormatRelativeWord(tc.n); got != tc.word {
			t.Fatalf("FormatRelativeWord(%d) = %q, want %q", tc.n, got, tc.word)
		}
	}
}

func TestParseStroke(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{" 3 ", 3},
		{"", DefaultStroke},
		{"abc", DefaultStroke},
		{"-1", DefaultStroke},
		{"0", DefaultStroke},
	}
	for _, tc := range cases {
		if got := ParseStroke(tc.in); got != tc.want {
			t.Fatalf("ParseStroke(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestScorecardValidate(t *testing.T) {
	good := fullRound("Pebble", NewDate(2025, 3, 1), 4, 0)
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	empty := good
	empty.CourseName = "  "
	if err := empty.Validate(); err != ErrEmptyCourseName {
		t.Fatalf("expected ErrEmptyCourseName, got %v", err)
	}

	future := good
	future.DatePlayed = NewDate(2999, 1, 1)
	if err := future.Validate(); err != ErrFutureDate {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}

	dup := good.Clone()
	dup.Holes[1].Number = 1
	if err := dup.Validate(); err == nil {
		t.Fatalf("expected duplicate hole error")
	}

	partial := good.Clone()
	partial.Holes = partial.Holes[:17]
	if err := partial.Validate(); err != nil {
		t.Fatalf("partial hole list should validate, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	sc := fullRound("Pebble", NewDate(2025, 3, 1), 4, 0)
	cp := sc.Clone()
	cp.Holes[0].Score = 99
	if sc.Holes[0].Score == 99 {
		t.Fatalf("clone shares holes slice with original")
	}
}

func TestDefaultPar(t *testing.T) {
	want := map[int]int{3: 3, 6: 3, 12: 3, 16: 3, 5: 5, 7: 5, 13: 5, 18: 5, 1: 4, 10: 4}
	for n, p := range want {
		if got := DefaultPar(n); got != p {
			t.Fatalf("DefaultPar(%d) = %d, want %d", n, got, p)
		}
	}
}
