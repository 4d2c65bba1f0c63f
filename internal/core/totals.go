package core

import "strconv"

// RoundTotals holds the derived sums for one round. "Out" covers holes
// 1-9, "In" covers 10-18. Holes absent from the scorecard contribute zero,
// so partial data undercounts instead of failing.
type RoundTotals struct {
	OutPar   int
	OutScore int
	InPar    int
	InScore  int

	TotalPar      int
	TotalScore    int
	RelativeToPar int
}

// Totals computes the front/back nine split and overall totals for a round.
// Hole numbers outside 1-18 are ignored.
func Totals(sc Scorecard) RoundTotals {
	var t RoundTotals
	for _, h := range sc.Holes {
		switch {
		case h.Number >= 1 && h.Number <= FrontNineEnd:
			t.OutPar += h.Par
			t.OutScore += h.Score
		case h.Number > FrontNineEnd && h.Number <= HolesPerRound:
			t.InPar += h.Par
			t.InScore += h.Score
		}
	}
	t.TotalPar = t.OutPar + t.InPar
	t.TotalScore = t.OutScore + t.InScore
	t.RelativeToPar = t.TotalScore - t.TotalPar
	return t
}

// FormatRelative renders a relative-to-par value in the short form used on
// cards and in the statistics panel: "E" at even par, "+3", "-2".
func FormatRelative(n int) string {
	switch {
	case n == 0:
		return "E"
	case n > 0:
		return "+" + strconv.Itoa(n)
	default:
		return strconv.Itoa(n)
	}
}

// FormatRelativeWord is the totals-panel variant, which spells out "Even"
// instead of "E". Positive and negative values render identically to
// FormatRelative.
func FormatRelativeWord(n int) string {
	if n == 0 {
		return "Even"
	}
	return FormatRelative(n)
}
