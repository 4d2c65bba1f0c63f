package core

import (
	"sort"
	"strconv"
)

// Summary is the roll-up shown in the dashboard statistics panel.
// When TotalRounds is zero there is no average and no best round;
// the Has fields make that explicit instead of overloading zero values.
type Summary struct {
	TotalRounds       int
	AvgRelativeToPar  float64
	BestRelativeToPar int
	BestCourse        string
	CoursesPlayed     int
	HasRounds         bool
}

// Summarize computes roll-up statistics over a set of scorecards.
// Best-round ties are broken by first occurrence in input order.
func Summarize(cards []Scorecard) Summary {
	s := Summary{TotalRounds: len(cards)}
	if len(cards) == 0 {
		return s
	}
	s.HasRounds = true

	courses := make(map[string]bool, len(cards))
	totalRel := 0
	for i, sc := range cards {
		courses[sc.CourseName] = true
		rel := Totals(sc).RelativeToPar
		totalRel += rel
		if i == 0 || rel < s.BestRelativeToPar {
			s.BestRelativeToPar = rel
			s.BestCourse = sc.CourseName
		}
	}
	s.AvgRelativeToPar = float64(totalRel) / float64(len(cards))
	s.CoursesPlayed = len(courses)
	return s
}

// FormatAverage renders the average relative-to-par to one decimal,
// with an explicit plus sign when over par (e.g. "+1.5", "-0.3", "0.0").
func (s Summary) FormatAverage() string {
	if !s.HasRounds {
		return "0"
	}
	v := strconv.FormatFloat(s.AvgRelativeToPar, 'f', 1, 64)
	if s.AvgRelativeToPar > 0 {
		return "+" + v
	}
	return v
}

// FormatBest renders the best round in the short relative form, or "N/A"
// when no rounds exist.
func (s Summary) FormatBest() string {
	if !s.HasRounds {
		return "N/A"
	}
	return FormatRelative(s.BestRelativeToPar)
}

// CourseCount is the number of rounds recorded at one course.
type CourseCount struct {
	Course string
	Rounds int
}

// CourseCounts tallies rounds per course, preserving the order of each
// course's first appearance so chart slice colors stay stable.
func CourseCounts(cards []Scorecard) []CourseCount {
	index := make(map[string]int, len(cards))
	out := make([]CourseCount, 0, len(cards))
	for _, sc := range cards {
		if i, ok := index[sc.CourseName]; ok {
			out[i].Rounds++
			continue
		}
		index[sc.CourseName] = len(out)
		out = append(out, CourseCount{Course: sc.CourseName, Rounds: 1})
	}
	return out
}

// TrendPoint is one round on the score-trend chart.
type TrendPoint struct {
	Date          Date
	RelativeToPar int
	CourseName    string
}

// TrendSeries produces one point per round ordered by date played
// ascending. The sort is stable: rounds on the same date keep their
// relative input order.
func TrendSeries(cards []Scorecard) []TrendPoint {
	points := make([]TrendPoint, len(cards))
	for i, sc := range cards {
		points[i] = TrendPoint{
			Date:          sc.DatePlayed,
			RelativeToPar: Totals(sc).RelativeToPar,
			CourseName:    sc.CourseName,
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})
	return points
}
