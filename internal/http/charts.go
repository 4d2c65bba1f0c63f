package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"fairway/internal/core"
)

// trendChartData feeds the score-trend line chart: one point per round,
// oldest first.
type trendChartData struct {
	Labels  []string `json:"labels"`
	Data    []int    `json:"data"`
	Courses []string `json:"courses"`
}

// coursesChartData feeds the rounds-per-course doughnut.
type coursesChartData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
	Colors []string `json:"colors"`
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "trend", func(cards []core.Scorecard) any {
		points := core.TrendSeries(cards)
		data := trendChartData{
			Labels:  make([]string, len(points)),
			Data:    make([]int, len(points)),
			Courses: make([]string, len(points)),
		}
		for i, p := range points {
			data.Labels[i] = p.Date.Display()
			data.Data[i] = p.RelativeToPar
			data.Courses[i] = p.CourseName
		}
		return data
	})
}

func (s *Server) handleCoursesChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "courses", func(cards []core.Scorecard) any {
		counts := core.CourseCounts(cards)
		data := coursesChartData{
			Labels: make([]string, len(counts)),
			Data:   make([]int, len(counts)),
			Colors: make([]string, len(counts)),
		}
		for i, cc := range counts {
			data.Labels[i] = cc.Course
			data.Data[i] = cc.Rounds
			data.Colors[i] = sliceColor(i)
		}
		return data
	})
}

// serveChart renders chart JSON through the LRU cache. Charts always cover
// the full store in fetch order (the trend series sorts itself; course
// slices keep first-appearance coloring), so the chart name alone keys the
// cache.
func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, name string, build func([]core.Scorecard) any) {
	body, ok := s.chartCache.Get(name)
	if !ok {
		var err error
		body, err = json.Marshal(build(s.store.All()))
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to marshal chart data", "chart", name, "error", err)
			http.Error(w, "chart data unavailable", http.StatusInternalServerError)
			return
		}
		s.chartCache.Set(name, body)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// sliceColor assigns the i-th course a green-family hue, drifting further
// from green as the index grows so adjacent slices stay distinguishable.
func sliceColor(i int) string {
	hue := (120 + i*15) % 360
	sat := 60 + (i*3)%30
	light := 40 + (i*5)%30
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, sat, light)
}
