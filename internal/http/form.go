package http

import (
	"fmt"
	"net/http"
	"net/url"

	"fairway/internal/core"
)

// parseScorecardForm reads a submitted round form into a scorecard. Par and
// score inputs that are missing or non-numeric are coerced to the default
// stroke count instead of failing the submission.
func parseScorecardForm(r *http.Request) (core.Scorecard, error) {
	if err := r.ParseForm(); err != nil {
		return core.Scorecard{}, fmt.Errorf("parse form: %w", err)
	}

	date, err := core.ParseDate(r.FormValue("date_played"))
	if err != nil {
		return core.Scorecard{}, fmt.Errorf("parse date played: %w", err)
	}

	sc := core.Scorecard{
		ID:         r.FormValue("id"),
		CourseName: sanitizeInput(r.FormValue("course_name")),
		DatePlayed: date,
		Weather:    sanitizeInput(r.FormValue("weather")),
		Notes:      sanitizeInput(r.FormValue("notes")),
		Holes:      make([]core.Hole, core.HolesPerRound),
	}
	for i := 1; i <= core.HolesPerRound; i++ {
		sc.Holes[i-1] = core.Hole{
			Number: i,
			Par:    core.ParseStroke(r.FormValue(fmt.Sprintf("par_%d", i))),
			Score:  core.ParseStroke(r.FormValue(fmt.Sprintf("score_%d", i))),
		}
	}
	return sc, nil
}

// parseFilter reads the filter bar's query parameters. Absent or unknown
// range values fall back to showing everything, so an omitted param and an
// explicit "all" produce the same filter.
func parseFilter(q url.Values) core.Filter {
	f := core.Filter{
		Course: q.Get("course"),
		Window: core.Window(q.Get("range")),
		Search: sanitizeInput(q.Get("q")),
	}
	if f.Window == "" || !f.Window.Valid() {
		f.Window = core.WindowAll
	}
	return f
}
