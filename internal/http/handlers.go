package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"fairway/internal/core"
	applog "fairway/internal/log"
)

// formMode says what the round form is for. It is plain data the template
// switches on, not three separate handlers.
type formMode string

const (
	ModeCreate formMode = "create"
	ModeEdit   formMode = "edit"
	ModeView   formMode = "view"
)

func parseFormMode(s string) formMode {
	switch formMode(s) {
	case ModeEdit:
		return ModeEdit
	case ModeView:
		return ModeView
	default:
		return ModeCreate
	}
}

func (m formMode) Title() string {
	switch m {
	case ModeEdit:
		return "Edit Round"
	case ModeView:
		return "Round Details"
	default:
		return "New Round"
	}
}

// ReadOnly reports whether the form renders as a details view with inputs
// disabled.
func (m formMode) ReadOnly() bool { return m == ModeView }

type indexView struct {
	Courses []string
}

type cardView struct {
	ID            string
	CourseName    string
	DateDisplay   string
	Weather       string
	Notes         string
	OutScore      int
	InScore       int
	TotalScore    int
	TotalPar      int
	Relative      string
	RelativeClass string
}

type listView struct {
	Cards    []cardView
	HasCards bool
}

type statsView struct {
	TotalRounds   int
	Average       string
	Best          string
	BestCourse    string
	CoursesPlayed int
}

type holeInput struct {
	Number     int
	Par        int
	Score      int
	ScoreClass string
}

type formView struct {
	Mode       formMode
	Title      string
	ReadOnly   bool
	Scorecard  core.Scorecard
	DateValue  string
	Holes      []holeInput
	Totals     core.RoundTotals
	Relative   string
	ShowTotals bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", indexView{Courses: s.store.Courses()})
}

func (s *Server) handleScorecardList(w http.ResponseWriter, r *http.Request) {
	cards := s.filteredCards(r)

	view := listView{Cards: make([]cardView, len(cards)), HasCards: len(cards) > 0}
	for i, sc := range cards {
		t := core.Totals(sc)
		view.Cards[i] = cardView{
			ID:            sc.ID,
			CourseName:    sc.CourseName,
			DateDisplay:   sc.DatePlayed.Display(),
			Weather:       sc.Weather,
			Notes:         sc.Notes,
			OutScore:      t.OutScore,
			InScore:       t.InScore,
			TotalScore:    t.TotalScore,
			TotalPar:      t.TotalPar,
			Relative:      core.FormatRelative(t.RelativeToPar),
			RelativeClass: scoreClass(t.TotalScore, t.TotalPar),
		}
	}
	s.render(w, r, "scorecard_list.html", view)
}

// handleStatsPanel computes the statistics panel over the full store.
// Filters narrow the card grid only; the roll-up always describes every
// recorded round.
func (s *Server) handleStatsPanel(w http.ResponseWriter, r *http.Request) {
	summary := core.Summarize(s.store.All())

	s.render(w, r, "stats_overview.html", statsView{
		TotalRounds:   summary.TotalRounds,
		Average:       summary.FormatAverage(),
		Best:          summary.FormatBest(),
		BestCourse:    summary.BestCourse,
		CoursesPlayed: summary.CoursesPlayed,
	})
}

func (s *Server) handleRoundForm(w http.ResponseWriter, r *http.Request) {
	mode := parseFormMode(r.URL.Query().Get("mode"))

	view := formView{
		Mode:     mode,
		Title:    mode.Title(),
		ReadOnly: mode.ReadOnly(),
	}

	if mode == ModeCreate {
		view.DateValue = time.Now().Format("2006-01-02")
		view.Holes = make([]holeInput, core.HolesPerRound)
		for i := range view.Holes {
			n := i + 1
			par := core.DefaultPar(n)
			view.Holes[i] = holeInput{Number: n, Par: par, Score: par}
		}
		s.render(w, r, "scorecard_form.html", view)
		return
	}

	id := r.URL.Query().Get("id")
	sc, ok := s.store.Get(id)
	if !ok {
		writeHTMXError(w, http.StatusNotFound, "Round not found. Try refreshing the list.")
		return
	}

	view.Scorecard = sc
	view.DateValue = sc.DatePlayed.String()
	view.Holes = make([]holeInput, len(sc.Holes))
	for i, h := range sc.Holes {
		view.Holes[i] = holeInput{Number: h.Number, Par: h.Par, Score: h.Score, ScoreClass: scoreClass(h.Score, h.Par)}
	}
	view.Totals = core.Totals(sc)
	view.Relative = core.FormatRelativeWord(view.Totals.RelativeToPar)
	view.ShowTotals = mode == ModeView

	s.render(w, r, "scorecard_form.html", view)
}

func (s *Server) handleCreateRound(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScorecardForm(r)
	if err != nil {
		writeHTMXError(w, http.StatusBadRequest, "Invalid round data: %v", err)
		return
	}
	sc.ID = "" // the API assigns ids

	created, err := s.controller.Create(r.Context(), sc)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create round", "course", sc.CourseName, "error", err)
		writeHTMXError(w, http.StatusBadGateway, "%v", err)
		return
	}

	s.chartCache.Purge()
	s.logRoundSaved(r, "create", created)

	NewHTMXResponse(w).
		Trigger(TriggerRoundCreated, map[string]string{"id": created.ID}).
		Notification("success", "Round at "+created.CourseName+" saved").
		Write()
}

func (s *Server) handleUpdateRound(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScorecardForm(r)
	if err != nil {
		writeHTMXError(w, http.StatusBadRequest, "Invalid round data: %v", err)
		return
	}
	sc.ID = r.PathValue("id")

	updated, err := s.controller.Update(r.Context(), sc)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to update round", "id", sc.ID, "error", err)
		writeHTMXError(w, http.StatusBadGateway, "%v", err)
		return
	}

	s.chartCache.Purge()
	s.logRoundSaved(r, "update", updated)

	NewHTMXResponse(w).
		Trigger(TriggerRoundUpdated, map[string]string{"id": updated.ID}).
		Notification("success", "Round at "+updated.CourseName+" updated").
		Write()
}

func (s *Server) handleDeleteRound(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.controller.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete round", "id", id, "error", err)
		writeHTMXError(w, http.StatusBadGateway, "%v", err)
		return
	}

	s.chartCache.Purge()

	NewHTMXResponse(w).
		Trigger(TriggerRoundDeleted, map[string]string{"id": id}).
		Notification("success", "Round deleted").
		Write()
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Refresh(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to refresh rounds", "error", err)
		writeHTMXError(w, http.StatusBadGateway, "%v", err)
		return
	}

	s.chartCache.Purge()

	NewHTMXResponse(w).
		Trigger("roundsRefreshed", nil).
		Notification("success", "Scorecards refreshed").
		Write()
}

func (s *Server) logRoundSaved(r *http.Request, op string, sc core.Scorecard) {
	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	sl.LogRoundSaved(r.Context(), op, sc.ID, sc.CourseName, sc.DatePlayed.String(), len(sc.Holes))
}

// filteredCards applies the filter bar to the store, newest round first.
func (s *Server) filteredCards(r *http.Request) []core.Scorecard {
	f := parseFilter(r.URL.Query())
	return core.SortNewestFirst(f.Apply(s.store.All(), time.Now()))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render template", "template", name, "error", err)
		http.Error(w, "render failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
