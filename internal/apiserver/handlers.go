package apiserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"fairway/internal/amqp"
	"fairway/internal/api"
	"fairway/internal/core"
	"fairway/internal/storage"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	cards, err := s.repo.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list scorecards", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list scorecards")
		return
	}

	payloads := make([]api.ScorecardPayload, len(cards))
	for i, sc := range cards {
		payloads[i] = api.Encode(sc)
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, err := s.repo.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Scorecard not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to get scorecard", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get scorecard")
		return
	}
	writeJSON(w, http.StatusOK, api.Encode(sc))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p api.ScorecardPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sc, err := p.Decode()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc.ID = uuid.NewString()
	if err := sc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.repo.Create(r.Context(), sc); err != nil {
		slog.ErrorContext(r.Context(), "Failed to create scorecard", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create scorecard")
		return
	}

	s.publish(r, sc.ID, amqp.OpCreated, sc.CourseName)
	writeJSON(w, http.StatusOK, api.Encode(sc))
}

// updatePayload carries a partial update: only fields present in the body
// are applied, matching how the dashboard edit form has always worked.
type updatePayload struct {
	CourseName *string            `json:"course_name"`
	DatePlayed *string            `json:"date_played"`
	Weather    *string            `json:"weather"`
	Notes      *string            `json:"notes"`
	Holes      *[]api.HolePayload `json:"holes"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, err := s.repo.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Scorecard not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to get scorecard", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update scorecard")
		return
	}

	var p updatePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if p.CourseName != nil {
		sc.CourseName = *p.CourseName
	}
	if p.DatePlayed != nil {
		date, err := core.ParseDate(*p.DatePlayed)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date_played")
			return
		}
		sc.DatePlayed = date
	}
	if p.Weather != nil {
		sc.Weather = *p.Weather
	}
	if p.Notes != nil {
		sc.Notes = *p.Notes
	}
	if p.Holes != nil {
		holes := make([]core.Hole, len(*p.Holes))
		for i, h := range *p.Holes {
			holes[i] = core.Hole{Number: h.Number, Par: h.Par, Score: h.Score}
		}
		sc.Holes = holes
	}

	if err := sc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.repo.Update(r.Context(), sc); err != nil {
		slog.ErrorContext(r.Context(), "Failed to update scorecard", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update scorecard")
		return
	}

	s.publish(r, sc.ID, amqp.OpUpdated, sc.CourseName)
	writeJSON(w, http.StatusOK, api.Encode(sc))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.repo.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Scorecard not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete scorecard", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete scorecard")
		return
	}

	s.publish(r, id, amqp.OpDeleted, "")
	writeJSON(w, http.StatusOK, api.DeleteResponse{Message: "Scorecard deleted successfully"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	cards, err := s.repo.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list scorecards for stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	summary := core.Summarize(cards)
	stats := api.StatsPayload{
		TotalRounds:      summary.TotalRounds,
		AvgRelativeToPar: summary.AvgRelativeToPar,
		CoursesPlayed:    map[string]int{},
	}
	for _, cc := range core.CourseCounts(cards) {
		stats.CoursesPlayed[cc.Course] = cc.Rounds
	}
	if summary.HasRounds {
		best := bestRound(cards)
		totals := core.Totals(best)
		stats.BestRound = &api.BestRound{
			Date:          best.DatePlayed.String(),
			Course:        best.CourseName,
			Score:         totals.TotalScore,
			Par:           totals.TotalPar,
			RelativeToPar: totals.RelativeToPar,
		}
	}

	writeJSON(w, http.StatusOK, stats)
}

// bestRound returns the round with the lowest relative-to-par, first
// occurrence winning ties.
func bestRound(cards []core.Scorecard) core.Scorecard {
	best := cards[0]
	bestRel := core.Totals(best).RelativeToPar
	for _, sc := range cards[1:] {
		if rel := core.Totals(sc).RelativeToPar; rel < bestRel {
			best, bestRel = sc, rel
		}
	}
	return best
}

func (s *Server) publish(r *http.Request, id, op, course string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRoundEvent(r.Context(), id, op, course); err != nil {
		// The mutation already succeeded; the periodic sweep covers lost events.
		slog.ErrorContext(r.Context(), "Failed to publish round event",
			"scorecard_id", id, "op", op, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, api.ErrorResponse{Detail: detail})
}
