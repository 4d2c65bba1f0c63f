// Package api is the HTTP client for the scorecard API and the wire types
// it exchanges. The same payload shapes are served by the apiserver package,
// so the two sides can never drift apart.
package api

import (
	"fmt"

	"fairway/internal/core"
)

// HolePayload is one hole on the wire.
type HolePayload struct {
	Number int `json:"number"`
	Par    int `json:"par"`
	Score  int `json:"score"`
}

// ScorecardPayload is a full scorecard on the wire. Weather and Notes are
// pointers so an absent value serializes as null, not "".
type ScorecardPayload struct {
	ID         string        `json:"id,omitempty"`
	CourseName string        `json:"course_name"`
	DatePlayed string        `json:"date_played"`
	Weather    *string       `json:"weather"`
	Notes      *string       `json:"notes"`
	Holes      []HolePayload `json:"holes"`
}

// StatsPayload mirrors the /scorecards/stats response.
type StatsPayload struct {
	TotalRounds      int            `json:"total_rounds"`
	AvgRelativeToPar float64        `json:"avg_relative_to_par"`
	BestRound        *BestRound     `json:"best_round"`
	CoursesPlayed    map[string]int `json:"courses_played"`
}

// BestRound identifies the lowest round relative to par.
type BestRound struct {
	Date          string `json:"date"`
	Course        string `json:"course"`
	Score         int    `json:"score"`
	Par           int    `json:"par"`
	RelativeToPar int    `json:"relative_to_par"`
}

// DeleteResponse is the body returned by a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of a 4xx/5xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Encode converts a domain scorecard to its wire form.
func Encode(sc core.Scorecard) ScorecardPayload {
	p := ScorecardPayload{
		ID:         sc.ID,
		CourseName: sc.CourseName,
		DatePlayed: sc.DatePlayed.String(),
		Holes:      make([]HolePayload, len(sc.Holes)),
	}
	if sc.Weather != "" {
		w := sc.Weather
		p.Weather = &w
	}
	if sc.Notes != "" {
		n := sc.Notes
		p.Notes = &n
	}
	for i, h := range sc.Holes {
		p.Holes[i] = HolePayload{Number: h.Number, Par: h.Par, Score: h.Score}
	}
	return p
}

// Decode converts a wire scorecard back to the domain form.
func (p ScorecardPayload) Decode() (core.Scorecard, error) {
	date, err := core.ParseDate(p.DatePlayed)
	if err != nil {
		return core.Scorecard{}, fmt.Errorf("parse date_played %q: %w", p.DatePlayed, err)
	}
	sc := core.Scorecard{
		ID:         p.ID,
		CourseName: p.CourseName,
		DatePlayed: date,
		Holes:      make([]core.Hole, len(p.Holes)),
	}
	if p.Weather != nil {
		sc.Weather = *p.Weather
	}
	if p.Notes != nil {
		sc.Notes = *p.Notes
	}
	for i, h := range p.Holes {
		sc.Holes[i] = core.Hole{Number: h.Number, Par: h.Par, Score: h.Score}
	}
	return sc, nil
}

// DecodeAll converts a list response.
func DecodeAll(payloads []ScorecardPayload) ([]core.Scorecard, error) {
	cards := make([]core.Scorecard, len(payloads))
	for i, p := range payloads {
		sc, err := p.Decode()
		if err != nil {
			return nil, err
		}
		cards[i] = sc
	}
	return cards, nil
}
