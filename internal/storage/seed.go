package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fairway/internal/core"
)

// SeedSampleData inserts two sample rounds into an empty database so a
// fresh install has something to show. A non-empty database is left alone.
func (r *SQLiteRepository) SeedSampleData(ctx context.Context) error {
	n, err := r.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, sc := range sampleRounds() {
		sc.ID = uuid.NewString()
		if err := r.Create(ctx, sc); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	slog.InfoContext(ctx, "Seeded sample scorecards", "count", 2)
	return nil
}

func sampleRounds() []core.Scorecard {
	augustaPars := []int{4, 5, 4, 3, 4, 3, 4, 5, 4, 4, 4, 3, 5, 4, 5, 3, 4, 4}
	augustaScores := []int{5, 5, 4, 3, 5, 4, 4, 6, 4, 5, 5, 4, 6, 4, 5, 3, 4, 5}
	pebblePars := []int{4, 5, 4, 4, 3, 5, 3, 4, 4, 4, 4, 3, 4, 5, 4, 4, 3, 5}
	pebbleScores := []int{4, 6, 4, 5, 3, 5, 2, 4, 4, 5, 4, 3, 4, 5, 4, 5, 4, 6}

	return []core.Scorecard{
		{
			CourseName: "Augusta National",
			DatePlayed: core.NewDate(2025, 2, 15),
			Weather:    "Sunny, 75°F",
			Notes:      "First time playing Augusta. Beautiful course!",
			Holes:      buildHoles(augustaPars, augustaScores),
		},
		{
			CourseName: "Pebble Beach",
			DatePlayed: core.NewDate(2025, 3, 1),
			Weather:    "Partly cloudy, windy, 68°F",
			Notes:      "Amazing ocean views. Wind was a challenge.",
			Holes:      buildHoles(pebblePars, pebbleScores),
		},
	}
}

func buildHoles(pars, scores []int) []core.Hole {
	holes := make([]core.Hole, len(pars))
	for i := range pars {
		holes[i] = core.Hole{Number: i + 1, Par: pars[i], Score: scores[i]}
	}
	return holes
}
