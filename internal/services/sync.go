// Package services holds the sync controller that keeps the local record
// store aligned with the remote scorecard API.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"fairway/internal/api"
	"fairway/internal/core"
	"fairway/internal/store"
)

// RoundAPI is the slice of the scorecard API the controller needs.
type RoundAPI interface {
	List(ctx context.Context) ([]api.ScorecardPayload, error)
	Create(ctx context.Context, p api.ScorecardPayload) (api.ScorecardPayload, error)
	Update(ctx context.Context, id string, p api.ScorecardPayload) (api.ScorecardPayload, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (api.StatsPayload, error)
}

// SyncController mediates every mutation between the dashboard and the API:
// remote first, then patch the local store from the server's response. The
// store never sees a write the server did not confirm.
type SyncController struct {
	api   RoundAPI
	store *store.RecordStore

	// mu serializes mutations so two in-flight writes cannot interleave
	// their store patches.
	mu sync.Mutex
}

func NewSyncController(roundAPI RoundAPI, recordStore *store.RecordStore) *SyncController {
	return &SyncController{
		api:   roundAPI,
		store: recordStore,
	}
}

// Refresh replaces the store wholesale with the API's current list. The
// server-side stats roll-up is fetched in parallel and logged when it
// disagrees with the local count; the dashboard always computes its own
// statistics, so drift is advisory only.
func (s *SyncController) Refresh(ctx context.Context) error {
	var (
		payloads []api.ScorecardPayload
		remote   api.StatsPayload
		statsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payloads, err = s.api.List(gctx)
		return err
	})
	g.Go(func() error {
		remote, statsErr = s.api.Stats(gctx)
		return nil // advisory, never fails the refresh
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh scorecards: %w", err)
	}

	cards, err := api.DecodeAll(payloads)
	if err != nil {
		return fmt.Errorf("refresh scorecards: %w", err)
	}

	s.mu.Lock()
	s.store.ReplaceAll(cards)
	s.mu.Unlock()

	if statsErr != nil {
		slog.WarnContext(ctx, "Server stats unavailable", "error", statsErr)
	} else if remote.TotalRounds != len(cards) {
		slog.WarnContext(ctx, "Server stats disagree with list",
			"server_rounds", remote.TotalRounds, "listed_rounds", len(cards))
	}

	slog.InfoContext(ctx, "Scorecards refreshed", "count", len(cards))
	return nil
}

// Create validates the draft, posts it, and stores the record the server
// returned (id included).
func (s *SyncController) Create(ctx context.Context, draft core.Scorecard) (core.Scorecard, error) {
	if err := draft.Validate(); err != nil {
		return core.Scorecard{}, fmt.Errorf("validate scorecard: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.api.Create(ctx, api.Encode(draft))
	if err != nil {
		return core.Scorecard{}, err
	}
	sc, err := stored.Decode()
	if err != nil {
		return core.Scorecard{}, fmt.Errorf("decode created scorecard: %w", err)
	}

	s.store.Upsert(sc)
	slog.InfoContext(ctx, "Scorecard created", "id", sc.ID, "course", sc.CourseName)
	return sc, nil
}

// Update replaces an existing scorecard and patches the store with the
// server's stored version.
func (s *SyncController) Update(ctx context.Context, sc core.Scorecard) (core.Scorecard, error) {
	if sc.ID == "" {
		return core.Scorecard{}, fmt.Errorf("update scorecard: missing id")
	}
	if err := sc.Validate(); err != nil {
		return core.Scorecard{}, fmt.Errorf("validate scorecard: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.api.Update(ctx, sc.ID, api.Encode(sc))
	if err != nil {
		return core.Scorecard{}, err
	}
	updated, err := stored.Decode()
	if err != nil {
		return core.Scorecard{}, fmt.Errorf("decode updated scorecard: %w", err)
	}

	s.store.Upsert(updated)
	slog.InfoContext(ctx, "Scorecard updated", "id", updated.ID, "course", updated.CourseName)
	return updated, nil
}

// Delete removes the scorecard remotely, then locally.
func (s *SyncController) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete scorecard: missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.store.Remove(id)
	slog.InfoContext(ctx, "Scorecard deleted", "id", id)
	return nil
}
