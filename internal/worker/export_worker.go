// Package worker archives scorecards from SQLite to the round archive.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fairway/internal/amqp"
	"fairway/internal/sheets"
	"fairway/internal/storage"
)

// ExportWorker copies finished rounds from SQLite to the archive. It is
// driven by AMQP round events, with a periodic sweep as backup for lost
// messages.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	archive   sheets.RoundArchiver
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, archive sheets.RoundArchiver, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		archive:   archive,
		batchSize: batchSize,
	}
}

// HandleRoundEvent processes a single round event from AMQP.
func (w *ExportWorker) HandleRoundEvent(ctx context.Context, ev *amqp.RoundEvent) error {
	slog.InfoContext(ctx, "Processing round event",
		"scorecard_id", ev.ScorecardID,
		"op", ev.Op)

	// Deleted rounds have nothing to archive; the archive keeps history.
	if ev.Op == amqp.OpDeleted {
		return nil
	}

	sc, err := w.storage.Get(ctx, ev.ScorecardID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Scorecard gone before archiving, skipping",
			"scorecard_id", ev.ScorecardID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get scorecard from storage: %w", err)
	}

	return w.archiveRound(ctx, sc.ID, sc.CourseName)
}

// ProcessUnexported archives any rounds the event stream missed.
func (w *ExportWorker) ProcessUnexported(ctx context.Context) error {
	pending, err := w.storage.ListUnexported(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unexported rounds: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing unexported rounds", "count", len(pending))

	for _, sc := range pending {
		if err := w.archiveRound(ctx, sc.ID, sc.CourseName); err != nil {
			slog.ErrorContext(ctx, "Failed to archive round", "id", sc.ID, "error", err)
			continue
		}
	}
	return nil
}

// StartupCheck archives a larger backlog once at worker startup, to recover
// from downtime.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.ListUnexported(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list unexported rounds for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No unexported rounds found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found unexported rounds on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, sc := range pending {
		if err := w.archiveRound(ctx, sc.ID, sc.CourseName); err != nil {
			slog.ErrorContext(ctx, "Failed to archive round during startup",
				"id", sc.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup archive completed",
		"total", len(pending),
		"archived", successCount,
		"errors", errorCount)
	return nil
}

func (w *ExportWorker) archiveRound(ctx context.Context, id, course string) error {
	sc, err := w.storage.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get scorecard: %w", err)
	}

	ref, err := w.archive.AppendRound(ctx, sc)
	if err != nil {
		return fmt.Errorf("append round to archive: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark round exported", "id", id, "error", err)
		// The append worked, so don't fail the event.
	}

	slog.InfoContext(ctx, "Round archived",
		"id", id,
		"course", course,
		"archive_ref", ref)
	return nil
}
