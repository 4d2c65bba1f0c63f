package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fairway/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "fairway.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testCard(id, course string) core.Scorecard {
	return core.Scorecard{
		ID:         id,
		CourseName: course,
		DatePlayed: core.NewDate(2025, 3, 1),
		Weather:    "Sunny",
		Holes: []core.Hole{
			{Number: 1, Par: 4, Score: 5},
			{Number: 2, Par: 3, Score: 3},
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testCard("a", "Pebble Beach")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CourseName != "Pebble Beach" || got.Weather != "Sunny" || got.Notes != "" {
		t.Fatalf("Get = %+v", got)
	}
	if got.DatePlayed.String() != "2025-03-01" {
		t.Fatalf("date = %s", got.DatePlayed)
	}
	if len(got.Holes) != 2 || got.Holes[0].Score != 5 {
		t.Fatalf("holes = %+v", got.Holes)
	}
}

func TestGetMissing(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	older := testCard("old", "Augusta")
	older.DatePlayed = core.NewDate(2024, 6, 1)
	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, testCard("new", "Pebble Beach")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cards, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "new" || cards[1].ID != "old" {
		t.Fatalf("List order wrong: %+v", cards)
	}
}

func TestUpdateReplacesHolesAndResetsExport(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testCard("a", "Pebble Beach")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.MarkExported(ctx, "a"); err != nil {
		t.Fatalf("MarkExported: %v", err)
	}

	updated := testCard("a", "Pebble Beach")
	updated.Holes = []core.Hole{{Number: 1, Par: 4, Score: 4}}
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Holes) != 1 || got.Holes[0].Score != 4 {
		t.Fatalf("holes not replaced: %+v", got.Holes)
	}

	pending, err := repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "a" {
		t.Fatalf("update should reset the exported flag: %+v", pending)
	}
}

func TestUpdateMissing(t *testing.T) {
	repo := testRepo(t)
	if err := repo.Update(context.Background(), testCard("missing", "X")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCascadesHoles(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testCard("a", "Pebble Beach")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestExportLifecycle(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testCard("a", "Pebble Beach")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	if err := repo.MarkExported(ctx, "a"); err != nil {
		t.Fatalf("MarkExported: %v", err)
	}
	pending, err = repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after export = %d, want 0", len(pending))
	}
}

func TestSeedSampleDataIsIdempotent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.SeedSampleData(ctx); err != nil {
		t.Fatalf("SeedSampleData: %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("seeded %d rounds, want 2", n)
	}

	if err := repo.SeedSampleData(ctx); err != nil {
		t.Fatalf("second SeedSampleData: %v", err)
	}
	if n, _ = repo.Count(ctx); n != 2 {
		t.Fatalf("seeding must not duplicate, got %d", n)
	}

	cards, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, sc := range cards {
		if len(sc.Holes) != core.HolesPerRound {
			t.Fatalf("seeded round %s has %d holes", sc.CourseName, len(sc.Holes))
		}
	}
}
