package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"anime-tracker/internal/adapters/storage/conn"
	"anime-tracker/internal/domain/animes"
)

func newSQLiteRepo(t *testing.T) *AnimesRepo {
	t.Helper()

	c := conn.New[*sql.DB](DriverSQLite, func(ctx context.Context) (*sql.DB, error) {
		return Open(ctx, DriverSQLite, ":memory:")
	}, (*sql.DB).Close, nil)
	t.Cleanup(func() { _ = c.Close() })

	return NewAnimesRepo(c)
}

func sampleAnime(now time.Time) animes.Anime {
	return animes.Anime{
		Name:            "Naruto",
		ImageURL:        "https://x/img.png",
		Status:          animes.StatusWatching,
		TotalEpisodes:   220,
		WatchedEpisodes: 50,
		Score:           8,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestAnimesRepo_SQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, sampleAnime(now))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}
	got := list[0]
	if got.ID != created.ID || got.Name != "Naruto" || got.Status != animes.StatusWatching ||
		got.TotalEpisodes != 220 || got.WatchedEpisodes != 50 || got.Score != 8 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps changed: %v %v", got.CreatedAt, got.UpdatedAt)
	}

	created.WatchedEpisodes = 221
	created.TotalEpisodes = 221
	created.UpdatedAt = now.Add(time.Minute)
	if _, err := repo.Update(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.WatchedEpisodes != 221 || fetched.TotalEpisodes != 221 || !fetched.UpdatedAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("update not persisted: %+v", fetched)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, animes.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, animes.ErrNotFound) {
		t.Fatalf("get after delete: expected ErrNotFound, got %v", err)
	}
}

func TestAnimesRepo_SQLite_UpdateMissing(t *testing.T) {
	repo := newSQLiteRepo(t)

	a := sampleAnime(time.Now().UTC())
	a.ID = "does-not-exist"
	if _, err := repo.Update(context.Background(), a); !errors.Is(err, animes.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnimesRepo_SQLite_ConstraintIsPersistenceError(t *testing.T) {
	repo := newSQLiteRepo(t)

	// sin pasar por el validador: la tabla también rechaza watched > total
	a := sampleAnime(time.Now().UTC())
	a.WatchedEpisodes = a.TotalEpisodes + 1

	_, err := repo.Create(context.Background(), a)
	var pe *animes.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	var verr *animes.ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("storage failure must not look like a validation error")
	}
}

func TestAnimesRepo_ConnectFailure(t *testing.T) {
	boom := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	c := conn.New[*sql.DB](DriverPostgres, func(ctx context.Context) (*sql.DB, error) {
		return nil, boom
	}, nil, nil)
	repo := NewAnimesRepo(c)

	_, err := repo.List(context.Background())
	var pe *animes.PersistenceError
	if !errors.As(err, &pe) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped connect error, got %v", err)
	}
}
