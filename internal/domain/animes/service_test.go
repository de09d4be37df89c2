package animes

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[string]Anime
	seq    int
	writes int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Anime{}}
}

func (r *testRepo) Ping(ctx context.Context) error { return nil }

func (r *testRepo) List(ctx context.Context) ([]Anime, error) {
	out := make([]Anime, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Anime, error) {
	a, ok := r.byID[id]
	if !ok {
		return Anime{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) Create(ctx context.Context, a Anime) (Anime, error) {
	r.seq++
	r.writes++
	a.ID = "a" + strconv.Itoa(r.seq)
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRepo) Update(ctx context.Context, a Anime) (Anime, error) {
	if _, ok := r.byID[a.ID]; !ok {
		return Anime{}, ErrNotFound
	}
	r.writes++
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Helpers
// -------------------------

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService() (*Service, *testRepo, *clock) {
	repo := newTestRepo()
	c := &clock{t: time.Date(2026, 10, 16, 9, 30, 0, 123456789, time.FixedZone("BRT", -3*3600))}
	svc := NewService(repo)
	svc.now = c.now
	return svc, repo, c
}

// -------------------------
// Tests
// -------------------------

func TestService_CreateSetsTimestamps(t *testing.T) {
	svc, _, c := newTestService()

	a, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := c.t.UTC().Truncate(time.Millisecond)
	if a.ID == "" {
		t.Fatalf("expected id")
	}
	if !a.CreatedAt.Equal(want) || !a.UpdatedAt.Equal(want) {
		t.Fatalf("timestamps = %v/%v, want %v", a.CreatedAt, a.UpdatedAt, want)
	}
	if a.CreatedAt.Location() != time.UTC {
		t.Fatalf("timestamps must be UTC")
	}
}

func TestService_InvalidCreateDoesNotWrite(t *testing.T) {
	svc, repo, _ := newTestService()

	in := validInput()
	in.WatchedEpisodes = num(500)
	_, err := svc.Create(context.Background(), in)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.writes != 0 {
		t.Fatalf("repo should not be touched, got %d writes", repo.writes)
	}
}

func TestService_UpdateMergesAndBumpsUpdatedAt(t *testing.T) {
	svc, repo, c := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, validInput())
	c.t = c.t.Add(time.Hour)

	updated, err := svc.Update(ctx, created.ID, Input{Score: num(9), Status: str("Completo")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Score != 9 || updated.Status != StatusCompleted || updated.Name != created.Name {
		t.Fatalf("unexpected merge: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt changed")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt not bumped")
	}
	if repo.byID[created.ID] != updated {
		t.Fatalf("repo not updated")
	}
}

func TestService_UpdateRejectsInconsistentMerge(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, validInput())
	writes := repo.writes

	if _, err := svc.Update(ctx, created.ID, Input{TotalEpisodes: num(49)}); err == nil {
		t.Fatalf("expected validation error")
	}
	if repo.writes != writes {
		t.Fatalf("rejected update must not write")
	}
	if repo.byID[created.ID] != created {
		t.Fatalf("stored record changed")
	}
}

func TestService_MissingIDs(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Update(ctx, "nope", Input{Score: num(1)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(ctx, "  "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get blank: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete blank: expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteTwice(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, validInput())
	b, _ := svc.Create(ctx, validInput())

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, ok := repo.byID[b.ID]; !ok || len(repo.byID) != 1 {
		t.Fatalf("other records must survive: %+v", repo.byID)
	}
}

func TestPersistenceWrapping(t *testing.T) {
	if Persistence("x", nil) != nil {
		t.Fatalf("nil stays nil")
	}
	if !errors.Is(Persistence("x", ErrNotFound), ErrNotFound) {
		t.Fatalf("not found is not wrapped")
	}
	var pe *PersistenceError
	if errors.As(Persistence("x", ErrNotFound), &pe) {
		t.Fatalf("not found must not become a persistence error")
	}

	cause := errors.New("timeout")
	err := Persistence("list", cause)
	if !errors.As(err, &pe) || pe.Op != "list" || !errors.Is(err, cause) {
		t.Fatalf("unexpected wrap: %v", err)
	}
	if Persistence("outer", err) != err {
		t.Fatalf("already wrapped errors are kept as-is")
	}
}
