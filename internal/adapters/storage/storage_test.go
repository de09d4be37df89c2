package storage

import (
	"context"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		uri, backend, target string
	}{
		{"memory://", BackendMemory, ""},
		{"mongodb://localhost:27017/animes", BackendMongo, "mongodb://localhost:27017/animes"},
		{"mongodb+srv://u:p@cluster0.example.net/", BackendMongo, "mongodb+srv://u:p@cluster0.example.net/"},
		{"postgres://u:p@localhost:5432/animes?sslmode=disable", BackendPostgres, "postgres://u:p@localhost:5432/animes?sslmode=disable"},
		{"sqlite://./animes.db", BackendSQLite, "./animes.db"},
		{"sqlite::memory:", BackendSQLite, ":memory:"},
	}
	for _, c := range cases {
		backend, target, err := Parse(c.uri)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.uri, err)
		}
		if backend != c.backend || target != c.target {
			t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)", c.uri, backend, target, c.backend, c.target)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	if _, _, err := Parse("redis://localhost:6379"); !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
	}
	if _, _, err := Parse(""); err == nil {
		t.Fatalf("expected error for empty uri")
	}
}

func TestOpen_SQLiteIsLazy(t *testing.T) {
	st, err := Open(Options{URI: "sqlite::memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	if st.Backend != BackendSQLite {
		t.Fatalf("backend = %q", st.Backend)
	}
	if err := st.Repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	items, err := st.Repo.List(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v %v", items, err)
	}
}
