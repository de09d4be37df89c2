package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"anime-tracker/internal/domain/animes"

	"github.com/google/uuid"
)

type animeRepo struct {
	mu   sync.RWMutex
	byID map[string]animes.Anime
}

func NewAnimeRepo() animes.Repository {
	return &animeRepo{
		byID: make(map[string]animes.Anime),
	}
}

func (r *animeRepo) Ping(ctx context.Context) error { return nil }

func (r *animeRepo) List(ctx context.Context) ([]animes.Anime, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animes.Anime, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *animeRepo) GetByID(ctx context.Context, id string) (animes.Anime, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return animes.Anime{}, animes.ErrNotFound
	}
	return a, nil
}

func (r *animeRepo) Create(ctx context.Context, a animes.Anime) (animes.Anime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = uuid.NewString()
	r.byID[a.ID] = a
	return a, nil
}

func (r *animeRepo) Update(ctx context.Context, a animes.Anime) (animes.Anime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return animes.Anime{}, animes.ErrNotFound
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *animeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = strings.TrimSpace(id)
	if _, exists := r.byID[id]; !exists {
		return animes.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
