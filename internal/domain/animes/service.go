package animes

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// timestamp en UTC y a milisegundos: es la precisión que guarda Mongo.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Service) Create(ctx context.Context, in Input) (Anime, error) {
	a, err := ValidateForCreate(in)
	if err != nil {
		return Anime{}, err
	}

	now := s.timestamp()
	a.CreatedAt = now
	a.UpdatedAt = now

	return s.repo.Create(ctx, a)
}

func (s *Service) List(ctx context.Context) ([]Anime, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Anime, error) {
	if strings.TrimSpace(id) == "" {
		return Anime{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Update mergea patch sobre el registro actual y valida el resultado antes de escribir.
// Dos updates concurrentes sobre el mismo id: gana el último.
func (s *Service) Update(ctx context.Context, id string, patch Input) (Anime, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Anime{}, err
	}

	merged, err := ValidateForUpdate(current, patch)
	if err != nil {
		return Anime{}, err
	}
	merged.UpdatedAt = s.timestamp()

	return s.repo.Update(ctx, merged)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
