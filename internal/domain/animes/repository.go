package animes

import "context"

// Repository es el acceso a la colección de animes.
// Create asigna el ID. Update y Delete devuelven ErrNotFound si el id no existe.
// Cualquier otra falla se reporta como *PersistenceError.
type Repository interface {
	List(ctx context.Context) ([]Anime, error)
	GetByID(ctx context.Context, id string) (Anime, error)
	Create(ctx context.Context, a Anime) (Anime, error)
	Update(ctx context.Context, a Anime) (Anime, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
