package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"anime-tracker/internal/adapters/storage/conn"
	"anime-tracker/internal/domain/animes"

	"github.com/google/uuid"
)

// Los placeholders van siempre en orden creciente: sqlite numera $N por orden de aparición.
const selectColumns = `
	SELECT
		id,
		name, image_url, status,
		total_episodes, watched_episodes, score,
		created_at, updated_at
	FROM animes`

type AnimesRepo struct {
	conn *conn.Lazy[*sql.DB]
}

func NewAnimesRepo(c *conn.Lazy[*sql.DB]) *AnimesRepo {
	return &AnimesRepo{conn: c}
}

func (r *AnimesRepo) Ping(ctx context.Context) error {
	db, err := r.conn.Connect(ctx)
	if err != nil {
		return animes.Persistence("connect", err)
	}
	return animes.Persistence("ping", db.PingContext(ctx))
}

func (r *AnimesRepo) List(ctx context.Context) ([]animes.Anime, error) {
	db, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, animes.Persistence("connect", err)
	}

	rows, err := db.QueryContext(ctx, selectColumns+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, animes.Persistence("list", err)
	}
	defer rows.Close()

	out := make([]animes.Anime, 0)
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, animes.Persistence("list", err)
		}
		out = append(out, a)
	}

	return out, animes.Persistence("list", rows.Err())
}

func (r *AnimesRepo) GetByID(ctx context.Context, id string) (animes.Anime, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animes.Anime{}, animes.ErrNotFound
	}

	db, err := r.conn.Connect(ctx)
	if err != nil {
		return animes.Anime{}, animes.Persistence("connect", err)
	}

	a, err := scanAnime(db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animes.Anime{}, animes.ErrNotFound
		}
		return animes.Anime{}, animes.Persistence("get", err)
	}
	return a, nil
}

func (r *AnimesRepo) Create(ctx context.Context, a animes.Anime) (animes.Anime, error) {
	db, err := r.conn.Connect(ctx)
	if err != nil {
		return animes.Anime{}, animes.Persistence("connect", err)
	}

	a.ID = uuid.NewString()
	_, err = db.ExecContext(ctx, `
		INSERT INTO animes (
			id,
			name, image_url, status,
			total_episodes, watched_episodes, score,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.Name,
		a.ImageURL,
		string(a.Status),
		a.TotalEpisodes,
		a.WatchedEpisodes,
		a.Score,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return animes.Anime{}, animes.Persistence("create", err)
	}
	return a, nil
}

func (r *AnimesRepo) Update(ctx context.Context, a animes.Anime) (animes.Anime, error) {
	db, err := r.conn.Connect(ctx)
	if err != nil {
		return animes.Anime{}, animes.Persistence("connect", err)
	}

	res, err := db.ExecContext(ctx, `
		UPDATE animes
		SET
			name = $1,
			image_url = $2,
			status = $3,
			total_episodes = $4,
			watched_episodes = $5,
			score = $6,
			updated_at = $7
		WHERE id = $8
	`,
		a.Name,
		a.ImageURL,
		string(a.Status),
		a.TotalEpisodes,
		a.WatchedEpisodes,
		a.Score,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return animes.Anime{}, animes.Persistence("update", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animes.Anime{}, animes.ErrNotFound
	}
	return a, nil
}

func (r *AnimesRepo) Delete(ctx context.Context, id string) error {
	db, err := r.conn.Connect(ctx)
	if err != nil {
		return animes.Persistence("connect", err)
	}

	res, err := db.ExecContext(ctx, `DELETE FROM animes WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return animes.Persistence("delete", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animes.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnime(s scanner) (animes.Anime, error) {
	var (
		a      animes.Anime
		status string
	)
	if err := s.Scan(
		&a.ID,
		&a.Name,
		&a.ImageURL,
		&status,
		&a.TotalEpisodes,
		&a.WatchedEpisodes,
		&a.Score,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animes.Anime{}, err
	}
	a.Status = animes.Status(status)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
