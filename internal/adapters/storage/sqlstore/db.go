package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS animes (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	image_url        TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'Planejo Assistir'
		CHECK (status IN ('Assistindo', 'Completo', 'Dropado', 'Planejo Assistir')),
	total_episodes   INTEGER NOT NULL CHECK (total_episodes >= 1),
	watched_episodes INTEGER NOT NULL DEFAULT 0 CHECK (watched_episodes >= 0),
	score            INTEGER NOT NULL DEFAULT 0 CHECK (score BETWEEN 0 AND 10),
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL,
	CHECK (watched_episodes <= total_episodes)
)`

// Open abre el pool (pgx o sqlite3 vía database/sql), hace ping y asegura la tabla.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		// una sola conexión: con :memory: cada conexión nueva sería otra base vacía
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}
