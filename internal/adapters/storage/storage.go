package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"anime-tracker/internal/adapters/storage/conn"
	mem "anime-tracker/internal/adapters/storage/memory"
	"anime-tracker/internal/adapters/storage/mongostore"
	"anime-tracker/internal/adapters/storage/sqlstore"
	"anime-tracker/internal/domain/animes"
	"anime-tracker/internal/platform/logger"
)

var ErrUnsupportedScheme = errors.New("unsupported storage uri scheme")

const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Options struct {
	URI            string
	Database       string // Mongo, si la URI no trae base
	ConnectTimeout time.Duration
	Log            logger.Logger
}

// Store agrupa el repo elegido y el cierre del handle compartido.
type Store struct {
	Backend string
	Repo    animes.Repository
	Close   func() error
}

// Open elige backend por el esquema de la URI. No abre conexiones:
// la primera operación del repo dispara el connect lazy.
func Open(opts Options) (Store, error) {
	uri := strings.TrimSpace(opts.URI)
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	backend, target, err := Parse(uri)
	if err != nil {
		return Store{}, err
	}
	log := opts.Log.With(map[string]any{"component": "storage"})

	switch backend {
	case BackendMemory:
		return Store{Backend: backend, Repo: mem.NewAnimeRepo(), Close: func() error { return nil }}, nil

	case BackendMongo:
		c := conn.New[*mongostore.Handle](backend, func(ctx context.Context) (*mongostore.Handle, error) {
			ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
			defer cancel()
			return mongostore.Open(ctx, target, opts.Database)
		}, (*mongostore.Handle).Close, log)
		return Store{Backend: backend, Repo: mongostore.NewAnimesRepo(c), Close: c.Close}, nil

	case BackendPostgres, BackendSQLite:
		driver := sqlstore.DriverPostgres
		if backend == BackendSQLite {
			driver = sqlstore.DriverSQLite
		}
		c := conn.New[*sql.DB](backend, func(ctx context.Context) (*sql.DB, error) {
			ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
			defer cancel()
			return sqlstore.Open(ctx, driver, target)
		}, (*sql.DB).Close, log)
		return Store{Backend: backend, Repo: sqlstore.NewAnimesRepo(c), Close: c.Close}, nil
	}

	return Store{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, backend)
}

// Parse devuelve el backend y el target que entiende su driver.
func Parse(uri string) (backend, target string, err error) {
	lower := strings.ToLower(uri)
	switch {
	case uri == "":
		return "", "", errors.New("storage uri is empty")
	case strings.HasPrefix(lower, "memory:"):
		return BackendMemory, "", nil
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return BackendMongo, uri, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, uri, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return BackendSQLite, uri[len("sqlite://"):], nil
	case strings.HasPrefix(lower, "sqlite:"):
		return BackendSQLite, uri[len("sqlite:"):], nil
	}

	scheme := uri
	if i := strings.Index(uri, ":"); i >= 0 {
		scheme = uri[:i]
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}
