package router

import (
	"context"
	"net/http"
	"time"

	_ "anime-tracker/docs"
	"anime-tracker/internal/domain/animes"
	"anime-tracker/internal/middleware"
	"anime-tracker/internal/platform/logger"
	"anime-tracker/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Repo es obligatorio; lo arma storage.Open según ANIME_DB_URI.
	Repo animes.Repository

	Logger logger.Logger // nil = Nop

	// Opcional: quién se entera de que la lista cambió. nil = solo log + métrica.
	Revalidator animes.Revalidator
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rv := opts.Revalidator
	if rv == nil {
		rv = listingRevalidator{log: log}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	svc := animes.NewService(opts.Repo)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			log.Warn("health check failed", map[string]any{"error": err.Error()})
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	animes.RegisterRoutes(r, svc, rv, log)

	return r
}

// listingRevalidator es el hook por defecto de invalidación de la lista.
type listingRevalidator struct {
	log logger.Logger
}

func (l listingRevalidator) Revalidate(_ context.Context, path string) {
	metrics.ListingRevalidations.WithLabelValues(path).Inc()
	l.log.Debug("listing invalidated", map[string]any{"path": path})
}
