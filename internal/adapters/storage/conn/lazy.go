package conn

import (
	"context"
	"sync"

	"anime-tracker/internal/platform/logger"
	"anime-tracker/internal/platform/metrics"

	"golang.org/x/sync/singleflight"
)

// OpenFunc abre la conexión real (y la valida, p.ej. con un ping).
type OpenFunc[T any] func(ctx context.Context) (T, error)

// Lazy guarda el handle compartido por todo el proceso.
// Estados: sin inicializar, conectando (un único intento en vuelo) o listo.
// Si el intento falla no se cachea: el próximo Connect vuelve a intentar.
type Lazy[T any] struct {
	backend string
	open    OpenFunc[T]
	closeFn func(T) error
	log     logger.Logger

	// OnConnect se llama una vez por conexión establecida (tests/observabilidad).
	OnConnect func(backend string)

	mu    sync.RWMutex
	ready bool
	value T

	group singleflight.Group
}

func New[T any](backend string, open OpenFunc[T], closeFn func(T) error, log logger.Logger) *Lazy[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Lazy[T]{
		backend: backend,
		open:    open,
		closeFn: closeFn,
		log:     log,
	}
}

func (l *Lazy[T]) Backend() string { return l.backend }

// Connect devuelve el handle listo, se suma al intento en curso o inicia uno.
// El intento compartido no depende del ctx de un request puntual: si quien lo
// inició cancela, los demás no pierden la conexión.
func (l *Lazy[T]) Connect(ctx context.Context) (T, error) {
	if v, ok := l.current(); ok {
		return v, nil
	}

	ch := l.group.DoChan("connect", func() (any, error) {
		if v, ok := l.current(); ok {
			return v, nil
		}

		v, err := l.open(context.WithoutCancel(ctx))
		if err != nil {
			l.log.Warn("storage connection failed", map[string]any{
				"backend": l.backend,
				"error":   err.Error(),
			})
			return nil, err
		}

		l.mu.Lock()
		l.value = v
		l.ready = true
		l.mu.Unlock()

		metrics.DBConnections.WithLabelValues(l.backend).Inc()
		l.log.Info("storage connection established", map[string]any{"backend": l.backend})
		if l.OnConnect != nil {
			l.OnConnect(l.backend)
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Close libera el handle. Solo se usa al apagar el proceso.
func (l *Lazy[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.ready {
		return nil
	}
	var err error
	if l.closeFn != nil {
		err = l.closeFn(l.value)
	}
	var zero T
	l.value = zero
	l.ready = false
	return err
}

func (l *Lazy[T]) current() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.ready
}
