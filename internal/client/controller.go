// Package client mantiene en memoria la lista de animes del lado del cliente,
// sincronizada con la API después de cada mutación.
package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"anime-tracker/internal/domain/animes"
	"anime-tracker/internal/platform/httpclient"
)

// Anime es el registro tal como llega de la API.
type Anime = animes.AnimeResponse

// Input son los campos de un create/update; nil = no enviar.
type Input struct {
	Name            *string  `json:"name,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	Status          *string  `json:"status,omitempty"`
	TotalEpisodes   *int     `json:"totalEpisodes,omitempty"`
	WatchedEpisodes *int     `json:"watchedEpisodes,omitempty"`
	Score           *float64 `json:"score,omitempty"`
}

// Notifier muestra el resultado de cada acción (toast, stderr, etc).
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}

// Stats resume la lista seleccionada.
type Stats struct {
	Total           int
	WatchedEpisodes int
}

type Controller struct {
	api    *httpclient.Client
	notify Notifier

	mu      sync.RWMutex
	items   []Anime
	current animes.Status
}

func New(api *httpclient.Client, notify Notifier) *Controller {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Controller{
		api:     api,
		notify:  notify,
		current: animes.StatusWatching,
	}
}

// NewFromURL es un atajo para New con un httpclient sobre baseURL.
func NewFromURL(baseURL string, timeout time.Duration, notify Notifier) (*Controller, error) {
	api, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return New(api, notify), nil
}

type listEnvelope struct {
	Success bool    `json:"success"`
	Data    []Anime `json:"data"`
	Error   string  `json:"error"`
}

type itemEnvelope struct {
	Success bool   `json:"success"`
	Data    Anime  `json:"data"`
	Error   string `json:"error"`
}

// Load reemplaza el estado local por la lista del servidor.
func (c *Controller) Load(ctx context.Context) error {
	var env listEnvelope
	if err := c.api.DoJSON(ctx, http.MethodGet, "/api/animes", nil, &env); err != nil {
		c.notify.Failure("could not load animes", err)
		return err
	}
	if !env.Success {
		err := envelopeError(env.Error)
		c.notify.Failure("could not load animes", err)
		return err
	}

	c.mu.Lock()
	c.items = append([]Anime(nil), env.Data...)
	c.mu.Unlock()
	return nil
}

func (c *Controller) Add(ctx context.Context, in Input) (Anime, error) {
	var env itemEnvelope
	if err := c.api.DoJSON(ctx, http.MethodPost, "/api/animes", in, &env); err != nil {
		c.notify.Failure("could not add anime", err)
		return Anime{}, err
	}
	if !env.Success {
		err := envelopeError(env.Error)
		c.notify.Failure("could not add anime", err)
		return Anime{}, err
	}

	c.mu.Lock()
	c.items = append(c.items, env.Data)
	c.mu.Unlock()

	c.notify.Success("anime added")
	return env.Data, nil
}

func (c *Controller) Update(ctx context.Context, id string, in Input) (Anime, error) {
	var env itemEnvelope
	if err := c.api.DoJSON(ctx, http.MethodPut, "/api/animes/"+id, in, &env); err != nil {
		c.notify.Failure("could not update anime", err)
		return Anime{}, err
	}
	if !env.Success {
		err := envelopeError(env.Error)
		c.notify.Failure("could not update anime", err)
		return Anime{}, err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i] = env.Data
		}
	}
	c.mu.Unlock()

	c.notify.Success("anime updated")
	return env.Data, nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	var env itemEnvelope
	if err := c.api.DoJSON(ctx, http.MethodDelete, "/api/animes/"+id, nil, &env); err != nil {
		c.notify.Failure("could not delete anime", err)
		return err
	}
	if !env.Success {
		err := envelopeError(env.Error)
		c.notify.Failure("could not delete anime", err)
		return err
	}

	c.mu.Lock()
	out := c.items[:0]
	for _, a := range c.items {
		if a.ID != id {
			out = append(out, a)
		}
	}
	c.items = out
	c.mu.Unlock()

	c.notify.Success("anime deleted")
	return nil
}

// SetStatus cambia la lista visible. Un status desconocido se ignora.
func (c *Controller) SetStatus(s string) bool {
	st, ok := animes.ParseStatus(s)
	if !ok {
		return false
	}
	c.mu.Lock()
	c.current = st
	c.mu.Unlock()
	return true
}

func (c *Controller) Status() animes.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// All devuelve una copia de todo el estado local, en orden.
func (c *Controller) All() []Anime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Anime(nil), c.items...)
}

// Visible devuelve los animes del status seleccionado, en orden.
func (c *Controller) Visible() []Anime {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Anime, 0)
	for _, a := range c.items {
		if a.Status == c.current {
			out = append(out, a)
		}
	}
	return out
}

func (c *Controller) Stats() Stats {
	var s Stats
	for _, a := range c.Visible() {
		s.Total++
		s.WatchedEpisodes += a.WatchedEpisodes
	}
	return s
}

func envelopeError(msg string) error {
	if msg == "" {
		msg = "request failed"
	}
	return errors.New(msg)
}

type nopNotifier struct{}

func (nopNotifier) Success(string)        {}
func (nopNotifier) Failure(string, error) {}
