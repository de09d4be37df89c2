package animes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"anime-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ListingPath es la vista que se invalida después de cada mutación.
const ListingPath = "/"

// Revalidator recibe la señal de "la lista cambió" después de cada mutación exitosa.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

func RegisterRoutes(r chi.Router, svc *Service, rv Revalidator, log logger.Logger) {
	h := &handlers{svc: svc, rv: rv, log: log}

	r.Route("/api/animes", func(ar chi.Router) {
		ar.Get("/", h.list)
		ar.Post("/", h.create)

		ar.Get("/{id}", h.get)
		ar.Put("/{id}", h.update)
		ar.Patch("/{id}", h.update)
		ar.Delete("/{id}", h.delete)
	})
}

type handlers struct {
	svc *Service
	rv  Revalidator
	log logger.Logger
}

// animeRequest es el cuerpo de POST/PUT. Todos los campos son opcionales en PUT.
type animeRequest struct {
	Name            *string  `json:"name" example:"Naruto"`
	ImageURL        *string  `json:"imageUrl" example:"https://example.com/naruto.png"`
	Status          *string  `json:"status" enums:"Assistindo,Completo,Dropado,Planejo Assistir"`
	TotalEpisodes   *float64 `json:"totalEpisodes" example:"220"`
	WatchedEpisodes *float64 `json:"watchedEpisodes" example:"50"`
	Score           *float64 `json:"score" example:"8"`
}

// AnimeResponse es un anime tal como lo devuelve la API.
type AnimeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"imageUrl"`
	Status          Status    `json:"status"`
	TotalEpisodes   int       `json:"totalEpisodes"`
	WatchedEpisodes int       `json:"watchedEpisodes"`
	Score           int       `json:"score"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Envelope es la respuesta uniforme de todos los endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    any         `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []Violation `json:"details,omitempty"`
}

// list godoc
// @Summary Listar animes
// @Description Devuelve todos los animes, sin filtro ni orden garantizado.
// @Tags animes
// @Produce json
// @Success 200 {object} Envelope{data=[]AnimeResponse}
// @Failure 500 {object} Envelope
// @Router /api/animes [get]
func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	out := make([]AnimeResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimeResponse(a))
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: out})
}

// get godoc
// @Summary Obtener un anime
// @Tags animes
// @Produce json
// @Param id path string true "ID del anime"
// @Success 200 {object} Envelope{data=AnimeResponse}
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/animes/{id} [get]
func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: toAnimeResponse(a)})
}

// create godoc
// @Summary Crear anime
// @Description status, watchedEpisodes y score tienen defaults (Planejo Assistir, 0, 0).
// @Tags animes
// @Accept json
// @Produce json
// @Param body body animeRequest true "Anime"
// @Success 201 {object} Envelope{data=AnimeResponse}
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/animes [post]
func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	h.revalidate(w, r)
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: toAnimeResponse(a)})
}

// update godoc
// @Summary Actualizar anime
// @Description Update parcial: los campos enviados se mergean sobre el registro y se valida el resultado completo.
// @Tags animes
// @Accept json
// @Produce json
// @Param id path string true "ID del anime"
// @Param body body animeRequest true "Campos a cambiar"
// @Success 200 {object} Envelope{data=AnimeResponse}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/animes/{id} [put]
func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}

	h.revalidate(w, r)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: toAnimeResponse(a)})
}

// delete godoc
// @Summary Borrar anime
// @Tags animes
// @Produce json
// @Param id path string true "ID del anime"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/animes/{id} [delete]
func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete", err)
		return
	}

	h.revalidate(w, r)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "anime deleted"})
}

func decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req animeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Error: "invalid json"})
		return Input{}, false
	}
	return Input{
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		Status:          req.Status,
		TotalEpisodes:   req.TotalEpisodes,
		WatchedEpisodes: req.WatchedEpisodes,
		Score:           req.Score,
	}, true
}

// fail traduce errores del dominio a status HTTP:
// validación -> 400, id inexistente -> 404, storage -> 500 (igual para todos los verbos).
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, Envelope{
			Success: false,
			Error:   verr.Error(),
			Details: verr.Violations,
		})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, Envelope{Success: false, Error: ErrNotFound.Error()})
	default:
		h.log.Error("anime operation failed", map[string]any{
			"op":     op,
			"path":   r.URL.Path,
			"method": r.Method,
			"error":  err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, Envelope{Success: false, Error: "internal error"})
	}
}

func (h *handlers) revalidate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Revalidate", ListingPath)
	if h.rv != nil {
		h.rv.Revalidate(r.Context(), ListingPath)
	}
}

func toAnimeResponse(a Anime) AnimeResponse {
	return AnimeResponse{
		ID:              a.ID,
		Name:            a.Name,
		ImageURL:        a.ImageURL,
		Status:          a.Status,
		TotalEpisodes:   a.TotalEpisodes,
		WatchedEpisodes: a.WatchedEpisodes,
		Score:           a.Score,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
