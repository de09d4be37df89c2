package animes

import (
	"strings"
	"time"
)

// Status define la lista en la que está el anime.
// @Enum Assistindo, Completo, Dropado, Planejo Assistir
type Status string

const (
	StatusWatching    Status = "Assistindo"
	StatusCompleted   Status = "Completo"
	StatusDropped     Status = "Dropado"
	StatusPlanToWatch Status = "Planejo Assistir"
)

// Statuses en el orden en que se muestran las pestañas.
var Statuses = []Status{StatusWatching, StatusCompleted, StatusDropped, StatusPlanToWatch}

// aliases en inglés aceptados como input; siempre se persiste el valor canónico.
var statusAliases = map[string]Status{
	"watching":    StatusWatching,
	"completed":   StatusCompleted,
	"dropped":     StatusDropped,
	"plantowatch": StatusPlanToWatch,
}

// ParseStatus normaliza un status recibido por la API. ok=false si no es uno de los cuatro.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	if st, ok := statusAliases[strings.ToLower(s)]; ok {
		return st, true
	}
	return "", false
}

// Valid reporta si s es uno de los valores canónicos (sin aliases).
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Anime es un registro de la lista personal.
type Anime struct {
	ID string

	Name     string
	ImageURL string
	Status   Status

	TotalEpisodes   int
	WatchedEpisodes int
	Score           int // 0..10, entero

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input es el payload de create/update. nil = campo no enviado.
type Input struct {
	Name            *string
	ImageURL        *string
	Status          *string
	TotalEpisodes   *float64
	WatchedEpisodes *float64
	Score           *float64
}
