package animes

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultStatus = StatusPlanToWatch

	maxEpisodes = math.MaxInt32
)

// record es la forma que se valida: siempre el registro completo (o mergeado).
// Los tags json dan el nombre de campo que ve el cliente.
type record struct {
	Name            string  `json:"name" validate:"min=2"`
	ImageURL        string  `json:"imageUrl" validate:"url"`
	Status          string  `json:"status" validate:"animestatus"`
	TotalEpisodes   float64 `json:"totalEpisodes" validate:"integral,gte=1"`
	WatchedEpisodes float64 `json:"watchedEpisodes" validate:"integral,gte=0"`
	Score           float64 `json:"score" validate:"gte=0,lte=10,integral"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("animestatus", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("integral", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f) && math.Abs(f) <= maxEpisodes
	})

	return v
}

// ValidateForCreate completa defaults (status, watchedEpisodes, score) y valida.
// name, imageUrl y totalEpisodes son obligatorios.
func ValidateForCreate(in Input) (Anime, error) {
	var (
		rec     record
		missing []Violation
		present []string
	)

	if in.Name != nil {
		rec.Name = strings.TrimSpace(*in.Name)
		present = append(present, "Name")
	} else {
		missing = append(missing, Violation{Field: "name", Message: "is required"})
	}
	if in.ImageURL != nil {
		rec.ImageURL = strings.TrimSpace(*in.ImageURL)
		present = append(present, "ImageURL")
	} else {
		missing = append(missing, Violation{Field: "imageUrl", Message: "is required"})
	}
	if in.TotalEpisodes != nil {
		rec.TotalEpisodes = *in.TotalEpisodes
		present = append(present, "TotalEpisodes")
	} else {
		missing = append(missing, Violation{Field: "totalEpisodes", Message: "is required"})
	}

	rec.Status = string(DefaultStatus)
	if in.Status != nil {
		rec.Status = normalizeStatus(*in.Status)
	}
	if in.WatchedEpisodes != nil {
		rec.WatchedEpisodes = *in.WatchedEpisodes
	}
	if in.Score != nil {
		rec.Score = *in.Score
	}
	present = append(present, "Status", "WatchedEpisodes", "Score")

	violations := append(missing, check(rec, present)...)
	if in.TotalEpisodes != nil {
		violations = append(violations, crossCheck(rec, violations)...)
	}
	if len(violations) > 0 {
		return Anime{}, &ValidationError{Violations: violations}
	}
	return rec.toAnime(), nil
}

// ValidateForUpdate aplica patch sobre existing y valida el registro mergeado completo,
// incluida la relación watched <= total. No recorta valores.
func ValidateForUpdate(existing Anime, patch Input) (Anime, error) {
	rec := record{
		Name:            existing.Name,
		ImageURL:        existing.ImageURL,
		Status:          string(existing.Status),
		TotalEpisodes:   float64(existing.TotalEpisodes),
		WatchedEpisodes: float64(existing.WatchedEpisodes),
		Score:           float64(existing.Score),
	}

	if patch.Name != nil {
		rec.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ImageURL != nil {
		rec.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Status != nil {
		rec.Status = normalizeStatus(*patch.Status)
	}
	if patch.TotalEpisodes != nil {
		rec.TotalEpisodes = *patch.TotalEpisodes
	}
	if patch.WatchedEpisodes != nil {
		rec.WatchedEpisodes = *patch.WatchedEpisodes
	}
	if patch.Score != nil {
		rec.Score = *patch.Score
	}

	violations := check(rec, nil)
	violations = append(violations, crossCheck(rec, violations)...)
	if len(violations) > 0 {
		return Anime{}, &ValidationError{Violations: violations}
	}

	out := rec.toAnime()
	out.ID = existing.ID
	out.CreatedAt = existing.CreatedAt
	out.UpdatedAt = existing.UpdatedAt
	return out, nil
}

// check corre las reglas por campo. fields nil = todos.
func check(rec record, fields []string) []Violation {
	var err error
	if fields == nil {
		err = validate.Struct(rec)
	} else {
		err = validate.StructPartial(rec, fields...)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Field: "", Message: err.Error()}}
	}

	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// crossCheck solo opina cuando ambos campos son válidos por separado.
func crossCheck(rec record, prior []Violation) []Violation {
	verr := &ValidationError{Violations: prior}
	if verr.Has("watchedEpisodes") || verr.Has("totalEpisodes") {
		return nil
	}
	if rec.WatchedEpisodes <= rec.TotalEpisodes {
		return nil
	}
	return []Violation{{
		Field: "watchedEpisodes",
		Message: fmt.Sprintf("watchedEpisodes (%d) must not exceed totalEpisodes (%d)",
			int(rec.WatchedEpisodes), int(rec.TotalEpisodes)),
	}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "url":
		return "must be a valid URL"
	case "animestatus":
		names := make([]string, 0, len(Statuses))
		for _, s := range Statuses {
			names = append(names, string(s))
		}
		return "must be one of: " + strings.Join(names, ", ")
	case "integral":
		return "must be an integer"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func normalizeStatus(s string) string {
	if st, ok := ParseStatus(s); ok {
		return string(st)
	}
	return s
}

func (r record) toAnime() Anime {
	return Anime{
		Name:            r.Name,
		ImageURL:        r.ImageURL,
		Status:          Status(r.Status),
		TotalEpisodes:   int(r.TotalEpisodes),
		WatchedEpisodes: int(r.WatchedEpisodes),
		Score:           int(r.Score),
	}
}
