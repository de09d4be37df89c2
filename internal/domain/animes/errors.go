package animes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("anime not found")
)

// Violation es una regla incumplida sobre un campo.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError junta todas las violaciones de un input (no corta en la primera).
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reporta si hay alguna violación para field.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// PersistenceError envuelve fallas del storage (conectividad, constraints).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence envuelve err salvo que ya sea ErrNotFound o nil.
func Persistence(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
