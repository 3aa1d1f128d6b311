package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("categoría no encontrada")
	ErrValidation    = errors.New("entrada inválida")
	ErrPersistence   = errors.New("error de persistencia de sesión")
	ErrLoginInFlight = errors.New("ya hay un inicio de sesión en curso")
)

// ErrEmptyCategoryName es el ErrValidation que devuelve el catálogo ante un nombre vacío.
var ErrEmptyCategoryName = &ValidationError{Field: "name", Reason: "el nombre de la categoría no puede estar vacío"}

// ValidationError detalla qué campo falló. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Is permite comparar con ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
