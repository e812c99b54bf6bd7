package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrWeakPassword       = errors.New("contraseña demasiado débil")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrRateLimited        = errors.New("demasiados intentos")
	ErrUnknownRole        = errors.New("rol desconocido")
	ErrConfirmationNeeded = errors.New("se requiere confirmación explícita")
	ErrUnavailable        = errors.New("servicio no disponible")
)

// ValidationError errores por campo; Order conserva el orden del formulario
// para poder enfocar el primer campo inválido.
type ValidationError struct {
	Fields map[string]string
	Order  []string
}

// NewValidationError crea un ValidationError vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra el primer mensaje de un campo; los siguientes se ignoran.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
	e.Order = append(e.Order, field)
}

// Empty indica si no hay errores.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// First devuelve el primer campo inválido en orden de formulario.
func (e *ValidationError) First() string {
	if e.Empty() {
		return ""
	}
	return e.Order[0]
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
