package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
)

// Error es un error de dominio con tipo (uno de los sentinels) y mensaje legible.
// errors.Is(err, domain.ErrNotFound) funciona sobre cualquier *Error de ese tipo.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound referencia desconocida o de otra empresa.
func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

// Invalid entrada que no supera la validación (cantidades, fechas, listas vacías).
func Invalid(format string, args ...any) error { return newError(ErrInvalidInput, format, args...) }

// InsufficientStock la cantidad pedida supera el stock disponible.
func InsufficientStock(format string, args ...any) error {
	return newError(ErrInsufficientStock, format, args...)
}

// Conflict violación de unicidad (producto repetido en una misma transacción).
func Conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }

// Code devuelve el código de error expuesto al cliente.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	default:
		return "INTERNAL"
	}
}

// Message devuelve el mensaje legible de un error de dominio, o el texto del error si no lo es.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}
