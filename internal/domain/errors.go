package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConstraint        = errors.New("violación de integridad referencial")
	ErrInvoiceNotCreated = errors.New("no se pudo crear la factura")
)

// ValidationError detalle por campo de una entrada rechazada antes de tocar el almacenamiento.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields map[string]string // campo -> código (required, invalid_email, must_be_positive, ...)
}

// Códigos de validación por campo.
const (
	CodeRequired       = "required"
	CodeInvalidEmail   = "invalid_email"
	CodeMustBePositive = "must_be_positive"
	CodeNegative       = "must_not_be_negative"
	CodeInvalidNumber  = "invalid_number"
)

// Add registra un fallo para el campo (el primero gana).
func (e *ValidationError) Add(field, code string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = code
	}
}

// Empty indica que no hay fallos registrados.
func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

// OrNil devuelve el error solo si hay fallos; evita el típico nil tipado.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
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
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
