package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("recurso duplicado")
	ErrCategoryNotFound         = errors.New("categoría no encontrada")
	ErrAttributeNotFound        = errors.New("atributo no encontrado")
	ErrInvalidUnit              = errors.New("unidad de atributo inválida")
	ErrDuplicateParent          = errors.New("la categoría ya tiene una supercategoría")
	ErrCategoryCycle            = errors.New("la jerarquía de categorías contiene un ciclo")
	ErrUnresolvedParent         = errors.New("supercategoría no resuelta")
	ErrRequiredAttributeMissing = errors.New("atributo requerido ausente")
	ErrUnknownAuxiliaryKind     = errors.New("tipo de registro auxiliar desconocido")
	ErrCardinalityViolation     = errors.New("violación de cardinalidad de relación")
	ErrTransactionAborted       = errors.New("transacción abortada")
)

// RequiredAttributeMissingError detalla qué atributo falta y para qué categoría.
// errors.Is(err, ErrRequiredAttributeMissing) es verdadero.
type RequiredAttributeMissingError struct {
	Attribute string
	Category  string
}

func (e *RequiredAttributeMissingError) Error() string {
	return fmt.Sprintf("el atributo %q es requerido para %q pero no fue provisto", e.Attribute, e.Category)
}

// Is permite comparar contra el sentinel.
func (e *RequiredAttributeMissingError) Is(target error) bool {
	return target == ErrRequiredAttributeMissing
}
