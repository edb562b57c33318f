package cli

import (
	"errors"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
)

// errorCodes orden de evaluación: el primero que coincide gana. Los errores de escritura llegan
// envueltos en ErrTransactionAborted, por eso las causas concretas van antes.
var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrRequiredAttributeMissing, "REQUIRED_ATTRIBUTE_MISSING"},
	{domain.ErrCategoryNotFound, "CATEGORY_NOT_FOUND"},
	{domain.ErrInvalidUnit, "INVALID_UNIT"},
	{domain.ErrDuplicateParent, "DUPLICATE_PARENT"},
	{domain.ErrCategoryCycle, "CATEGORY_CYCLE"},
	{domain.ErrUnresolvedParent, "UNRESOLVED_PARENT"},
	{domain.ErrCardinalityViolation, "CARDINALITY_VIOLATION"},
	{domain.ErrTransactionAborted, "TRANSACTION_ABORTED"},
	{domain.ErrDuplicate, "DUPLICATE"},
	{domain.ErrAttributeNotFound, "ATTRIBUTE_NOT_FOUND"},
	{domain.ErrUnknownAuxiliaryKind, "UNKNOWN_AUXILIARY_KIND"},
	{domain.ErrInvalidInput, "VALIDATION"},
	{domain.ErrNotFound, "NOT_FOUND"},
}

// ErrorCode código estable para err; INTERNAL si no es un error de dominio.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "INTERNAL"
}

// ToErrorResponse cuerpo de error impreso en stderr.
func ToErrorResponse(err error) dto.ErrorResponse {
	return dto.ErrorResponse{Code: ErrorCode(err), Message: err.Error()}
}
