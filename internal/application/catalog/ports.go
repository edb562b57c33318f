// Package catalog casos de uso del catálogo: importación, resolución de esquemas y alta de productos.
package catalog

import (
	"context"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados
// a esa tx. Run confirma todo o nada; View es una instantánea de solo lectura.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
	View(ctx context.Context, fn func(repos repository.Set) error) error
}

// Recorder métricas de los casos de uso (implementado por infrastructure/metrics).
type Recorder interface {
	SchemaResolved(outcome string, depth int)
	Validated(outcome string)
	ProductCreated()
	TransactionAborted()
}

type nopRecorder struct{}

func (nopRecorder) SchemaResolved(string, int) {}
func (nopRecorder) Validated(string)           {}
func (nopRecorder) ProductCreated()            {}
func (nopRecorder) TransactionAborted()        {}

// Resultados (mismos valores que infrastructure/metrics).
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeMissing  = "required_missing"
	outcomeError    = "error"
)
