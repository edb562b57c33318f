package graphrepo

import (
	"context"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

// NewSet repositorios atados a tx.
func NewSet(tx graph.Tx) repository.Set {
	return repository.Set{
		Categories: NewCategoryRepository(tx),
		Attributes: NewAttributeRepository(tx),
		Bindings:   NewBindingRepository(tx),
		Products:   NewProductRepository(tx),
		Auxiliary:  NewAuxiliaryRepository(tx),
	}
}

// TxRunner ejecuta callbacks con repositorios atados a una transacción del almacén.
type TxRunner struct {
	store graph.Store
}

// NewTxRunner construye el runner con el almacén.
func NewTxRunner(store graph.Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una transacción de escritura, ejecuta fn con repos atados a la tx y confirma o descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	return r.store.Update(ctx, func(tx graph.Tx) error {
		return fn(NewSet(tx))
	})
}

// View ejecuta fn sobre una instantánea de lectura.
func (r *TxRunner) View(ctx context.Context, fn func(repos repository.Set) error) error {
	return r.store.View(ctx, func(tx graph.Tx) error {
		return fn(NewSet(tx))
	})
}
