package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

var _ graph.Store = (*Store)(nil)

// Store grafo sobre BadgerDB.
type Store struct {
	db     *badger.DB
	schema graph.Schema
	unique map[string][]string
}

// Open abre (o crea) el almacén. zl nil silencia el log interno de Badger.
func Open(cfg Config, zl *zerolog.Logger) (*Store, error) {
	db, err := openDB(cfg, zl)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, schema: graph.DefaultSchema(), unique: graph.UniqueProperties()}, nil
}

// View ejecuta fn en una transacción de solo lectura (instantánea consistente).
func (s *Store) View(ctx context.Context, fn func(tx graph.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&tx{txn: txn, store: s})
	})
}

// Update ejecuta fn en una transacción de escritura. Antes de confirmar verifica las cardinalidades
// mínimas de los nodos creados; cualquier error descarta todas las escrituras.
func (s *Store) Update(ctx context.Context, fn func(tx graph.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		t := &tx{txn: txn, store: s, writable: true}
		if err := fn(t); err != nil {
			return err
		}
		return s.schema.CheckCommit(ctx, t, t.created)
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: conflicto de escritura concurrente: %w", domain.ErrTransactionAborted, err)
	}
	return err
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}
