package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ graph.Store = (*GraphStore)(nil)

// GraphStore graph.Store sobre PostgreSQL: nodos y relaciones en tablas con propiedades JSONB.
type GraphStore struct {
	pool   *pgxpool.Pool
	schema graph.Schema
}

// NewGraphStore construye el almacén con el pool.
func NewGraphStore(pool *pgxpool.Pool) *GraphStore {
	return &GraphStore{pool: pool, schema: graph.DefaultSchema()}
}

// EnsureSchema aplica las migraciones embebidas en orden (idempotentes).
func (s *GraphStore) EnsureSchema(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		sql, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return nil
}

// View inicia una transacción de solo lectura REPEATABLE READ (instantánea) y ejecuta fn.
func (s *GraphStore) View(ctx context.Context, fn func(tx graph.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newGraphTx(tx, s.schema)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update inicia una transacción SERIALIZABLE, ejecuta fn, verifica cardinalidades mínimas y hace
// Commit o Rollback.
func (s *GraphStore) Update(ctx context.Context, fn func(tx graph.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	gtx := newGraphTx(tx, s.schema)
	if err := fn(gtx); err != nil {
		return s.translate(err)
	}
	if err := s.schema.CheckCommit(ctx, gtx, gtx.created); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return s.translate(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *GraphStore) translate(err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransactionAborted, err)
	}
	return err
}

// Close cierra el pool.
func (s *GraphStore) Close() error {
	s.pool.Close()
	return nil
}
