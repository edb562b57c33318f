// Package badger implementa graph.Store sobre BadgerDB (almacenamiento embebido con transacciones
// serializables optimistas). Es el almacén por defecto de la CLI y el de los tests (modo en memoria).
package badger

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Config configuración de la instancia BadgerDB.
type Config struct {
	Path       string // obligatorio salvo InMemory
	InMemory   bool
	SyncWrites bool
}

// InMemoryConfig configuración para tests: sin disco ni escrituras síncronas.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// zerologAdapter adapta zerolog al Logger de Badger.
type zerologAdapter struct {
	zl zerolog.Logger
}

func (l zerologAdapter) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l zerologAdapter) Warningf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l zerologAdapter) Infof(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l zerologAdapter) Debugf(format string, args ...interface{}) {
	l.zl.Trace().Msgf(format, args...)
}

// openDB abre la base. zl nil desactiva el log interno de Badger.
func openDB(cfg Config, zl *zerolog.Logger) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path es obligatorio para una base persistente")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("crear directorio %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if zl != nil {
		opts = opts.WithLogger(zerologAdapter{zl: zl.With().Str("component", "badger").Logger()})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("abrir badger: %w", err)
	}
	return db, nil
}
