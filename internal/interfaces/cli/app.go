// Package cli comandos cobra del catálogo: importación, esquemas efectivos, alta y consulta de
// productos y una demostración en memoria. La salida es JSON indentado en stdout; los errores se
// imprimen como dto.ErrorResponse en stderr.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jhoicas/Catalogo-atributos/internal/application/catalog"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
	badgerstore "github.com/jhoicas/Catalogo-atributos/internal/infrastructure/badger"
	"github.com/jhoicas/Catalogo-atributos/internal/infrastructure/graphrepo"
	"github.com/jhoicas/Catalogo-atributos/internal/infrastructure/metrics"
	"github.com/jhoicas/Catalogo-atributos/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-atributos/pkg/config"
	"github.com/jhoicas/Catalogo-atributos/pkg/logger"
)

// Options dependencias externas de la CLI.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    io.Writer // destino del log; por defecto Stderr
	// LoadConfig por defecto config.Load.
	LoadConfig func() (*config.Config, error)
}

// app estado de una ejecución: configuración, almacén abierto y casos de uso cableados.
type app struct {
	opts    Options
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics

	store    graph.Store
	imports  *catalog.ImportUseCase
	schemas  *catalog.SchemaUseCase
	products *catalog.CreateProductUseCase
}

func (a *app) init() error {
	if a.cfg != nil {
		return nil
	}
	load := a.opts.LoadConfig
	if load == nil {
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	a.cfg = cfg
	out := a.opts.Log
	if out == nil {
		out = a.opts.Stderr
	}
	a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: out})
	a.metrics = metrics.New()
	return nil
}

// open abre el almacén configurado (o uno en memoria) y cablea los casos de uso.
func (a *app) open(ctx context.Context, inMemory bool) error {
	if a.store != nil {
		return nil
	}
	store, err := a.openStore(ctx, inMemory)
	if err != nil {
		return err
	}
	a.store = store

	runner := graphrepo.NewTxRunner(store)
	a.imports = catalog.NewImportUseCase(runner, a.log)
	a.schemas = catalog.NewSchemaUseCase(runner, a.log, a.metrics, a.cfg.Catalog.ResolveConcurrency)
	a.products = catalog.NewCreateProductUseCase(runner, a.schemas, a.log, a.metrics, catalog.ProductOptions{
		SKURange:       a.cfg.Catalog.SKURange,
		SKUMaxAttempts: a.cfg.Catalog.SKUMaxAttempts,
	})
	return nil
}

func (a *app) openStore(ctx context.Context, inMemory bool) (graph.Store, error) {
	if inMemory || a.cfg.Store.Driver == config.DriverBadger {
		cfg := badgerstore.Config{
			Path:       a.cfg.Badger.Path,
			InMemory:   inMemory || a.cfg.Badger.InMemory,
			SyncWrites: a.cfg.Badger.SyncWrites,
		}
		zl := a.log.Zerolog()
		store, err := badgerstore.Open(cfg, &zl)
		if err != nil {
			return nil, err
		}
		a.log.Debug().Bool("in_memory", cfg.InMemory).Str("path", cfg.Path).Msg("almacén badger abierto")
		return store, nil
	}

	pool, err := postgres.NewPool(ctx, a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	store := postgres.NewGraphStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	a.log.Debug().Msg("almacén postgres listo")
	return store, nil
}

// close vuelca las métricas y cierra el almacén.
func (a *app) close() {
	if a.cfg == nil {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.File); err != nil {
		a.log.Warn().Err(err).Str("file", a.cfg.Metrics.File).Msg("no se pudieron escribir las métricas")
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("cerrar almacén")
		}
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.opts.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
