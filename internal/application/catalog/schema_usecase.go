package catalog

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-atributos/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
	"github.com/jhoicas/Catalogo-atributos/pkg/logger"
)

// SchemaUseCase consultas de esquema efectivo sobre instantáneas de lectura.
type SchemaUseCase struct {
	tx          TxRunner
	log         *logger.Logger
	rec         Recorder
	concurrency int
}

// NewSchemaUseCase construye el caso de uso. concurrency limita ResolveAll (mínimo 1).
func NewSchemaUseCase(tx TxRunner, log *logger.Logger, rec Recorder, concurrency int) *SchemaUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &SchemaUseCase{tx: tx, log: log.Component("schema"), rec: rec, concurrency: concurrency}
}

// ResolveEffectiveSchema esquema efectivo de la categoría: sus vínculos y los de cada ancestro,
// de la categoría hacia la raíz. ErrCategoryNotFound si no existe.
func (uc *SchemaUseCase) ResolveEffectiveSchema(ctx context.Context, categoryName string) (entity.EffectiveSchema, error) {
	var schema entity.EffectiveSchema
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		schema, err = domcatalog.NewResolver(repos.Categories, repos.Bindings).Resolve(ctx, categoryName)
		return err
	})
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		uc.rec.SchemaResolved(outcomeNotFound, 0)
		return entity.EffectiveSchema{}, err
	case err != nil:
		uc.rec.SchemaResolved(outcomeError, 0)
		return entity.EffectiveSchema{}, err
	}
	uc.rec.SchemaResolved(outcomeOK, schema.Depth)
	uc.log.Debug().
		Str("category", categoryName).
		Int("depth", schema.Depth).
		Int("entries", len(schema.Entries)).
		Msg("esquema resuelto")
	return schema, nil
}

// Resolve igual que ResolveEffectiveSchema, en forma de DTO.
func (uc *SchemaUseCase) Resolve(ctx context.Context, categoryName string) (*dto.SchemaResponse, error) {
	schema, err := uc.ResolveEffectiveSchema(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	out := dto.SchemaToResponse(schema)
	return &out, nil
}

// ResolveAll resuelve todas las categorías en paralelo (cada una en su propia instantánea),
// ordenadas por nombre.
func (uc *SchemaUseCase) ResolveAll(ctx context.Context) ([]dto.SchemaResponse, error) {
	var names []string
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		cats, err := repos.Categories.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			names = append(names, c.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]dto.SchemaResponse, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			s, err := uc.Resolve(gctx, name)
			if err != nil {
				return err
			}
			out[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Children nombres de las subcategorías directas.
func (uc *SchemaUseCase) Children(ctx context.Context, categoryName string) ([]string, error) {
	var names []string
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		g := domcatalog.NewCategoryGraph(repos.Categories)
		c, err := g.GetByName(ctx, categoryName)
		if err != nil {
			return err
		}
		children, err := g.ChildrenOf(ctx, c)
		if err != nil {
			return err
		}
		names = make([]string, 0, len(children))
		for _, ch := range children {
			names = append(names, ch.Name)
		}
		return nil
	})
	return names, err
}
