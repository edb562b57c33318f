package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-atributos/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
	"github.com/jhoicas/Catalogo-atributos/pkg/logger"
	"github.com/jhoicas/Catalogo-atributos/pkg/validation"
)

// ImportUseCase carga masiva de atributos y categorías.
type ImportUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx TxRunner, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{tx: tx, log: log.Component("import")}
}

// Import valida el lote completo antes de escribir nada, crea los atributos en una transacción y
// luego cada categoría (con su enlace al padre y sus vínculos) en su propia transacción, padres
// primero. Si falla una categoría, las ya creadas permanecen.
func (uc *ImportUseCase) Import(ctx context.Context, req dto.ImportRequest) (*dto.ImportResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	storedCats, storedAttrs, err := uc.storedNames(ctx)
	if err != nil {
		return nil, err
	}

	batchAttrs := make(map[string]struct{}, len(req.Attributes))
	for _, a := range req.Attributes {
		if _, dup := batchAttrs[a.Name]; dup {
			return nil, fmt.Errorf("%w: atributo %q repetido en la importación", domain.ErrDuplicate, a.Name)
		}
		if _, ok := storedAttrs[a.Name]; ok {
			return nil, fmt.Errorf("%w: atributo %q ya existe", domain.ErrDuplicate, a.Name)
		}
		if _, ok := entity.ParseUnit(a.Unit); !ok {
			return nil, fmt.Errorf("%w: %q para el atributo %q", domain.ErrInvalidUnit, a.Unit, a.Name)
		}
		batchAttrs[a.Name] = struct{}{}
	}

	refs := make([]domcatalog.CategoryRef, 0, len(req.Categories))
	byName := make(map[string]dto.CategoryRecord, len(req.Categories))
	for _, c := range req.Categories {
		if _, ok := storedCats[c.Name]; ok {
			return nil, fmt.Errorf("%w: categoría %q ya existe", domain.ErrDuplicate, c.Name)
		}
		for _, b := range c.Attributes {
			_, inBatch := batchAttrs[b.AttrName]
			_, stored := storedAttrs[b.AttrName]
			if !inBatch && !stored {
				return nil, fmt.Errorf("%w: %q (vinculado en %q)", domain.ErrAttributeNotFound, b.AttrName, c.Name)
			}
		}
		refs = append(refs, domcatalog.CategoryRef{Name: c.Name, Parent: c.Super})
		byName[c.Name] = c
	}
	ordered, err := domcatalog.SortCategories(refs, func(name string) bool {
		_, ok := storedCats[name]
		return ok
	})
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Order: make([]string, 0, len(ordered))}
	err = uc.tx.Run(ctx, func(repos repository.Set) error {
		attrs := domcatalog.NewAttributeCatalog(repos.Attributes, repos.Bindings)
		for _, a := range req.Attributes {
			if _, err := attrs.Define(ctx, a.Name, a.Unit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importar atributos: %w", err)
	}
	result.Attributes = len(req.Attributes)
	uc.log.Info().Int("attributes", result.Attributes).Msg("atributos importados")

	for _, ref := range ordered {
		rec := byName[ref.Name]
		if err := uc.tx.Run(ctx, func(repos repository.Set) error {
			return importCategory(ctx, repos, rec)
		}); err != nil {
			return result, fmt.Errorf("importar categoría %q: %w", rec.Name, err)
		}
		result.Categories++
		result.Bindings += len(rec.Attributes)
		result.Order = append(result.Order, rec.Name)
		uc.log.Info().
			Str("category", rec.Name).
			Str("super", rec.Super).
			Int("bindings", len(rec.Attributes)).
			Msg("categoría importada")
	}
	return result, nil
}

func importCategory(ctx context.Context, repos repository.Set, rec dto.CategoryRecord) error {
	graph := domcatalog.NewCategoryGraph(repos.Categories)
	attrs := domcatalog.NewAttributeCatalog(repos.Attributes, repos.Bindings)

	c := &entity.Category{Name: rec.Name}
	if err := repos.Categories.Create(ctx, c); err != nil {
		return err
	}
	if rec.Super != "" {
		parent, err := graph.GetByName(ctx, rec.Super)
		if err != nil {
			return err
		}
		if err := graph.ConnectAsChild(ctx, parent, c); err != nil {
			return err
		}
	}
	for _, b := range rec.Attributes {
		binding := entity.AttributeBinding{Name: b.Name, Required: b.Required}
		if b.DefaultValue != nil {
			binding.DefaultValue = decimal.NewNullDecimal(*b.DefaultValue)
		}
		if err := attrs.Bind(ctx, c, b.AttrName, binding); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ImportUseCase) storedNames(ctx context.Context) (cats, attrs map[string]struct{}, err error) {
	cats = make(map[string]struct{})
	attrs = make(map[string]struct{})
	err = uc.tx.View(ctx, func(repos repository.Set) error {
		cs, err := repos.Categories.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range cs {
			cats[c.Name] = struct{}{}
		}
		as, err := repos.Attributes.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range as {
			attrs[a.Name] = struct{}{}
		}
		return nil
	})
	return cats, attrs, err
}
