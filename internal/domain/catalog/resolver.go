package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// CategoryReader lecturas de la jerarquía necesarias para resolver.
type CategoryReader interface {
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	ParentOf(ctx context.Context, category *entity.Category) (*entity.Category, error)
}

// BindingReader vínculos directos de una categoría.
type BindingReader interface {
	ListByCategory(ctx context.Context, category *entity.Category) ([]entity.BoundAttribute, error)
}

// Resolver calcula el esquema efectivo de una categoría sobre una instantánea de lectura.
type Resolver struct {
	categories CategoryReader
	bindings   BindingReader
}

// NewResolver construye el resolvedor. Pasar repositorios atados a una tx de lectura.
func NewResolver(categories CategoryReader, bindings BindingReader) *Resolver {
	return &Resolver{categories: categories, bindings: bindings}
}

// Resolve sube desde la categoría hasta la raíz y concatena los vínculos de cada nivel:
// primero los propios, luego los del padre, y así sucesivamente. No elimina duplicados: si un
// atributo se vincula en dos niveles aparecen ambas entradas y el validador evalúa las dos.
func (r *Resolver) Resolve(ctx context.Context, categoryName string) (entity.EffectiveSchema, error) {
	category, err := r.categories.GetByName(ctx, categoryName)
	if err != nil {
		return entity.EffectiveSchema{}, err
	}
	if category == nil {
		return entity.EffectiveSchema{}, fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, categoryName)
	}
	return r.ResolveCategory(ctx, category)
}

// ResolveCategory igual que Resolve partiendo de una categoría ya cargada.
func (r *Resolver) ResolveCategory(ctx context.Context, category *entity.Category) (entity.EffectiveSchema, error) {
	chain, err := ancestors(ctx, r.categories, category)
	if err != nil {
		return entity.EffectiveSchema{}, err
	}
	schema := entity.EffectiveSchema{Category: category.Name, Entries: []entity.SchemaEntry{}, Depth: len(chain)}
	for _, c := range chain {
		bound, err := r.bindings.ListByCategory(ctx, c)
		if err != nil {
			return entity.EffectiveSchema{}, fmt.Errorf("vínculos de %q: %w", c.Name, err)
		}
		for _, b := range bound {
			schema.Entries = append(schema.Entries, entity.SchemaEntry{
				Name:         b.Binding.Name,
				Required:     b.Binding.Required,
				DefaultValue: b.Binding.DefaultValue,
				Unit:         b.Attribute.Unit,
				Source:       c.Name,
			})
		}
	}
	return schema, nil
}
