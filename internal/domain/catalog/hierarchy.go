// Package catalog contiene la lógica de dominio del catálogo: jerarquía de categorías,
// definición de atributos, resolución del esquema efectivo y validación de productos.
package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

// CategoryGraph jerarquía de categorías con una supercategoría como máximo.
type CategoryGraph struct {
	repo repository.CategoryRepository
}

// NewCategoryGraph construye el servicio sobre el repositorio (normalmente atado a una tx).
func NewCategoryGraph(repo repository.CategoryRepository) *CategoryGraph {
	return &CategoryGraph{repo: repo}
}

// GetByName devuelve ErrCategoryNotFound si no existe.
func (g *CategoryGraph) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	c, err := g.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, name)
	}
	return c, nil
}

// ParentOf devuelve nil si la categoría es raíz.
func (g *CategoryGraph) ParentOf(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	return g.repo.ParentOf(ctx, c)
}

// ChildrenOf subcategorías directas.
func (g *CategoryGraph) ChildrenOf(ctx context.Context, c *entity.Category) ([]*entity.Category, error) {
	return g.repo.ChildrenOf(ctx, c)
}

// ConnectAsChild enlaza child bajo parent. Falla con ErrDuplicateParent si child ya tiene padre
// y con ErrCategoryCycle si child es parent o uno de sus ancestros.
func (g *CategoryGraph) ConnectAsChild(ctx context.Context, parent, child *entity.Category) error {
	existing, err := g.repo.ParentOf(ctx, child)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %q ya cuelga de %q", domain.ErrDuplicateParent, child.Name, existing.Name)
	}
	chain, err := g.Ancestors(ctx, parent)
	if err != nil {
		return err
	}
	for _, a := range chain {
		if a.ID == child.ID {
			return fmt.Errorf("%w: %q es ancestro de %q", domain.ErrCategoryCycle, child.Name, parent.Name)
		}
	}
	return g.repo.Connect(ctx, parent, child)
}

// Ancestors cadena desde c (incluida) hasta la raíz. Detecta ciclos ya presentes en el almacén.
func (g *CategoryGraph) Ancestors(ctx context.Context, c *entity.Category) ([]*entity.Category, error) {
	return ancestors(ctx, g.repo, c)
}

// parentReader subconjunto de CategoryRepository que necesita el recorrido.
type parentReader interface {
	ParentOf(ctx context.Context, category *entity.Category) (*entity.Category, error)
}

func ancestors(ctx context.Context, repo parentReader, c *entity.Category) ([]*entity.Category, error) {
	var chain []*entity.Category
	seen := make(map[string]struct{})
	for cur := c; cur != nil; {
		if _, ok := seen[cur.ID]; ok {
			return nil, fmt.Errorf("%w: %q aparece dos veces al subir desde %q", domain.ErrCategoryCycle, cur.Name, c.Name)
		}
		seen[cur.ID] = struct{}{}
		chain = append(chain, cur)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parent, err := repo.ParentOf(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = parent
	}
	return chain, nil
}

// CategoryRef categoría a importar: nombre y supercategoría opcional.
type CategoryRef struct {
	Name   string
	Parent string
}

// SortCategories ordena refs para que cada padre preceda a sus hijas, conservando el orden de
// entrada cuando ya es válido. stored indica si un padre ausente del lote ya existe en el almacén.
// Errores: ErrDuplicate (nombre repetido), ErrUnresolvedParent, ErrCategoryCycle.
func SortCategories(refs []CategoryRef, stored func(name string) bool) ([]CategoryRef, error) {
	inBatch := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		if _, dup := inBatch[r.Name]; dup {
			return nil, fmt.Errorf("%w: categoría %q repetida en la importación", domain.ErrDuplicate, r.Name)
		}
		inBatch[r.Name] = struct{}{}
	}
	for _, r := range refs {
		if r.Parent == "" {
			continue
		}
		if _, ok := inBatch[r.Parent]; ok {
			continue
		}
		if stored == nil || !stored(r.Parent) {
			return nil, fmt.Errorf("%w: %q declara supercategoría %q inexistente", domain.ErrUnresolvedParent, r.Name, r.Parent)
		}
	}

	placed := make(map[string]struct{}, len(refs))
	out := make([]CategoryRef, 0, len(refs))
	pending := refs
	for len(pending) > 0 {
		var next []CategoryRef
		for _, r := range pending {
			_, parentInBatch := inBatch[r.Parent]
			_, parentPlaced := placed[r.Parent]
			if r.Parent == "" || !parentInBatch || parentPlaced {
				out = append(out, r)
				placed[r.Name] = struct{}{}
				continue
			}
			next = append(next, r)
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("%w: no se puede ordenar %q", domain.ErrCategoryCycle, next[0].Name)
		}
		pending = next
	}
	return out, nil
}
