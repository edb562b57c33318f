package graphrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository nodos Category y relaciones SUBCATEGORY.
type CategoryRepository struct {
	tx  graph.Tx
	now func() time.Time
}

// NewCategoryRepository construye el repositorio atado a tx.
func NewCategoryRepository(tx graph.Tx) *CategoryRepository {
	return &CategoryRepository{tx: tx, now: time.Now}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	now := r.now()
	n, err := r.tx.CreateNode(ctx, graph.LabelCategory, graph.Properties{
		propName:      entity.String(c.Name),
		propCreatedAt: stamp(now),
	})
	if err != nil {
		return fmt.Errorf("crear categoría %q: %w", c.Name, err)
	}
	c.ID = n.ID
	c.CreatedAt = now.UTC()
	return nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	n, err := r.tx.FindNodeByProperty(ctx, graph.LabelCategory, propName, entity.String(name))
	if err != nil || n == nil {
		return nil, err
	}
	return categoryFromNode(n), nil
}

func (r *CategoryRepository) ParentOf(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	rels, err := r.tx.Relationships(ctx, c.ID, graph.RelSubcategory, graph.Incoming)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, nil
	}
	n, err := mustNode(ctx, r.tx, rels[0].From, graph.LabelCategory)
	if err != nil {
		return nil, err
	}
	return categoryFromNode(n), nil
}

func (r *CategoryRepository) ChildrenOf(ctx context.Context, c *entity.Category) ([]*entity.Category, error) {
	rels, err := r.tx.Relationships(ctx, c.ID, graph.RelSubcategory, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(rels))
	for _, rel := range rels {
		n, err := mustNode(ctx, r.tx, rel.To, graph.LabelCategory)
		if err != nil {
			return nil, err
		}
		out = append(out, categoryFromNode(n))
	}
	return out, nil
}

func (r *CategoryRepository) Connect(ctx context.Context, parent, child *entity.Category) error {
	from, err := mustNode(ctx, r.tx, parent.ID, graph.LabelCategory)
	if err != nil {
		return err
	}
	to, err := mustNode(ctx, r.tx, child.ID, graph.LabelCategory)
	if err != nil {
		return err
	}
	if _, err := r.tx.CreateRelationship(ctx, from, to, graph.RelSubcategory, nil); err != nil {
		return fmt.Errorf("enlazar %q bajo %q: %w", child.Name, parent.Name, err)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	nodes, err := r.tx.NodesByLabel(ctx, graph.LabelCategory)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, categoryFromNode(n))
	}
	return out, nil
}
