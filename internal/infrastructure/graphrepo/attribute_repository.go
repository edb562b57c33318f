package graphrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

var (
	_ repository.AttributeRepository = (*AttributeRepository)(nil)
	_ repository.BindingRepository   = (*BindingRepository)(nil)
)

// AttributeRepository nodos Attribute.
type AttributeRepository struct {
	tx  graph.Tx
	now func() time.Time
}

// NewAttributeRepository construye el repositorio atado a tx.
func NewAttributeRepository(tx graph.Tx) *AttributeRepository {
	return &AttributeRepository{tx: tx, now: time.Now}
}

func (r *AttributeRepository) Create(ctx context.Context, a *entity.AttributeDefinition) error {
	now := r.now()
	n, err := r.tx.CreateNode(ctx, graph.LabelAttribute, graph.Properties{
		propName:      entity.String(a.Name),
		propUnit:      entity.String(string(a.Unit)),
		propCreatedAt: stamp(now),
	})
	if err != nil {
		return fmt.Errorf("crear atributo %q: %w", a.Name, err)
	}
	a.ID = n.ID
	a.CreatedAt = now.UTC()
	return nil
}

func (r *AttributeRepository) GetByName(ctx context.Context, name string) (*entity.AttributeDefinition, error) {
	n, err := r.tx.FindNodeByProperty(ctx, graph.LabelAttribute, propName, entity.String(name))
	if err != nil || n == nil {
		return nil, err
	}
	return attributeFromNode(n), nil
}

func (r *AttributeRepository) List(ctx context.Context) ([]*entity.AttributeDefinition, error) {
	nodes, err := r.tx.NodesByLabel(ctx, graph.LabelAttribute)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.AttributeDefinition, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, attributeFromNode(n))
	}
	return out, nil
}

// BindingRepository relaciones ATTRIBUTE con nombre efectivo, obligatoriedad y default.
type BindingRepository struct {
	tx graph.Tx
}

// NewBindingRepository construye el repositorio atado a tx.
func NewBindingRepository(tx graph.Tx) *BindingRepository {
	return &BindingRepository{tx: tx}
}

func (r *BindingRepository) Bind(ctx context.Context, c *entity.Category, a *entity.AttributeDefinition, b entity.AttributeBinding) error {
	from, err := mustNode(ctx, r.tx, c.ID, graph.LabelCategory)
	if err != nil {
		return err
	}
	to, err := mustNode(ctx, r.tx, a.ID, graph.LabelAttribute)
	if err != nil {
		return err
	}
	if _, err := r.tx.CreateRelationship(ctx, from, to, graph.RelAttribute, bindingProps(b)); err != nil {
		return fmt.Errorf("vincular %q a %q: %w", a.Name, c.Name, err)
	}
	return nil
}

func (r *BindingRepository) ListByCategory(ctx context.Context, c *entity.Category) ([]entity.BoundAttribute, error) {
	rels, err := r.tx.Relationships(ctx, c.ID, graph.RelAttribute, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	out := make([]entity.BoundAttribute, 0, len(rels))
	for _, rel := range rels {
		n, err := mustNode(ctx, r.tx, rel.To, graph.LabelAttribute)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.BoundAttribute{
			Category:  c.Name,
			Attribute: *attributeFromNode(n),
			Binding:   bindingFromProps(rel.Props),
		})
	}
	return out, nil
}
