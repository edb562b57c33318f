package graphrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepository)(nil)
	_ repository.AuxiliaryRepository = (*AuxiliaryRepository)(nil)
)

// ProductRepository nodos Product y su relación CATEGORY.
type ProductRepository struct {
	tx  graph.Tx
	now func() time.Time
}

// NewProductRepository construye el repositorio atado a tx.
func NewProductRepository(tx graph.Tx) *ProductRepository {
	return &ProductRepository{tx: tx, now: time.Now}
}

// Create persiste el nodo. Un SKU repetido devuelve domain.ErrDuplicate.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	now := r.now()
	n, err := r.tx.CreateNode(ctx, graph.LabelProduct, productProps(p, now))
	if err != nil {
		return fmt.Errorf("crear producto %d: %w", p.SKU, err)
	}
	p.ID = n.ID
	p.CreatedAt = now.UTC()
	return nil
}

func (r *ProductRepository) LinkCategory(ctx context.Context, p *entity.Product, c *entity.Category) error {
	from, err := mustNode(ctx, r.tx, p.ID, graph.LabelProduct)
	if err != nil {
		return err
	}
	to, err := mustNode(ctx, r.tx, c.ID, graph.LabelCategory)
	if err != nil {
		return err
	}
	if _, err := r.tx.CreateRelationship(ctx, from, to, graph.RelCategory, nil); err != nil {
		return fmt.Errorf("asignar categoría %q al producto %d: %w", c.Name, p.SKU, err)
	}
	p.Category = c.Name
	return nil
}

// GetBySKU carga el producto con su categoría y su registro auxiliar, si lo tiene.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku int64) (*entity.Product, error) {
	n, err := r.tx.FindNodeByProperty(ctx, graph.LabelProduct, propSKU, entity.NumberFromInt(sku))
	if err != nil || n == nil {
		return nil, err
	}
	return r.load(ctx, n)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, c *entity.Category) ([]*entity.Product, error) {
	rels, err := r.tx.Relationships(ctx, c.ID, graph.RelCategory, graph.Incoming)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(rels))
	for _, rel := range rels {
		n, err := mustNode(ctx, r.tx, rel.From, graph.LabelProduct)
		if err != nil {
			return nil, err
		}
		p, err := r.load(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepository) load(ctx context.Context, n *graph.Node) (*entity.Product, error) {
	p, err := productFromNode(n)
	if err != nil {
		return nil, err
	}
	rels, err := r.tx.Relationships(ctx, n.ID, graph.RelCategory, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if len(rels) > 0 {
		cn, err := mustNode(ctx, r.tx, rels[0].To, graph.LabelCategory)
		if err != nil {
			return nil, err
		}
		p.Category = text(cn.Props, propName)
	}
	aux := NewAuxiliaryRepository(r.tx)
	for _, kind := range catalog.AuxiliaryKinds() {
		rec, err := aux.GetForProduct(ctx, p, kind)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			p.Auxiliary = rec
			break
		}
	}
	return p, nil
}

// AuxiliaryRepository nodos auxiliares (p. ej. ComputerProductData) enlazados a un producto.
type AuxiliaryRepository struct {
	tx graph.Tx
}

// NewAuxiliaryRepository construye el repositorio atado a tx.
func NewAuxiliaryRepository(tx graph.Tx) *AuxiliaryRepository {
	return &AuxiliaryRepository{tx: tx}
}

func (r *AuxiliaryRepository) Create(ctx context.Context, p *entity.Product, rec *entity.AuxiliaryRecord) error {
	kind, err := catalog.LookupAuxiliaryKind(rec.Kind)
	if err != nil {
		return err
	}
	from, err := mustNode(ctx, r.tx, p.ID, graph.LabelProduct)
	if err != nil {
		return err
	}
	props := make(graph.Properties, len(rec.Fields))
	for k, v := range rec.Fields {
		props[k] = v
	}
	n, err := r.tx.CreateNode(ctx, kind.Label, props)
	if err != nil {
		return fmt.Errorf("crear %s: %w", kind.Label, err)
	}
	if _, err := r.tx.CreateRelationship(ctx, from, n, kind.Relationship, nil); err != nil {
		return fmt.Errorf("enlazar %s al producto %d: %w", kind.Label, p.SKU, err)
	}
	rec.ID = n.ID
	p.Auxiliary = rec
	return nil
}

// GetForProduct devuelve nil, nil si el producto no tiene registro de ese tipo.
func (r *AuxiliaryRepository) GetForProduct(ctx context.Context, p *entity.Product, kindName string) (*entity.AuxiliaryRecord, error) {
	kind, err := catalog.LookupAuxiliaryKind(kindName)
	if err != nil {
		return nil, err
	}
	rels, err := r.tx.Relationships(ctx, p.ID, kind.Relationship, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, nil
	}
	n, err := r.tx.GetNode(ctx, rels[0].To)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind.Label, rels[0].To)
	}
	fields := make(map[string]entity.Value, len(n.Props))
	for k, v := range n.Props {
		fields[k] = v
	}
	return &entity.AuxiliaryRecord{ID: n.ID, Kind: kind.Name, Fields: fields}, nil
}
