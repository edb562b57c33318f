// Package graphrepo implementa los puertos de repository sobre un graph.Tx, de modo que los mismos
// repositorios sirven para cualquier adaptador de almacén (Badger o PostgreSQL).
package graphrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

// Propiedades reservadas de los nodos.
const (
	propName      = "name"
	propUnit      = "unit"
	propSKU       = "sku"
	propCreatedAt = "created_at"
	propRequired  = "required"
	propDefault   = "default_value"

	// attrPrefix separa los atributos de producto de las propiedades reservadas.
	attrPrefix = "attr."
)

func stamp(now time.Time) entity.Value {
	return entity.String(now.UTC().Format(time.RFC3339Nano))
}

func createdAt(props graph.Properties) time.Time {
	s, ok := props[propCreatedAt].Text()
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func text(props graph.Properties, key string) string {
	s, _ := props[key].Text()
	return s
}

func categoryFromNode(n *graph.Node) *entity.Category {
	return &entity.Category{ID: n.ID, Name: text(n.Props, propName), CreatedAt: createdAt(n.Props)}
}

func attributeFromNode(n *graph.Node) *entity.AttributeDefinition {
	return &entity.AttributeDefinition{
		ID:        n.ID,
		Name:      text(n.Props, propName),
		Unit:      entity.Unit(text(n.Props, propUnit)),
		CreatedAt: createdAt(n.Props),
	}
}

func bindingProps(b entity.AttributeBinding) graph.Properties {
	props := graph.Properties{
		propName:     entity.String(b.Name),
		propRequired: entity.Bool(b.Required),
		propDefault:  entity.Null(),
	}
	if b.DefaultValue.Valid {
		props[propDefault] = entity.Number(b.DefaultValue.Decimal)
	}
	return props
}

func bindingFromProps(props graph.Properties) entity.AttributeBinding {
	b := entity.AttributeBinding{Name: text(props, propName)}
	b.Required, _ = props[propRequired].Boolean()
	if d, ok := props[propDefault].Decimal(); ok {
		b.DefaultValue = decimal.NewNullDecimal(d)
	}
	return b
}

func productProps(p *entity.Product, now time.Time) graph.Properties {
	props := graph.Properties{
		propSKU:       entity.NumberFromInt(p.SKU),
		propCreatedAt: stamp(now),
	}
	for k, v := range p.Attributes {
		props[attrPrefix+k] = v
	}
	return props
}

func productFromNode(n *graph.Node) (*entity.Product, error) {
	d, ok := n.Props[propSKU].Decimal()
	if !ok || !d.IsInteger() {
		return nil, fmt.Errorf("producto %s sin sku numérico", n.ID)
	}
	p := &entity.Product{
		ID:         n.ID,
		SKU:        d.IntPart(),
		Attributes: make(map[string]entity.Value),
		CreatedAt:  createdAt(n.Props),
	}
	for k, v := range n.Props {
		if name, ok := strings.CutPrefix(k, attrPrefix); ok {
			p.Attributes[name] = v
		}
	}
	return p, nil
}

// mustNode carga un nodo por id y etiqueta; ErrNotFound si no existe o tiene otra etiqueta.
func mustNode(ctx context.Context, tx graph.Tx, id, label string) (*graph.Node, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %s sin id", domain.ErrNotFound, label)
	}
	n, err := tx.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.Label != label {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, label, id)
	}
	return n, nil
}
