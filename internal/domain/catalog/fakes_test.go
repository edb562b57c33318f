package catalog_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// memCategories repositorio de categorías en memoria para tests de dominio.
type memCategories struct {
	byName   map[string]*entity.Category
	parent   map[string]string // hija -> padre (por nombre)
	order    []string
	bindings map[string][]entity.BoundAttribute
	attrs    map[string]*entity.AttributeDefinition
}

func newMem() *memCategories {
	return &memCategories{
		byName:   map[string]*entity.Category{},
		parent:   map[string]string{},
		bindings: map[string][]entity.BoundAttribute{},
		attrs:    map[string]*entity.AttributeDefinition{},
	}
}

func (m *memCategories) add(name, parent string) *entity.Category {
	c := &entity.Category{ID: "id-" + name, Name: name}
	m.byName[name] = c
	m.order = append(m.order, name)
	if parent != "" {
		m.parent[name] = parent
	}
	return c
}

func (m *memCategories) bind(category, attr string, required bool, def string) {
	b := entity.AttributeBinding{Name: attr, Required: required}
	if def != "" {
		b.DefaultValue = decimal.NewNullDecimal(decimal.RequireFromString(def))
	}
	m.bindings[category] = append(m.bindings[category], entity.BoundAttribute{
		Category:  category,
		Attribute: entity.AttributeDefinition{Name: attr, Unit: entity.UnitKilogram},
		Binding:   b,
	})
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	if _, ok := m.byName[c.Name]; ok {
		return fmt.Errorf("duplicada %s", c.Name)
	}
	c.ID = "id-" + c.Name
	m.byName[c.Name] = c
	m.order = append(m.order, c.Name)
	return nil
}

func (m *memCategories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	return m.byName[name], nil
}

func (m *memCategories) ParentOf(_ context.Context, c *entity.Category) (*entity.Category, error) {
	p, ok := m.parent[c.Name]
	if !ok {
		return nil, nil
	}
	return m.byName[p], nil
}

func (m *memCategories) ChildrenOf(_ context.Context, c *entity.Category) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, n := range m.order {
		if m.parent[n] == c.Name {
			out = append(out, m.byName[n])
		}
	}
	return out, nil
}

func (m *memCategories) Connect(_ context.Context, parent, child *entity.Category) error {
	m.parent[child.Name] = parent.Name
	return nil
}

func (m *memCategories) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(m.order))
	for _, n := range m.order {
		out = append(out, m.byName[n])
	}
	return out, nil
}

func (m *memCategories) ListByCategory(_ context.Context, c *entity.Category) ([]entity.BoundAttribute, error) {
	return m.bindings[c.Name], nil
}
