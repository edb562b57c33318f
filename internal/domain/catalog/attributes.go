package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
)

// AttributeCatalog definiciones de atributos y sus vínculos con categorías.
type AttributeCatalog struct {
	attrs    repository.AttributeRepository
	bindings repository.BindingRepository
}

// NewAttributeCatalog construye el servicio.
func NewAttributeCatalog(attrs repository.AttributeRepository, bindings repository.BindingRepository) *AttributeCatalog {
	return &AttributeCatalog{attrs: attrs, bindings: bindings}
}

// Define crea un atributo. La unidad debe pertenecer a la enumeración (símbolo o nombre).
func (c *AttributeCatalog) Define(ctx context.Context, name, unit string) (*entity.AttributeDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre de atributo vacío", domain.ErrInvalidInput)
	}
	u, ok := entity.ParseUnit(unit)
	if !ok {
		return nil, fmt.Errorf("%w: %q para el atributo %q", domain.ErrInvalidUnit, unit, name)
	}
	existing, err := c.attrs.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: atributo %q", domain.ErrDuplicate, name)
	}
	attr := &entity.AttributeDefinition{Name: name, Unit: u}
	if err := c.attrs.Create(ctx, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

// GetByName devuelve ErrAttributeNotFound si no existe.
func (c *AttributeCatalog) GetByName(ctx context.Context, name string) (*entity.AttributeDefinition, error) {
	attr, err := c.attrs.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrAttributeNotFound, name)
	}
	return attr, nil
}

// Bind vincula el atributo attrName a la categoría. Sin nombre efectivo se usa el del atributo.
func (c *AttributeCatalog) Bind(ctx context.Context, category *entity.Category, attrName string, binding entity.AttributeBinding) error {
	attr, err := c.GetByName(ctx, attrName)
	if err != nil {
		return err
	}
	if strings.TrimSpace(binding.Name) == "" {
		binding.Name = attr.Name
	}
	return c.bindings.Bind(ctx, category, attr, binding)
}
