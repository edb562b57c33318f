package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// AttributeRepository define el puerto de persistencia para AttributeDefinition.
type AttributeRepository interface {
	Create(ctx context.Context, attr *entity.AttributeDefinition) error
	GetByName(ctx context.Context, name string) (*entity.AttributeDefinition, error)
	List(ctx context.Context) ([]*entity.AttributeDefinition, error)
}

// BindingRepository vínculos categoría -> atributo (relación ATTRIBUTE con datos).
type BindingRepository interface {
	Bind(ctx context.Context, category *entity.Category, attr *entity.AttributeDefinition, binding entity.AttributeBinding) error
	// ListByCategory vínculos directos de la categoría, en orden de creación.
	ListByCategory(ctx context.Context, category *entity.Category) ([]entity.BoundAttribute, error)
}
