package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category y la relación SUBCATEGORY.
// Las búsquedas devuelven nil, nil cuando no hay resultado.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	ParentOf(ctx context.Context, category *entity.Category) (*entity.Category, error)
	ChildrenOf(ctx context.Context, category *entity.Category) ([]*entity.Category, error)
	// Connect crea la arista padre -> hija sin validaciones de jerarquía (ver catalog.CategoryGraph).
	Connect(ctx context.Context, parent, child *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
}
