package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	LinkCategory(ctx context.Context, product *entity.Product, category *entity.Category) error
	GetBySKU(ctx context.Context, sku int64) (*entity.Product, error)
	ListByCategory(ctx context.Context, category *entity.Category) ([]*entity.Product, error)
}

// AuxiliaryRepository registros auxiliares enlazados a un producto.
type AuxiliaryRepository interface {
	// Create persiste el registro y lo enlaza al producto.
	Create(ctx context.Context, product *entity.Product, rec *entity.AuxiliaryRecord) error
	GetForProduct(ctx context.Context, product *entity.Product, kind string) (*entity.AuxiliaryRecord, error)
}
