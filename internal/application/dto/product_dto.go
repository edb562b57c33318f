package dto

import (
	"time"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// CreateProductRequest body para crear producto. SKU nil = generado.
// Auxiliary: tipo de registro auxiliar ("computer") -> campos.
type CreateProductRequest struct {
	Category   string                             `json:"category" validate:"notblank"`
	Attributes map[string]entity.Value            `json:"attributes"`
	SKU        *int64                             `json:"sku,omitempty" validate:"omitempty,gte=0"`
	Auxiliary  map[string]map[string]entity.Value `json:"auxiliary,omitempty" validate:"omitempty,max=1"`
}

// AuxiliaryResponse registro auxiliar persistido.
type AuxiliaryResponse struct {
	Kind   string                  `json:"kind"`
	Fields map[string]entity.Value `json:"fields"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID         string                  `json:"id"`
	SKU        int64                   `json:"sku"`
	Category   string                  `json:"category"`
	Attributes map[string]entity.Value `json:"attributes"`
	Auxiliary  *AuxiliaryResponse      `json:"auxiliary,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ProductToResponse mapea entity.Product a DTO.
func ProductToResponse(p *entity.Product) ProductResponse {
	out := ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Category:   p.Category,
		Attributes: p.Attributes,
		CreatedAt:  p.CreatedAt,
	}
	if out.Attributes == nil {
		out.Attributes = map[string]entity.Value{}
	}
	if p.Auxiliary != nil {
		out.Auxiliary = &AuxiliaryResponse{Kind: p.Auxiliary.Kind, Fields: p.Auxiliary.Fields}
	}
	return out
}
