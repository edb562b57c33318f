package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// SchemaEntryResponse una entrada del esquema efectivo.
type SchemaEntryResponse struct {
	Name         string           `json:"name"`
	Required     bool             `json:"required"`
	DefaultValue *decimal.Decimal `json:"default_value"`
	Unit         string           `json:"unit"`
	Source       string           `json:"source"`
}

// SchemaResponse esquema efectivo de una categoría.
type SchemaResponse struct {
	Category string                `json:"category"`
	Depth    int                   `json:"depth"`
	Entries  []SchemaEntryResponse `json:"entries"`
}

// SchemaToResponse mapea entity.EffectiveSchema a DTO.
func SchemaToResponse(s entity.EffectiveSchema) SchemaResponse {
	out := SchemaResponse{Category: s.Category, Depth: s.Depth, Entries: make([]SchemaEntryResponse, 0, len(s.Entries))}
	for _, e := range s.Entries {
		r := SchemaEntryResponse{Name: e.Name, Required: e.Required, Unit: string(e.Unit), Source: e.Source}
		if e.DefaultValue.Valid {
			d := e.DefaultValue.Decimal
			r.DefaultValue = &d
		}
		out.Entries = append(out.Entries, r)
	}
	return out
}
