package dto

import "github.com/shopspring/decimal"

// AttributeRecord un elemento del archivo de atributos.
type AttributeRecord struct {
	Name string `json:"name" yaml:"name" validate:"notblank"`
	Unit string `json:"unit" yaml:"unit" validate:"notblank"`
}

// BindingRecord vínculo categoría -> atributo dentro de un CategoryRecord.
// Name vacío = nombre del atributo.
type BindingRecord struct {
	AttrName     string           `json:"attr_name" yaml:"attr_name" validate:"notblank"`
	Name         string           `json:"name,omitempty" yaml:"name,omitempty"`
	Required     bool             `json:"required" yaml:"required"`
	DefaultValue *decimal.Decimal `json:"default_value,omitempty" yaml:"default_value,omitempty"`
}

// CategoryRecord un elemento del archivo de categorías. Super es la supercategoría (opcional).
type CategoryRecord struct {
	Name       string          `json:"name" yaml:"name" validate:"notblank"`
	Super      string          `json:"super,omitempty" yaml:"super,omitempty" validate:"omitempty,nefield=Name"`
	Attributes []BindingRecord `json:"attributes,omitempty" yaml:"attributes,omitempty" validate:"dive"`
}

// ImportRequest lote completo a importar.
type ImportRequest struct {
	Attributes []AttributeRecord `json:"attributes" validate:"dive"`
	Categories []CategoryRecord  `json:"categories" validate:"dive"`
}

// ImportResult resumen de la importación.
type ImportResult struct {
	Attributes int      `json:"attributes"`
	Categories int      `json:"categories"`
	Bindings   int      `json:"bindings"`
	Order      []string `json:"order"` // categorías en el orden en que se crearon
}
