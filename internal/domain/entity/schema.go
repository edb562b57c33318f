package entity

import "github.com/shopspring/decimal"

// SchemaEntry requisito de un atributo dentro del esquema efectivo.
type SchemaEntry struct {
	Name         string
	Required     bool
	DefaultValue decimal.NullDecimal
	Unit         Unit
	Source       string // categoría que declara el vínculo
}

// HasDefault default presente y distinto de cero.
func (e SchemaEntry) HasDefault() bool {
	return e.DefaultValue.Valid && !e.DefaultValue.Decimal.IsZero()
}

// Default devuelve el default como Value (null si no hay).
func (e SchemaEntry) Default() Value {
	if !e.DefaultValue.Valid {
		return Null()
	}
	return Number(e.DefaultValue.Decimal)
}

// EffectiveSchema esquema resuelto de una categoría: sus vínculos seguidos de los de cada ancestro.
// Se calcula en cada resolución; no se persiste. Un mismo nombre puede aparecer varias veces.
type EffectiveSchema struct {
	Category string
	Entries  []SchemaEntry
	Depth    int // categorías recorridas (la propia incluida)
}

// Names nombres en orden de resolución (con repetidos).
func (s EffectiveSchema) Names() []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.Name)
	}
	return out
}
