package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Unit es la unidad de un atributo. Enumeración cerrada.
type Unit string

const (
	UnitMeter     Unit = "m"
	UnitInch      Unit = "inch"
	UnitGram      Unit = "g"
	UnitKilogram  Unit = "kg"
	UnitUSDollar  Unit = "USD"
	UnitMegahertz Unit = "MHz"
	UnitPiece     Unit = "pcs."
)

// unitNames nombre canónico (mayúsculas) -> símbolo.
var unitNames = map[string]Unit{
	"METER":     UnitMeter,
	"INCH":      UnitInch,
	"GRAM":      UnitGram,
	"KILOGRAM":  UnitKilogram,
	"US_DOLLAR": UnitUSDollar,
	"MHZ":       UnitMegahertz,
	"PIECE":     UnitPiece,
}

// Units devuelve todas las unidades válidas en orden estable.
func Units() []Unit {
	return []Unit{UnitMeter, UnitInch, UnitGram, UnitKilogram, UnitUSDollar, UnitMegahertz, UnitPiece}
}

// ParseUnit acepta el símbolo ("kg") o el nombre ("KILOGRAM").
func ParseUnit(s string) (Unit, bool) {
	for _, u := range Units() {
		if string(u) == s {
			return u, true
		}
	}
	if u, ok := unitNames[s]; ok {
		return u, true
	}
	return "", false
}

// Valid indica si la unidad es uno de los símbolos canónicos.
func (u Unit) Valid() bool {
	for _, s := range Units() {
		if s == u {
			return true
		}
	}
	return false
}

// AttributeDefinition atributo con nombre único y unidad. "Requerido" y "default" no son
// propiedades del atributo sino de su vínculo con una categoría (AttributeBinding).
type AttributeDefinition struct {
	ID        string
	Name      string
	Unit      Unit
	CreatedAt time.Time
}

// AttributeBinding datos de la relación ATTRIBUTE categoría -> atributo.
type AttributeBinding struct {
	Name         string // nombre efectivo; puede diferir del nombre canónico
	Required     bool
	DefaultValue decimal.NullDecimal
}

// HasDefault replica la semántica "default verdadero": ausente o cero no cuentan.
func (b AttributeBinding) HasDefault() bool {
	return b.DefaultValue.Valid && !b.DefaultValue.Decimal.IsZero()
}

// BoundAttribute un vínculo leído del grafo junto con su atributo.
type BoundAttribute struct {
	Category  string
	Attribute AttributeDefinition
	Binding   AttributeBinding
}

func (b BoundAttribute) String() string {
	return fmt.Sprintf("%s-[%s]->%s", b.Category, b.Binding.Name, b.Attribute.Name)
}
