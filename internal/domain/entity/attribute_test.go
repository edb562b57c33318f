package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]entity.Unit{
		"m": entity.UnitMeter, "METER": entity.UnitMeter,
		"pcs.": entity.UnitPiece, "PIECE": entity.UnitPiece,
		"MHz": entity.UnitMegahertz, "MHZ": entity.UnitMegahertz,
		"USD": entity.UnitUSDollar, "US_DOLLAR": entity.UnitUSDollar,
	} {
		got, ok := entity.ParseUnit(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "mhz", "lb", "meter"} {
		_, ok := entity.ParseUnit(in)
		assert.False(t, ok, in)
	}
	assert.True(t, entity.UnitGram.Valid())
	assert.False(t, entity.Unit("GRAM").Valid(), "el nombre no es un símbolo")
}

func TestAttributeBinding_HasDefault(t *testing.T) {
	assert.False(t, entity.AttributeBinding{}.HasDefault())
	assert.False(t, entity.AttributeBinding{DefaultValue: decimal.NewNullDecimal(decimal.Zero)}.HasDefault(), "0 no cuenta como default")
	assert.True(t, entity.AttributeBinding{DefaultValue: decimal.NewNullDecimal(decimal.NewFromInt(4))}.HasDefault())
}
