package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValueKind tipo de un valor de atributo.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value valor de un atributo de producto: número, texto o booleano. El valor cero es null.
// No se valida contra la unidad del atributo.
type Value struct {
	kind ValueKind
	num  decimal.Decimal
	str  string
	b    bool
}

// Null valor nulo.
func Null() Value { return Value{} }

// Number valor numérico exacto.
func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }

// NumberFromInt atajo para enteros.
func NumberFromInt(i int64) Value { return Number(decimal.NewFromInt(i)) }

// NumberFromFloat atajo para flotantes.
func NumberFromFloat(f float64) Value { return Number(decimal.NewFromFloat(f)) }

// String valor de texto.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool valor booleano.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// Decimal devuelve el número si el valor es numérico.
func (v Value) Decimal() (decimal.Decimal, bool) {
	return v.num, v.kind == KindNumber
}

// Text devuelve el texto si el valor es string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Boolean devuelve el booleano si el valor es bool.
func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == KindBool
}

// IsFalsy: null, 0, "" y false. Un valor falso se trata como ausente al validar.
func (v Value) IsFalsy() bool {
	switch v.kind {
	case KindNumber:
		return v.num.IsZero()
	case KindString:
		return v.str == ""
	case KindBool:
		return !v.b
	default:
		return true
	}
}

// Equal compara tipo y contenido; los números se comparan por valor (1.0 == 1).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num.Equal(o.num)
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return "null"
	}
}

// MarshalJSON escribe los números sin comillas (decimal los entrecomilla por defecto).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindString:
		return json.Marshal(v.str)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON acepta número, string, bool o null. Objetos y arreglos son inválidos.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("valor vacío")
	}
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Null()
	case bytes.Equal(data, []byte("true")):
		*v = Bool(true)
	case bytes.Equal(data, []byte("false")):
		*v = Bool(false)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("valor no soportado: se esperaba número, texto o booleano")
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("número inválido %s: %w", data, err)
		}
		*v = Number(d)
	}
	return nil
}

// FromAny convierte tipos nativos (p. ej. decodificados de YAML) a Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case decimal.Decimal:
		return Number(t), nil
	case int:
		return NumberFromInt(int64(t)), nil
	case int64:
		return NumberFromInt(t), nil
	case float64:
		return NumberFromFloat(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Value{}, err
		}
		return Number(d), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	default:
		return Value{}, fmt.Errorf("tipo no soportado %T", x)
	}
}
