package catalog

import (
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// Validate comprueba values contra el esquema efectivo y devuelve los atributos a persistir.
//
// Para cada entrada, en el orden del esquema:
//   - un valor ausente, nulo o falso (0, "", false) cuenta como ausente;
//   - ausente + requerido + sin default (o default 0) => RequiredAttributeMissingError;
//   - si no, result[nombre] = valor, o el default si el valor está ausente.
//
// Una entrada repetida más adelante en el esquema sobrescribe el resultado de la anterior.
// Los atributos que no figuran en el esquema se descartan; no hay validación de tipo ni rango.
func Validate(schema entity.EffectiveSchema, values map[string]entity.Value) (map[string]entity.Value, error) {
	result := make(map[string]entity.Value, len(schema.Entries))
	for _, e := range schema.Entries {
		v, ok := values[e.Name]
		present := ok && !v.IsFalsy()
		if !present && e.Required && !e.HasDefault() {
			return nil, &domain.RequiredAttributeMissingError{Attribute: e.Name, Category: schema.Category}
		}
		if present {
			result[e.Name] = v
			continue
		}
		if d := e.Default(); !d.IsNull() {
			result[e.Name] = d
		} else {
			delete(result, e.Name)
		}
	}
	return result, nil
}
