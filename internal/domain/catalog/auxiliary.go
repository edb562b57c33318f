package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

// AuxiliaryField campo de un registro auxiliar.
type AuxiliaryField struct {
	Name     string
	Unit     entity.Unit
	Required bool
	Default  decimal.NullDecimal
}

// AuxiliaryKind subtipo de producto con datos estructurados en un nodo aparte.
type AuxiliaryKind struct {
	Name         string // clave en la petición ("computer")
	Label        string // etiqueta del nodo
	Relationship string // Product -[Relationship]-> nodo auxiliar
	Fields       []AuxiliaryField
}

// Schema esquema equivalente para reutilizar Validate.
func (k AuxiliaryKind) Schema() entity.EffectiveSchema {
	s := entity.EffectiveSchema{Category: k.Name, Depth: 1}
	for _, f := range k.Fields {
		s.Entries = append(s.Entries, entity.SchemaEntry{
			Name:         f.Name,
			Required:     f.Required,
			DefaultValue: f.Default,
			Unit:         f.Unit,
			Source:       k.Label,
		})
	}
	return s
}

// ComputerKind datos de computador: frecuencia de CPU obligatoria, 4 ranuras de expansión por defecto.
var ComputerKind = AuxiliaryKind{
	Name:         "computer",
	Label:        graph.LabelComputerData,
	Relationship: graph.RelComputer,
	Fields: []AuxiliaryField{
		{Name: "cpu_frequency", Unit: entity.UnitMegahertz, Required: true},
		{Name: "expansion_slots", Unit: entity.UnitPiece, Default: decimal.NewNullDecimal(decimal.NewFromInt(4))},
	},
}

var auxiliaryKinds = map[string]AuxiliaryKind{
	ComputerKind.Name: ComputerKind,
}

// LookupAuxiliaryKind devuelve ErrUnknownAuxiliaryKind para tipos no registrados.
func LookupAuxiliaryKind(name string) (AuxiliaryKind, error) {
	k, ok := auxiliaryKinds[name]
	if !ok {
		return AuxiliaryKind{}, fmt.Errorf("%w: %q", domain.ErrUnknownAuxiliaryKind, name)
	}
	return k, nil
}

// AuxiliaryKinds nombres registrados, ordenados.
func AuxiliaryKinds() []string {
	names := make([]string, 0, len(auxiliaryKinds))
	for n := range auxiliaryKinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidateAuxiliary valida los campos de un registro auxiliar con las mismas reglas que un producto.
func ValidateAuxiliary(kind string, fields map[string]entity.Value) (*entity.AuxiliaryRecord, error) {
	k, err := LookupAuxiliaryKind(kind)
	if err != nil {
		return nil, err
	}
	validated, err := Validate(k.Schema(), fields)
	if err != nil {
		return nil, err
	}
	return &entity.AuxiliaryRecord{Kind: k.Name, Fields: validated}, nil
}
