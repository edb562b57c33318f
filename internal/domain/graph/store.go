// Package graph define el puerto del almacén de grafo: nodos etiquetados, relaciones tipadas
// con cardinalidad declarada y ejecución transaccional.
package graph

import (
	"context"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

// Etiquetas de nodo.
const (
	LabelCategory     = "Category"
	LabelAttribute    = "Attribute"
	LabelProduct      = "Product"
	LabelComputerData = "ComputerProductData"
)

// Tipos de relación.
const (
	RelSubcategory = "SUBCATEGORY" // Category (padre) -> Category (hija)
	RelAttribute   = "ATTRIBUTE"   // Category -> Attribute, con datos del vínculo
	RelCategory    = "CATEGORY"    // Product -> Category
	RelComputer    = "COMPUTER"    // Product -> ComputerProductData
)

// Properties propiedades de un nodo o relación.
type Properties map[string]entity.Value

// Clone copia superficial (los Value son inmutables).
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Node nodo del grafo.
type Node struct {
	ID    string
	Label string
	Props Properties
}

// Relationship relación dirigida y tipada.
type Relationship struct {
	ID    string
	Type  string
	From  string
	To    string
	Props Properties
}

// Direction sentido de recorrido de relaciones respecto a un nodo.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// Tx operaciones disponibles dentro de una transacción.
type Tx interface {
	CreateNode(ctx context.Context, label string, props Properties) (*Node, error)
	// CreateRelationship falla con domain.ErrCardinalityViolation si se excede la cardinalidad declarada.
	CreateRelationship(ctx context.Context, from, to *Node, relType string, props Properties) (*Relationship, error)
	// FindNodeByProperty devuelve nil, nil si no hay coincidencia.
	FindNodeByProperty(ctx context.Context, label, property string, value entity.Value) (*Node, error)
	GetNode(ctx context.Context, id string) (*Node, error)
	// NodesByLabel en orden de creación.
	NodesByLabel(ctx context.Context, label string) ([]*Node, error)
	// Relationships en orden de creación.
	Relationships(ctx context.Context, nodeID, relType string, dir Direction) ([]*Relationship, error)
}

// Store almacén transaccional. Update confirma todas las escrituras de fn o ninguna;
// View ofrece una instantánea de solo lectura.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}
