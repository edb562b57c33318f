package graph

import (
	"context"
	"fmt"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
)

// Unbounded máximo sin límite.
const Unbounded = -1

// Cardinality número permitido de relaciones de un tipo por nodo.
type Cardinality struct {
	Min int
	Max int // Unbounded = sin límite
}

var (
	ZeroOrMore = Cardinality{Min: 0, Max: Unbounded}
	ZeroOrOne  = Cardinality{Min: 0, Max: 1}
	ExactlyOne = Cardinality{Min: 1, Max: 1}
)

func (c Cardinality) String() string {
	if c.Max == Unbounded {
		return fmt.Sprintf("%d..n", c.Min)
	}
	return fmt.Sprintf("%d..%d", c.Min, c.Max)
}

// Rule cardinalidad declarada de un tipo de relación: Out por nodo origen, In por nodo destino.
type Rule struct {
	Type      string
	FromLabel string
	ToLabel   string
	Out       Cardinality
	In        Cardinality
}

// Schema reglas por tipo de relación. Tipos sin regla no tienen restricciones.
type Schema map[string]Rule

// DefaultSchema reglas del catálogo.
func DefaultSchema() Schema {
	return Schema{
		RelSubcategory: {Type: RelSubcategory, FromLabel: LabelCategory, ToLabel: LabelCategory, Out: ZeroOrMore, In: ZeroOrOne},
		RelAttribute:   {Type: RelAttribute, FromLabel: LabelCategory, ToLabel: LabelAttribute, Out: ZeroOrMore, In: ZeroOrMore},
		RelCategory:    {Type: RelCategory, FromLabel: LabelProduct, ToLabel: LabelCategory, Out: ExactlyOne, In: ZeroOrMore},
		RelComputer:    {Type: RelComputer, FromLabel: LabelProduct, ToLabel: LabelComputerData, Out: ZeroOrOne, In: ExactlyOne},
	}
}

// CheckCreate verifica etiquetas y máximos antes de crear una relación from -[relType]-> to.
func (s Schema) CheckCreate(ctx context.Context, tx Tx, from, to *Node, relType string) error {
	rule, ok := s[relType]
	if !ok {
		return nil
	}
	if from.Label != rule.FromLabel || to.Label != rule.ToLabel {
		return fmt.Errorf("%w: %s espera %s->%s, recibió %s->%s",
			domain.ErrCardinalityViolation, relType, rule.FromLabel, rule.ToLabel, from.Label, to.Label)
	}
	if rule.Out.Max != Unbounded {
		out, err := tx.Relationships(ctx, from.ID, relType, Outgoing)
		if err != nil {
			return err
		}
		if len(out)+1 > rule.Out.Max {
			return fmt.Errorf("%w: %s %s admite %s relaciones %s salientes",
				domain.ErrCardinalityViolation, from.Label, from.ID, rule.Out, relType)
		}
	}
	if rule.In.Max != Unbounded {
		in, err := tx.Relationships(ctx, to.ID, relType, Incoming)
		if err != nil {
			return err
		}
		if len(in)+1 > rule.In.Max {
			return fmt.Errorf("%w: %s %s admite %s relaciones %s entrantes",
				domain.ErrCardinalityViolation, to.Label, to.ID, rule.In, relType)
		}
	}
	return nil
}

// CheckCommit verifica los mínimos de los nodos creados en la transacción antes de confirmar.
func (s Schema) CheckCommit(ctx context.Context, tx Tx, created []*Node) error {
	for _, n := range created {
		for _, rule := range s {
			if rule.FromLabel == n.Label && rule.Out.Min > 0 {
				if err := s.checkMin(ctx, tx, n, rule, Outgoing, rule.Out); err != nil {
					return err
				}
			}
			if rule.ToLabel == n.Label && rule.In.Min > 0 {
				if err := s.checkMin(ctx, tx, n, rule, Incoming, rule.In); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s Schema) checkMin(ctx context.Context, tx Tx, n *Node, rule Rule, dir Direction, c Cardinality) error {
	rels, err := tx.Relationships(ctx, n.ID, rule.Type, dir)
	if err != nil {
		return err
	}
	if len(rels) < c.Min {
		return fmt.Errorf("%w: %s %s requiere %s relaciones %s, tiene %d",
			domain.ErrCardinalityViolation, n.Label, n.ID, c, rule.Type, len(rels))
	}
	return nil
}

// UniqueProperties propiedades cuyo valor no puede repetirse entre nodos de una misma etiqueta.
// Los adaptadores devuelven domain.ErrDuplicate al violarlas.
func UniqueProperties() map[string][]string {
	return map[string][]string{
		LabelCategory:  {"name"},
		LabelAttribute: {"name"},
		LabelProduct:   {"sku"},
	}
}
