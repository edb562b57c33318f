package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

var _ graph.Tx = (*graphTx)(nil)

// graphTx implementa graph.Tx sobre un Querier (normalmente pgx.Tx).
type graphTx struct {
	q       Querier
	schema  graph.Schema
	created []*graph.Node
}

func newGraphTx(q Querier, schema graph.Schema) *graphTx {
	return &graphTx{q: q, schema: schema}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generar id: %w", err)
	}
	return id.String(), nil
}

func (t *graphTx) CreateNode(ctx context.Context, label string, props graph.Properties) (*graph.Node, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = graph.Properties{}
	}
	n := &graph.Node{ID: id, Label: label, Props: props.Clone()}
	data, err := json.Marshal(n.Props)
	if err != nil {
		return nil, fmt.Errorf("serializar propiedades: %w", err)
	}
	_, err = t.q.Exec(ctx,
		`INSERT INTO graph_nodes (id, label, props) VALUES ($1, $2, $3)`,
		id, label, data,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s ya existe", domain.ErrDuplicate, label)
		}
		return nil, fmt.Errorf("insertar nodo %s: %w", label, err)
	}
	t.created = append(t.created, n)
	return n, nil
}

func (t *graphTx) CreateRelationship(ctx context.Context, from, to *graph.Node, relType string, props graph.Properties) (*graph.Relationship, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: relación %s sin extremo", domain.ErrCardinalityViolation, relType)
	}
	if err := t.schema.CheckCreate(ctx, t, from, to, relType); err != nil {
		return nil, err
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = graph.Properties{}
	}
	r := &graph.Relationship{ID: id, Type: relType, From: from.ID, To: to.ID, Props: props.Clone()}
	data, err := json.Marshal(r.Props)
	if err != nil {
		return nil, fmt.Errorf("serializar propiedades: %w", err)
	}
	_, err = t.q.Exec(ctx,
		`INSERT INTO graph_relationships (id, rel_type, from_id, to_id, props) VALUES ($1, $2, $3, $4, $5)`,
		id, relType, from.ID, to.ID, data,
	)
	if err != nil {
		return nil, fmt.Errorf("insertar relación %s: %w", relType, err)
	}
	return r, nil
}

func (t *graphTx) FindNodeByProperty(ctx context.Context, label, property string, value entity.Value) (*graph.Node, error) {
	query, args := findByPropertyQuery(label, property, value)
	n, err := scanNode(t.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar %s.%s: %w", label, property, err)
	}
	return n, nil
}

func (t *graphTx) GetNode(ctx context.Context, id string) (*graph.Node, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	n, err := scanNode(t.q.QueryRow(ctx, `SELECT `+nodeColumns+` FROM graph_nodes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer nodo %s: %w", id, err)
	}
	return n, nil
}

func (t *graphTx) NodesByLabel(ctx context.Context, label string) ([]*graph.Node, error) {
	rows, err := t.q.Query(ctx, `SELECT `+nodeColumns+` FROM graph_nodes WHERE label = $1 ORDER BY seq`, label)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", label, err)
	}
	defer rows.Close()

	var nodes []*graph.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func (t *graphTx) Relationships(ctx context.Context, nodeID, relType string, dir graph.Direction) ([]*graph.Relationship, error) {
	rows, err := t.q.Query(ctx, relationshipsQuery(dir == graph.Outgoing), nodeID, relType)
	if err != nil {
		return nil, fmt.Errorf("listar relaciones %s: %w", relType, err)
	}
	defer rows.Close()

	var rels []*graph.Relationship
	for rows.Next() {
		var (
			r    graph.Relationship
			data []byte
		)
		if err := rows.Scan(&r.ID, &r.Type, &r.From, &r.To, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &r.Props); err != nil {
			return nil, fmt.Errorf("decodificar relación %s: %w", r.ID, err)
		}
		if r.Props == nil {
			r.Props = graph.Properties{}
		}
		rels = append(rels, &r)
	}
	return rels, rows.Err()
}

func scanNode(row pgx.Row) (*graph.Node, error) {
	var (
		n    graph.Node
		data []byte
	)
	if err := row.Scan(&n.ID, &n.Label, &data); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &n.Props); err != nil {
		return nil, fmt.Errorf("decodificar nodo %s: %w", n.ID, err)
	}
	if n.Props == nil {
		n.Props = graph.Properties{}
	}
	return &n, nil
}
