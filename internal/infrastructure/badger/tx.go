package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

var _ graph.Tx = (*tx)(nil)

var errReadOnly = errors.New("escritura en transacción de solo lectura")

type tx struct {
	txn      *badger.Txn
	store    *Store
	writable bool
	created  []*graph.Node
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generar id: %w", err)
	}
	return id.String(), nil
}

func (t *tx) CreateNode(ctx context.Context, label string, props graph.Properties) (*graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.writable {
		return nil, errReadOnly
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = graph.Properties{}
	}
	n := &graph.Node{ID: id, Label: label, Props: props.Clone()}

	for _, prop := range t.store.unique[label] {
		v, ok := n.Props[prop]
		if !ok || v.IsNull() {
			continue
		}
		key := uniqueKey(label, prop, v)
		_, err := t.txn.Get(key)
		if err == nil {
			return nil, fmt.Errorf("%w: %s.%s = %s", domain.ErrDuplicate, label, prop, v)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("índice único %s.%s: %w", label, prop, err)
		}
		if err := t.txn.Set(key, []byte(id)); err != nil {
			return nil, fmt.Errorf("índice único %s.%s: %w", label, prop, err)
		}
	}

	data, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	if err := t.txn.Set(nodeKey(id), data); err != nil {
		return nil, fmt.Errorf("guardar nodo: %w", err)
	}
	if err := t.txn.Set(labelKey(label, id), nil); err != nil {
		return nil, fmt.Errorf("índice de etiqueta: %w", err)
	}
	t.created = append(t.created, n)
	return n, nil
}

func (t *tx) CreateRelationship(ctx context.Context, from, to *graph.Node, relType string, props graph.Properties) (*graph.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.writable {
		return nil, errReadOnly
	}
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: relación %s sin extremo", domain.ErrCardinalityViolation, relType)
	}
	if err := t.store.schema.CheckCreate(ctx, t, from, to, relType); err != nil {
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
	data, err := encodeRel(r)
	if err != nil {
		return nil, err
	}
	if err := t.txn.Set(relKey(id), data); err != nil {
		return nil, fmt.Errorf("guardar relación: %w", err)
	}
	if err := t.txn.Set(append(adjacencyPrefix(from.ID, relType, graph.Outgoing), id...), nil); err != nil {
		return nil, fmt.Errorf("índice saliente: %w", err)
	}
	if err := t.txn.Set(append(adjacencyPrefix(to.ID, relType, graph.Incoming), id...), nil); err != nil {
		return nil, fmt.Errorf("índice entrante: %w", err)
	}
	return r, nil
}

func (t *tx) FindNodeByProperty(ctx context.Context, label, property string, value entity.Value) (*graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, prop := range t.store.unique[label] {
		if prop != property {
			continue
		}
		item, err := t.txn.Get(uniqueKey(label, property, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("buscar %s.%s: %w", label, property, err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		return t.GetNode(ctx, string(id))
	}

	nodes, err := t.NodesByLabel(ctx, label)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if v, ok := n.Props[property]; ok && v.Equal(value) {
			return n, nil
		}
	}
	return nil, nil
}

func (t *tx) GetNode(ctx context.Context, id string) (*graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := t.txn.Get(nodeKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer nodo %s: %w", id, err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return decodeNode(id, data)
}

func (t *tx) NodesByLabel(ctx context.Context, label string) ([]*graph.Node, error) {
	prefix := labelPrefix(label)
	ids := t.scanSuffixes(prefix)
	nodes := make([]*graph.Node, 0, len(ids))
	for _, id := range ids {
		n, err := t.GetNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func (t *tx) Relationships(ctx context.Context, nodeID, relType string, dir graph.Direction) ([]*graph.Relationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := t.scanSuffixes(adjacencyPrefix(nodeID, relType, dir))
	rels := make([]*graph.Relationship, 0, len(ids))
	for _, id := range ids {
		item, err := t.txn.Get(relKey(id))
		if err != nil {
			return nil, fmt.Errorf("leer relación %s: %w", id, err)
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		r, err := decodeRel(id, data)
		if err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, nil
}

// scanSuffixes devuelve lo que sigue al prefijo en cada clave. El iterador se cierra antes de
// cualquier otra lectura o escritura en la transacción.
func (t *tx) scanSuffixes(prefix []byte) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()

	var out []string
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		key := string(it.Item().KeyCopy(nil))
		out = append(out, strings.TrimPrefix(key, string(prefix)))
	}
	return out
}
