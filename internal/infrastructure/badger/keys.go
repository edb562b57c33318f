package badger

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
)

// Esquema de claves. Los ids son UUIDv7, por lo que el orden de claves es el de creación.
//
//	n/<id>                          nodo
//	l/<label>/<id>                  índice por etiqueta
//	u/<label>/<prop>/<valor>        índice único -> id
//	r/<id>                          relación
//	o/<from>/<type>/<relID>         salientes
//	i/<to>/<type>/<relID>           entrantes
func nodeKey(id string) []byte { return []byte("n/" + id) }

func labelPrefix(label string) []byte { return []byte("l/" + label + "/") }

func labelKey(label, id string) []byte { return []byte("l/" + label + "/" + id) }

func uniqueKey(label, prop string, v entity.Value) []byte {
	return []byte(fmt.Sprintf("u/%s/%s/%s:%s", label, prop, v.Kind(), v.String()))
}

func relKey(id string) []byte { return []byte("r/" + id) }

func adjacencyPrefix(nodeID, relType string, dir graph.Direction) []byte {
	if dir == graph.Incoming {
		return []byte("i/" + nodeID + "/" + relType + "/")
	}
	return []byte("o/" + nodeID + "/" + relType + "/")
}

type nodeRecord struct {
	Label string           `json:"label"`
	Props graph.Properties `json:"props"`
}

type relRecord struct {
	Type  string           `json:"type"`
	From  string           `json:"from"`
	To    string           `json:"to"`
	Props graph.Properties `json:"props"`
}

func encodeNode(n *graph.Node) ([]byte, error) {
	return json.Marshal(nodeRecord{Label: n.Label, Props: n.Props})
}

func decodeNode(id string, data []byte) (*graph.Node, error) {
	var rec nodeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decodificar nodo %s: %w", id, err)
	}
	if rec.Props == nil {
		rec.Props = graph.Properties{}
	}
	return &graph.Node{ID: id, Label: rec.Label, Props: rec.Props}, nil
}

func encodeRel(r *graph.Relationship) ([]byte, error) {
	return json.Marshal(relRecord{Type: r.Type, From: r.From, To: r.To, Props: r.Props})
}

func decodeRel(id string, data []byte) (*graph.Relationship, error) {
	var rec relRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decodificar relación %s: %w", id, err)
	}
	if rec.Props == nil {
		rec.Props = graph.Properties{}
	}
	return &graph.Relationship{ID: id, Type: rec.Type, From: rec.From, To: rec.To, Props: rec.Props}, nil
}
