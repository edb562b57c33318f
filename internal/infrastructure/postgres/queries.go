package postgres

import (
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

const nodeColumns = `id::text, label, props`

const relColumns = `id::text, rel_type, from_id::text, to_id::text, props`

// findByPropertyQuery arma la búsqueda de un nodo por propiedad según el tipo del valor.
// Los números se comparan como NUMERIC (1 = 1.0) enlazando decimal.Decimal.
func findByPropertyQuery(label, property string, v entity.Value) (string, []any) {
	base := `SELECT ` + nodeColumns + ` FROM graph_nodes WHERE label = $1 AND `
	const tail = ` ORDER BY seq LIMIT 1`
	switch v.Kind() {
	case entity.KindNumber:
		d, _ := v.Decimal()
		return base + `jsonb_typeof(props->$2::text) = 'number' AND (props->>$2::text)::numeric = $3` + tail,
			[]any{label, property, d}
	case entity.KindString:
		s, _ := v.Text()
		return base + `jsonb_typeof(props->$2::text) = 'string' AND props->>$2::text = $3` + tail,
			[]any{label, property, s}
	case entity.KindBool:
		b, _ := v.Boolean()
		return base + `jsonb_typeof(props->$2::text) = 'boolean' AND (props->>$2::text)::boolean = $3` + tail,
			[]any{label, property, b}
	default:
		return base + `(props->$2::text IS NULL OR jsonb_typeof(props->$2::text) = 'null')` + tail,
			[]any{label, property}
	}
}

// relationshipsQuery relaciones de un tipo en un sentido, en orden de creación.
func relationshipsQuery(outgoing bool) string {
	col := "to_id"
	if outgoing {
		col = "from_id"
	}
	return `SELECT ` + relColumns + ` FROM graph_relationships WHERE ` + col + ` = $1 AND rel_type = $2 ORDER BY seq`
}
