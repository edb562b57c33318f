package entity

import "time"

// Category representa una categoría de productos. La jerarquía (una supercategoría como máximo)
// vive en la relación SUBCATEGORY del grafo, no en la entidad.
type Category struct {
	ID        string // id del nodo en el grafo
	Name      string // único
	CreatedAt time.Time
}
