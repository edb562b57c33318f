package entity

import "time"

// Product producto identificado por SKU, con atributos planos y exactamente una categoría.
// Se construye solo tras validar contra el esquema efectivo; inmutable una vez persistido.
type Product struct {
	ID         string
	SKU        int64
	Category   string
	Attributes map[string]Value
	Auxiliary  *AuxiliaryRecord
	CreatedAt  time.Time
}

// AuxiliaryRecord registro estructurado secundario de un subtipo de producto (p. ej. datos de computador).
type AuxiliaryRecord struct {
	ID     string
	Kind   string
	Fields map[string]Value
}
