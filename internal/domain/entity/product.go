package entity

import "time"

// Product representa un tipo de maíz a la venta (ej. "Yellow Maize").
// Inmutable una vez referenciado por órdenes, salvo el flag de disponibilidad.
type Product struct {
	ID             string
	Name           string
	Description    string
	PackagingSizes []string // ej. ["50kg bag", "100kg bag"]
	IsAvailable    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
