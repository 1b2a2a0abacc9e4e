package entity

import "time"

// Estados de un agricultor. La baja es lógica: nunca se borra la fila.
const (
	FarmerStatusActive   = "active"
	FarmerStatusInactive = "inactive"
)

// Farmer proveedor de maíz; se referencia desde los lotes con origen FARMER.
type Farmer struct {
	ID           string
	FullName     string
	MobileNumber string
	Region       string
	District     string
	Community    string
	IsApproved   bool
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanSupply indica si el agricultor puede registrar entregas.
func (f *Farmer) CanSupply() bool {
	return f.Status == FarmerStatusActive
}
