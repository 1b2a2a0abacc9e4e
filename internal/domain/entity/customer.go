package entity

import "time"

// Customer perfil de cliente asociado a un usuario (solo lectura en este servicio).
type Customer struct {
	ID        string
	UserID    string
	FullName  string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
