package entity

// Roles válidos (claim "role" del JWT).
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Actor identifica a quien ejecuta una operación (extraído del token).
type Actor struct {
	UserID string
	Role   string
}

// IsBackOffice indica si el actor es Admin o Staff.
func (a Actor) IsBackOffice() bool {
	return a.Role == RoleAdmin || a.Role == RoleStaff
}
