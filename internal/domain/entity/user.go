package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleAlmacenista = "almacenista"
	RoleVendedor    = "vendedor"
)

// User representa un usuario del sistema, asociado a una sucursal.
type User struct {
	ID           string
	BranchID     string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // admin, almacenista, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
