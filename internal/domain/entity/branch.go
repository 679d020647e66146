package entity

import "time"

// Branch representa una sucursal de la empresa; las bodegas pertenecen a una.
type Branch struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
