package entity

import "time"

// WarehouseKind restringe qué clase de ítems puede guardar una bodega.
type WarehouseKind string

const (
	WarehouseKindRawMaterial   WarehouseKind = "RAW_MATERIAL"   // solo materia prima
	WarehouseKindFinishedGoods WarehouseKind = "FINISHED_GOODS" // solo producto terminado
	WarehouseKindMixed         WarehouseKind = "MIXED"          // ambos
)

// Valid indica si el kind es uno de los conocidos.
func (k WarehouseKind) Valid() bool {
	switch k {
	case WarehouseKindRawMaterial, WarehouseKindFinishedGoods, WarehouseKindMixed:
		return true
	}
	return false
}

// Accepts indica si una bodega de este kind admite líneas del ItemKind dado.
// El switch es exhaustivo: un kind desconocido nunca pasa en silencio.
func (k WarehouseKind) Accepts(item ItemKind) bool {
	switch k {
	case WarehouseKindMixed:
		return item.Valid()
	case WarehouseKindRawMaterial:
		return item == ItemKindMaterial
	case WarehouseKindFinishedGoods:
		return item == ItemKindProduct
	}
	return false
}

// Warehouse representa una bodega de la empresa, ligada a una sucursal.
// El Kind define qué ítems admite en cualquier transacción que la toque.
type Warehouse struct {
	ID        string
	BranchID  string
	Name      string
	Kind      WarehouseKind
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
