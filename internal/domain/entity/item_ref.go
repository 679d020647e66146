package entity

// ItemKind distingue las dos clases de ítem que mueve el inventario.
type ItemKind string

const (
	ItemKindMaterial ItemKind = "MATERIAL" // materia prima
	ItemKindProduct  ItemKind = "PRODUCT"  // producto terminado
)

// Valid indica si el kind es uno de los conocidos.
func (k ItemKind) Valid() bool {
	return k == ItemKindMaterial || k == ItemKindProduct
}

// ItemRef identifica un ítem de inventario: kind + ID del catálogo
// correspondiente. Cada línea referencia exactamente un ítem; el kind dice
// contra cuál catálogo resolver el ID.
type ItemRef struct {
	Kind ItemKind
	ID   string
}

// MaterialRef construye la referencia a una materia prima.
func MaterialRef(id string) ItemRef {
	return ItemRef{Kind: ItemKindMaterial, ID: id}
}

// ProductRef construye la referencia a un producto terminado.
func ProductRef(id string) ItemRef {
	return ItemRef{Kind: ItemKindProduct, ID: id}
}

// Valid indica si la referencia está completa.
func (r ItemRef) Valid() bool {
	return r.Kind.Valid() && r.ID != ""
}

// Key devuelve la clave "KIND:id", usada para agrupar deltas por ítem.
func (r ItemRef) Key() string {
	return string(r.Kind) + ":" + r.ID
}
