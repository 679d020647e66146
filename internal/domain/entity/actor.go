package entity

// Actor es la identidad resuelta que ejecuta una operación del ledger.
// Se pasa como parámetro explícito a todos los casos de uso: el chequeo de
// permisos vive en el borde HTTP, el núcleo solo exige identidad completa.
type Actor struct {
	UserID   string
	BranchID string
	Role     string
}

// Valid indica si la identidad está completa.
func (a Actor) Valid() bool {
	return a.UserID != "" && a.Role != ""
}
