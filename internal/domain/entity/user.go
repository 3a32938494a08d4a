package entity

// User referencia al usuario del componente de identidad externo.
// Aquí solo se lee para atribuir movimientos; nunca se modifica.
type User struct {
	ID    string
	Name  string
	Email string
}
