package entity

import "time"

// Estados de proveedores y clientes.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Supplier representa un proveedor de insumos.
type Supplier struct {
	ID               string
	Name             string
	ContactPerson    string
	Email            string
	Phone            string
	Address          string
	City             string
	Country          string
	ProductsSupplied []string
	Status           string // active, inactive
	CreatedAt        time.Time
}
