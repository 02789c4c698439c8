package dto

import "time"

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=200"`
	ContactPerson    string   `json:"contact_person" validate:"max=200"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Phone            string   `json:"phone" validate:"max=50"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	ProductsSupplied []string `json:"products_supplied"`
	Status           string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ContactPerson    string    `json:"contact_person"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	Country          string    `json:"country"`
	ProductsSupplied []string  `json:"products_supplied"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
