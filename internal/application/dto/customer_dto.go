package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest entrada para crear o reemplazar un cliente.
type CustomerRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Type           string          `json:"type" validate:"required,oneof=hospital clinic pharmacy distributor"`
	ContactPerson  string          `json:"contact_person" validate:"max=200"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone" validate:"max=50"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Status         string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	ContactPerson  string          `json:"contact_person"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
