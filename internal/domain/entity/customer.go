package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	CustomerTypeHospital    = "hospital"
	CustomerTypeClinic      = "clinic"
	CustomerTypePharmacy    = "pharmacy"
	CustomerTypeDistributor = "distributor"
)

// Customer representa un cliente (hospital, clínica, farmacia o distribuidor).
type Customer struct {
	ID             string
	Name           string
	Type           string
	ContactPerson  string
	Email          string
	Phone          string
	Address        string
	City           string
	Country        string
	CreditLimit    decimal.Decimal
	CurrentBalance decimal.Decimal
	Status         string // active, inactive
	CreatedAt      time.Time
}
