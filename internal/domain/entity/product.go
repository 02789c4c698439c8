package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de insumos médicos.
// CurrentStock y LastUpdated solo los modifica el libro de inventario (movimientos).
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Category     string
	Description  string
	UnitPrice    decimal.Decimal // precio unitario, nunca negativo
	CurrentStock int             // nunca negativo
	MinStock     int             // umbral de alerta
	MaxStock     int             // MinStock <= MaxStock
	Supplier     string          // nombre del proveedor habitual
	ExpiryDate   *time.Time
	BatchNumber  string
	Location     string
	LastUpdated  time.Time
}

// StockValue devuelve CurrentStock * UnitPrice.
func (p Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}
