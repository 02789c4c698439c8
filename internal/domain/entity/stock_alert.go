package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertTypeLowStock     = "low_stock"
	AlertTypeOutOfStock   = "out_of_stock"
	AlertTypeExpiringSoon = "expiring_soon" // reservado; la regla de stock no lo emite
)

// Severidades de alerta.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// StockAlert vista derivada del estado de un producto; se recalcula completa en cada cambio.
// ID es determinista (alert_<productId>) para poder comparar conjuntos entre regeneraciones.
type StockAlert struct {
	ID           string
	ProductID    string
	ProductName  string
	CurrentStock int
	MinStock     int
	AlertType    string
	Severity     string
	CreatedAt    time.Time
}
