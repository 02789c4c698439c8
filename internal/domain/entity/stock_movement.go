package entity

import "time"

// Dirección de un movimiento de inventario.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement registro inmutable de un movimiento de inventario (auditoría).
// Quantity es la cantidad solicitada, no el delta efectivo tras el recorte a cero.
type StockMovement struct {
	ID          string
	ProductID   string
	ProductName string // copia del nombre al momento del movimiento
	Type        string // in, out
	Quantity    int    // > 0
	Reason      string
	Reference   string // factura, orden de compra, nota; opcional
	UserID      string
	CreatedAt   time.Time
}
