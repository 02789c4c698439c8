package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Producto, cantidad, motivo y tipo los valida el libro de inventario, en ese orden.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	Reference string `json:"reference" validate:"max=200"`
}

// StockMovementResponse un movimiento del registro de auditoría.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Reference   string    `json:"reference"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementResultResponse respuesta de un movimiento aplicado.
type MovementResultResponse struct {
	Product       ProductResponse       `json:"product"`
	Movement      StockMovementResponse `json:"movement"`
	PreviousStock int                   `json:"previous_stock"`
}

// MovementListResponse listado paginado de movimientos (más reciente primero).
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockAlertResponse alerta de stock derivada.
type StockAlertResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	AlertType    string    `json:"alert_type"`
	Severity     string    `json:"severity"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValuationResponse valor del inventario en mano.
type ValuationResponse struct {
	TotalValue   decimal.Decimal `json:"total_value"`
	ProductCount int             `json:"product_count"`
	TotalUnits   int             `json:"total_units"`
}
