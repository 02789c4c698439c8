package repository

import (
	"context"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia del registro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListAll devuelve los movimientos en orden de creación.
	ListAll(ctx context.Context) ([]*entity.StockMovement, error)
}
