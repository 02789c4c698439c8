package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// StockMovementRepository registro de movimientos en memoria (solo inserción).
type StockMovementRepository struct {
	mu        sync.RWMutex
	movements []entity.StockMovement
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func NewStockMovementRepository(movements ...entity.StockMovement) *StockMovementRepository {
	return &StockMovementRepository{movements: append([]entity.StockMovement(nil), movements...)}
}

func (r *StockMovementRepository) Create(_ context.Context, movement *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *StockMovementRepository) ListAll(_ context.Context) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.StockMovement, 0, len(r.movements))
	for i := range r.movements {
		m := r.movements[i]
		out = append(out, &m)
	}
	return out, nil
}
