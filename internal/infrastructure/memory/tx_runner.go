package memory

import (
	"context"

	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// TxRunner ejecuta fn directamente sobre los repositorios en memoria.
//
// No hay rollback. ProductRepository.Upsert y StockMovementRepository.Create siempre devuelven
// nil, así que fn solo puede fallar antes de la primera escritura. Si alguna de las dos empieza a
// devolver errores, este runner debe deshacer las escrituras previas.
type TxRunner struct {
	Products  *ProductRepository
	Movements *StockMovementRepository
}

// NewTxRunner construye el runner sobre los repositorios del store.
func NewTxRunner(products *ProductRepository, movements *StockMovementRepository) *TxRunner {
	return &TxRunner{Products: products, Movements: movements}
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.Products, t.Movements)
}
