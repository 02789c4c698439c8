package repository

import (
	"context"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas (cabecera + líneas).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
}
