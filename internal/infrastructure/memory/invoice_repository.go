package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// InvoiceRepository facturas en memoria; List devuelve la más reciente primero.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices []entity.Invoice
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return inv
}

func (r *InvoiceRepository) Create(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.ID == invoice.ID || inv.InvoiceNumber == invoice.InvoiceNumber {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, invoice.InvoiceNumber)
		}
	}
	r.invoices = append(r.invoices, cloneInvoice(*invoice))
	return nil
}

func (r *InvoiceRepository) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.invoices {
		if inv.ID == id {
			out := cloneInvoice(inv)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			r.invoices[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *InvoiceRepository) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Invoice, 0, len(r.invoices))
	for i := len(r.invoices) - 1; i >= 0; i-- {
		inv := cloneInvoice(r.invoices[i])
		out = append(out, &inv)
	}
	if offset >= len(out) {
		return []*entity.Invoice{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
