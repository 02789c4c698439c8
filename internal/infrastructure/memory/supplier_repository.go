package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

type SupplierRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]entity.Supplier
}

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

func NewSupplierRepository(suppliers ...entity.Supplier) *SupplierRepository {
	r := &SupplierRepository{byID: make(map[string]entity.Supplier, len(suppliers))}
	for _, s := range suppliers {
		r.order = append(r.order, s.ID)
		r.byID[s.ID] = cloneSupplier(s)
	}
	return r
}

func cloneSupplier(s entity.Supplier) entity.Supplier {
	s.ProductsSupplied = append([]string(nil), s.ProductsSupplied...)
	return s
}

func (r *SupplierRepository) Create(_ context.Context, supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[supplier.ID]; ok {
		return fmt.Errorf("%w: proveedor %s", domain.ErrDuplicate, supplier.ID)
	}
	r.order = append(r.order, supplier.ID)
	r.byID[supplier.ID] = cloneSupplier(*supplier)
	return nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	s = cloneSupplier(s)
	return &s, nil
}

func (r *SupplierRepository) Update(_ context.Context, supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[supplier.ID] = cloneSupplier(*supplier)
	return nil
}

func (r *SupplierRepository) List(_ context.Context) ([]*entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Supplier, 0, len(r.order))
	for _, id := range r.order {
		s := cloneSupplier(r.byID[id])
		out = append(out, &s)
	}
	return out, nil
}

func (r *SupplierRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
