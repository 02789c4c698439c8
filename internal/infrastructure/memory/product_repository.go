package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
// Conserva el orden de alta para que la carga del libro sea estable.
type ProductRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]entity.Product
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository crea el repositorio con los productos dados.
func NewProductRepository(products ...entity.Product) *ProductRepository {
	r := &ProductRepository{byID: make(map[string]entity.Product, len(products))}
	for _, p := range products {
		r.put(p)
	}
	return r
}

func (r *ProductRepository) put(p entity.Product) {
	if _, ok := r.byID[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.byID[p.ID] = p
}

func (r *ProductRepository) Upsert(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(*product)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
