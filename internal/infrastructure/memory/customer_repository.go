package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

type CustomerRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]entity.Customer
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(customers ...entity.Customer) *CustomerRepository {
	r := &CustomerRepository{byID: make(map[string]entity.Customer, len(customers))}
	for _, c := range customers {
		r.order = append(r.order, c.ID)
		r.byID[c.ID] = c
	}
	return r
}

func (r *CustomerRepository) Create(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[customer.ID]; ok {
		return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, customer.ID)
	}
	r.order = append(r.order, customer.ID)
	r.byID[customer.ID] = *customer
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) Update(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[customer.ID] = *customer
	return nil
}

func (r *CustomerRepository) List(_ context.Context) ([]*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(r.order))
	for _, id := range r.order {
		c := r.byID[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.order = removeID(r.order, id)
	return nil
}
