package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El nombre es único (sin distinguir mayúsculas).
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := checkCustomer(in); err != nil {
		return nil, err
	}
	existing, err := uc.findByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	applyCustomer(customer, in)
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// Update reemplaza los datos de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := checkCustomer(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.findByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	applyCustomer(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List lista clientes, opcionalmente filtrados por estado.
func (uc *CustomerUseCase) List(ctx context.Context, status string) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) findByName(ctx context.Context, name string) (*entity.Customer, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, nil
}

func checkCustomer(in dto.CustomerRequest) error {
	if strings.TrimSpace(in.Name) == "" || in.CreditLimit.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) {
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Type = in.Type
	c.ContactPerson = in.ContactPerson
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.Country = in.Country
	c.CreditLimit = in.CreditLimit
	c.CurrentBalance = in.CurrentBalance
	c.Status = status
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Type:           c.Type,
		ContactPerson:  c.ContactPerson,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		Country:        c.Country,
		CreditLimit:    c.CreditLimit,
		CurrentBalance: c.CurrentBalance,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
	}
}
