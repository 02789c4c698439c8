package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	"github.com/jhoicas/medical-erp-api/internal/domain"
	domainbilling "github.com/jhoicas/medical-erp-api/internal/domain/billing"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// Plazo de pago cuando la factura no trae fecha de vencimiento.
const defaultDueDays = 30

// InvoiceUseCase casos de uso de facturas. La factura no mueve stock: las salidas
// se registran explícitamente como movimientos de inventario.
type InvoiceUseCase struct {
	invoiceRepo   repository.InvoiceRepository
	customerRepo  repository.CustomerRepository
	catalog       ProductCatalog
	defaultTaxPct decimal.Decimal
	now           func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. defaultTaxPct aplica cuando la solicitud no trae tax_pct.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	catalog ProductCatalog,
	defaultTaxPct decimal.Decimal,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		catalog:       catalog,
		defaultTaxPct: defaultTaxPct,
		now:           time.Now,
	}
}

// CreateInvoice valida cliente y productos, calcula totales y guarda la factura.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		product, err := uc.catalog.Product(it.ProductID)
		if err != nil {
			return nil, err
		}
		price := product.UnitPrice
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items = append(items, entity.InvoiceItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}

	taxPct := uc.defaultTaxPct
	if in.TaxPct != nil {
		taxPct = *in.TaxPct
	}
	totals, err := domainbilling.Calculate(items, taxPct, in.DiscountPct)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	due := now.AddDate(0, 0, defaultDueDays)
	if in.DueDate != nil {
		due = *in.DueDate
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, status)
	}

	invoice := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: fmt.Sprintf("INV-%d", now.UnixMilli()),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Items:         totals.Items,
		TaxPct:        taxPct,
		DiscountPct:   in.DiscountPct,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Status:        status,
		CreatedAt:     now,
		DueDate:       due,
		CreatedBy:     userID,
	}
	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// GetByID obtiene una factura.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return ToInvoiceResponse(inv), nil
}

// List lista facturas, la más reciente primero.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) (*dto.InvoiceListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// UpdateStatus cambia el estado de una factura.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.InvoiceResponse, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, status)
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func validStatus(s string) bool {
	switch s {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue:
		return true
	}
	return false
}

// ToInvoiceResponse mapea la factura a su DTO.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Items:         items,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Total:         inv.Total,
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
		DueDate:       inv.DueDate,
		CreatedBy:     inv.CreatedBy,
	}
}
