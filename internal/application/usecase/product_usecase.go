package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	appinv "github.com/jhoicas/medical-erp-api/internal/application/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/inventory"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía movimientos.
type ProductUseCase struct {
	ledger *appinv.LedgerService
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(ledger *appinv.LedgerService) *ProductUseCase {
	return &ProductUseCase{ledger: ledger}
}

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.ledger.CreateProduct(ctx, entity.Product{
		ID:           uuid.New().String(),
		SKU:          strings.TrimSpace(in.SKU),
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		Description:  in.Description,
		UnitPrice:    in.UnitPrice,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		Supplier:     in.Supplier,
		ExpiryDate:   in.ExpiryDate,
		BatchNumber:  in.BatchNumber,
		Location:     in.Location,
	})
	if err != nil {
		return nil, err
	}
	out := appinv.ToProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.ledger.Product(id)
	if err != nil {
		return nil, err
	}
	out := appinv.ToProductResponse(product)
	return &out, nil
}

// Update actualiza datos de catálogo. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.ledger.UpdateProduct(ctx, id, inventory.ProductPatch{
		SKU:         in.SKU,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		Supplier:    in.Supplier,
		ExpiryDate:  in.ExpiryDate,
		BatchNumber: in.BatchNumber,
		Location:    in.Location,
	})
	if err != nil {
		return nil, err
	}
	out := appinv.ToProductResponse(product)
	return &out, nil
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Category string
	Search   string // coincide con nombre o SKU, sin distinguir mayúsculas
	Status   string // in_stock | low_stock | out_of_stock
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(f ProductFilter, limit, offset int) *dto.ProductListResponse {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	items := make([]dto.ProductResponse, 0)
	for _, p := range uc.ledger.Products() {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		resp := appinv.ToProductResponse(p)
		if f.Status != "" && resp.StockStatus != f.Status {
			continue
		}
		items = append(items, resp)
	}
	return &dto.ProductListResponse{
		Items: dto.Paginate(items, limit, offset),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.ledger.DeleteProduct(ctx, id)
}
