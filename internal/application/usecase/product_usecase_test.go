package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	appinv "github.com/jhoicas/medical-erp-api/internal/application/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/infrastructure/memory"
)

func newProductUC(t *testing.T) *ProductUseCase {
	t.Helper()
	store := memory.NewStore(true)
	ledger, err := appinv.NewLedgerService(context.Background(), store.Tx, store.Products, store.Movements, nil)
	require.NoError(t, err)
	return NewProductUseCase(ledger)
}

func TestProductUseCase_Create(t *testing.T) {
	uc := newProductUC(t)
	ctx := context.Background()

	res, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: " SUP010 ", Name: "Jeringa 5ml", Category: "Supplies",
		UnitPrice: decimal.RequireFromString("0.35"), CurrentStock: 5, MinStock: 20, MaxStock: 500,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "SUP010", res.SKU)
	assert.Equal(t, appinv.StockStatusLowStock, res.StockStatus)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "med001", Name: "Duplicado", MaxStock: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X1", Name: "Umbrales", MinStock: 10, MaxStock: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	uc := newProductUC(t)
	price := decimal.RequireFromString("3.10")
	name := "Paracetamol 500mg x20"

	res, err := uc.Update(context.Background(), "1", dto.UpdateProductRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
	assert.Equal(t, 50, res.CurrentStock)
	assert.True(t, res.UnitPrice.Equal(price))

	_, err = uc.Update(context.Background(), "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ListFiltros(t *testing.T) {
	uc := newProductUC(t)

	all := uc.List(ProductFilter{}, 0, 0)
	assert.Equal(t, 3, all.Page.Total)

	byCat := uc.List(ProductFilter{Category: "antibiotics"}, 0, 0)
	require.Len(t, byCat.Items, 1)
	assert.Equal(t, "2", byCat.Items[0].ID)

	bySearch := uc.List(ProductFilter{Search: "dev0"}, 0, 0)
	require.Len(t, bySearch.Items, 1)
	assert.Equal(t, "Digital Thermometer", bySearch.Items[0].Name)

	low := uc.List(ProductFilter{Status: appinv.StockStatusLowStock}, 1, 1)
	assert.Equal(t, 2, low.Page.Total)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "3", low.Items[0].ID)
}

func TestProductUseCase_GetYDelete(t *testing.T) {
	uc := newProductUC(t)
	ctx := context.Background()

	p, err := uc.GetByID("2")
	require.NoError(t, err)
	assert.Equal(t, appinv.StockStatusInStock, p.StockStatus)

	require.NoError(t, uc.Delete(ctx, "2"))
	_, err = uc.GetByID("2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "2"), domain.ErrNotFound)
}

func TestSupplierUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := NewSupplierUseCase(memory.NewStore(true).Suppliers)

	created, err := uc.Create(ctx, dto.SupplierRequest{Name: "TechMed Solutions", Country: "USA"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, created.Status)
	assert.Equal(t, []string{}, created.ProductsSupplied)

	_, err = uc.Create(ctx, dto.SupplierRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, created.ID, dto.SupplierRequest{
		Name: "TechMed Solutions", Status: entity.StatusInactive, ProductsSupplied: []string{"Thermometers"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, updated.Status)
	assert.Equal(t, []string{"Thermometers"}, updated.ProductsSupplied)

	_, err = uc.Update(ctx, "nope", dto.SupplierRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	active, err := uc.List(ctx, entity.StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
