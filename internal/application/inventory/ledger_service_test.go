package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	appinv "github.com/jhoicas/medical-erp-api/internal/application/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
	"github.com/jhoicas/medical-erp-api/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

func clock() inventory.Option {
	now := t0
	return inventory.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
}

func newService(t *testing.T, opts ...inventory.Option) (*appinv.LedgerService, *memory.Store) {
	t.Helper()
	store := memory.NewStore(true)
	svc, err := appinv.NewLedgerService(context.Background(), store.Tx, store.Products, store.Movements, nil, append([]inventory.Option{clock()}, opts...)...)
	require.NoError(t, err)
	return svc, store
}

// failingTx simula un fallo de almacenamiento.
type failingTx struct{}

func (failingTx) Run(context.Context, func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return errors.New("conexión perdida")
}

// ─────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ─────────────────────────────────────────────────────────────────────────────

func TestLedgerService_ApplyMovement_PersisteYConfirma(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	res, err := svc.ApplyMovement(ctx, "2", dto.RegisterMovementRequest{
		ProductID: "1", Quantity: 60, Type: entity.MovementTypeIn, Reason: "Compra", Reference: "PO-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, res.PreviousStock)
	assert.Equal(t, 110, res.Product.CurrentStock)
	assert.Equal(t, appinv.StockStatusInStock, res.Product.StockStatus)
	assert.Equal(t, "2", res.Movement.UserID)
	assert.Equal(t, "Paracetamol 500mg", res.Movement.ProductName)

	stored, err := store.Products.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 110, stored.CurrentStock)
	movs, _ := store.Movements.ListAll(ctx)
	require.Len(t, movs, 1)
	assert.Equal(t, res.Movement.ID, movs[0].ID)

	// alert_1 desaparece; quedan solo las del termómetro.
	alerts := svc.Alerts("")
	require.Len(t, alerts, 1)
	assert.Equal(t, "alert_3", alerts[0].ID)
}

func TestLedgerService_ApplyMovement_SalidaRecortaACero(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.ApplyMovement(context.Background(), "1", dto.RegisterMovementRequest{
		ProductID: "3", Quantity: 40, Type: entity.MovementTypeOut, Reason: "Despacho",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.CurrentStock)
	assert.Equal(t, 40, res.Movement.Quantity)
	assert.Equal(t, appinv.StockStatusOutOfStock, res.Product.StockStatus)

	high := svc.Alerts(entity.SeverityHigh)
	require.Len(t, high, 1)
	assert.Equal(t, entity.AlertTypeOutOfStock, high[0].AlertType)
}

func TestLedgerService_ApplyMovement_PoliticaRechazo(t *testing.T) {
	svc, store := newService(t, inventory.WithOutboundPolicy(inventory.OutboundReject))

	_, err := svc.ApplyMovement(context.Background(), "1", dto.RegisterMovementRequest{
		ProductID: "3", Quantity: 40, Type: entity.MovementTypeOut, Reason: "Despacho",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	movs, _ := store.Movements.ListAll(context.Background())
	assert.Empty(t, movs)
}

func TestLedgerService_ApplyMovement_Errores(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ApplyMovement(ctx, "1", dto.RegisterMovementRequest{ProductID: "999", Quantity: 1, Type: "in", Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ApplyMovement(ctx, "1", dto.RegisterMovementRequest{ProductID: "1", Quantity: 0, Type: "in", Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.ApplyMovement(ctx, "1", dto.RegisterMovementRequest{ProductID: "1", Quantity: 5, Type: "in", Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, 0, svc.Movements("", 0, 0).Page.Total)
}

func TestLedgerService_ApplyMovement_FalloDeAlmacenamientoNoConfirma(t *testing.T) {
	store := memory.NewStore(true)
	svc, err := appinv.NewLedgerService(context.Background(), failingTx{}, store.Products, store.Movements, nil)
	require.NoError(t, err)

	_, err = svc.ApplyMovement(context.Background(), "1", dto.RegisterMovementRequest{
		ProductID: "1", Quantity: 10, Type: entity.MovementTypeIn, Reason: "Compra",
	})
	require.Error(t, err)

	p, err := svc.Product("1")
	require.NoError(t, err)
	assert.Equal(t, 50, p.CurrentStock)
	assert.Equal(t, 0, svc.Movements("", 0, 0).Page.Total)
}

func TestLedgerService_ApplyMovement_Concurrente(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			typ := entity.MovementTypeIn
			if i%2 == 1 {
				typ = entity.MovementTypeOut
			}
			_, err := svc.ApplyMovement(ctx, "1", dto.RegisterMovementRequest{
				ProductID: "2", Quantity: 1, Type: typ, Reason: fmt.Sprintf("mov %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p, err := svc.Product("2")
	require.NoError(t, err)
	assert.Equal(t, 200, p.CurrentStock)
	assert.Equal(t, 50, svc.Movements("", 0, 0).Page.Total)
}

// ─────────────────────────────────────────────────────────────────────────────
// Consultas
// ─────────────────────────────────────────────────────────────────────────────

func TestLedgerService_Movements_RecientePrimeroYFiltro(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for _, id := range []string{"1", "2", "1"} {
		_, err := svc.ApplyMovement(ctx, "1", dto.RegisterMovementRequest{ProductID: id, Quantity: 1, Type: "in", Reason: "Compra"})
		require.NoError(t, err)
	}

	all := svc.Movements("", 2, 0)
	assert.Equal(t, 3, all.Page.Total)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "1", all.Items[0].ProductID)
	assert.Equal(t, "2", all.Items[1].ProductID)
	assert.True(t, all.Items[0].CreatedAt.After(all.Items[1].CreatedAt))

	only1 := svc.Movements("1", 0, 0)
	assert.Equal(t, 2, only1.Page.Total)

	assert.Empty(t, svc.Movements("", 10, 10).Items)
}

func TestLedgerService_AlertsYValoracion(t *testing.T) {
	svc, _ := newService(t)

	alerts := svc.Alerts("")
	require.Len(t, alerts, 2)
	assert.Equal(t, "alert_1", alerts[0].ID)
	assert.Equal(t, entity.SeverityMedium, alerts[0].Severity)
	assert.Equal(t, "alert_3", alerts[1].ID)
	assert.Equal(t, entity.SeverityMedium, alerts[1].Severity)
	assert.Empty(t, svc.Alerts(entity.SeverityHigh))

	v := svc.Valuation()
	assert.Equal(t, "1674.75", v.TotalValue.StringFixed(2))
	assert.Equal(t, 3, v.ProductCount)
	assert.Equal(t, 275, v.TotalUnits)
}

// ─────────────────────────────────────────────────────────────────────────────
// Catálogo
// ─────────────────────────────────────────────────────────────────────────────

func TestLedgerService_Catalogo(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, entity.Product{
		ID: "4", SKU: "MED004", Name: "Gasas", Category: "Supplies", CurrentStock: 0, MinStock: 10, MaxStock: 100,
	})
	require.NoError(t, err)
	assert.False(t, created.LastUpdated.IsZero())
	stored, _ := store.Products.GetByID(ctx, "4")
	require.NotNil(t, stored)
	assert.Len(t, svc.Alerts(entity.SeverityHigh), 1)

	_, err = svc.CreateProduct(ctx, entity.Product{ID: "5", SKU: "MED004", Name: "Otro", MaxStock: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	minStock := 0
	updated, err := svc.UpdateProduct(ctx, "4", inventory.ProductPatch{MinStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.MinStock)
	// stock 0 con mínimo 0 sigue siendo out_of_stock
	assert.Len(t, svc.Alerts(entity.SeverityHigh), 1)

	require.NoError(t, svc.DeleteProduct(ctx, "4"))
	assert.Empty(t, svc.Alerts(entity.SeverityHigh))
	_, err = svc.Product("4")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	gone, _ := store.Products.GetByID(ctx, "4")
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, "4"), domain.ErrNotFound)
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, appinv.StockStatusInStock, appinv.StockStatus(entity.Product{CurrentStock: 11, MinStock: 10}))
	assert.Equal(t, appinv.StockStatusLowStock, appinv.StockStatus(entity.Product{CurrentStock: 10, MinStock: 10}))
	assert.Equal(t, appinv.StockStatusOutOfStock, appinv.StockStatus(entity.Product{CurrentStock: 0, MinStock: 10}))
}
