package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
	"github.com/jhoicas/medical-erp-api/pkg/config"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestMigrationFiles_Ordenadas(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestInvoiceItems_JSONB(t *testing.T) {
	items := []entity.InvoiceItem{{
		ProductID: "1", ProductName: "Paracetamol 500mg", Quantity: 3,
		UnitPrice: decimal.RequireFromString("2.50"), Total: decimal.RequireFromString("7.50"),
	}}
	raw, err := encodeItems(items)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"product_name":"Paracetamol 500mg"`)

	back, err := decodeItems(raw)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.True(t, back[0].Total.Equal(items[0].Total))
}

// ─────────────────────────────────────────────────────────────────────────────
// Integración (requiere TEST_DATABASE_URL)
// ─────────────────────────────────────────────────────────────────────────────

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE products, stock_movements, suppliers, customers, invoices`)
	require.NoError(t, err)
	return pool
}

func TestIntegracion_TxRunnerRollback(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	p := &entity.Product{ID: "p1", SKU: "MED001", Name: "Paracetamol", UnitPrice: decimal.RequireFromString("2.50"),
		CurrentStock: 10, MinStock: 5, MaxStock: 100, LastUpdated: now}
	require.NoError(t, runner.Run(ctx, func(pr repository.ProductRepository, mr repository.StockMovementRepository) error {
		return pr.Upsert(ctx, p)
	}))

	boom := errors.New("boom")
	err := runner.Run(ctx, func(pr repository.ProductRepository, mr repository.StockMovementRepository) error {
		p2 := *p
		p2.CurrentStock = 20
		if err := pr.Upsert(ctx, &p2); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewProductRepository(pool).GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.CurrentStock)
	assert.True(t, got.UnitPrice.Equal(p.UnitPrice))

	err = NewProductRepository(pool).Upsert(ctx, &entity.Product{ID: "p2", SKU: "med001", Name: "Dup", LastUpdated: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIntegracion_Movimientos(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewStockMovementRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	for i, typ := range []string{entity.MovementTypeIn, entity.MovementTypeOut} {
		require.NoError(t, repo.Create(ctx, &entity.StockMovement{
			ID: fmt.Sprintf("m%d", i), ProductID: "p1", ProductName: "Paracetamol", Type: typ,
			Quantity: 5, Reason: "prueba", UserID: "1", CreatedAt: now,
		}))
	}
	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m0", list[0].ID)
	assert.Equal(t, "", list[0].Reference)
}

func TestIntegracion_Facturas(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	inv := &entity.Invoice{
		ID: "i1", InvoiceNumber: "INV-1", CustomerID: "1", CustomerName: "City General Hospital",
		Items:    []entity.InvoiceItem{{ProductID: "1", ProductName: "Paracetamol", Quantity: 2, UnitPrice: decimal.NewFromInt(3), Total: decimal.NewFromInt(6)}},
		Subtotal: decimal.NewFromInt(6), Total: decimal.NewFromInt(6), Status: entity.InvoiceStatusDraft,
		CreatedAt: now, DueDate: now.AddDate(0, 0, 30),
	}
	require.NoError(t, repo.Create(ctx, inv))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Invoice{ID: "i2", InvoiceNumber: "INV-1", Items: inv.Items, Status: "draft", DueDate: now}), domain.ErrDuplicate)

	require.NoError(t, repo.UpdateStatus(ctx, "i1", entity.InvoiceStatusPaid))
	got, err := repo.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Paracetamol", got.Items[0].ProductName)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", entity.InvoiceStatusPaid), domain.ErrNotFound)
}
