package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

func TestNewStore_ConSemilla(t *testing.T) {
	ctx := context.Background()
	s := NewStore(true)

	products, err := s.Products.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{products[0].ID, products[1].ID, products[2].ID})
	assert.Equal(t, "2.5", products[0].UnitPrice.String())
	assert.Nil(t, products[2].ExpiryDate)

	suppliers, _ := s.Suppliers.List(ctx)
	customers, _ := s.Customers.List(ctx)
	assert.Len(t, suppliers, 2)
	assert.Len(t, customers, 2)
}

func TestNewStore_SinSemilla(t *testing.T) {
	s := NewStore(false)
	products, err := s.Products.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDemo_CopiasIndependientes(t *testing.T) {
	a := Demo()
	a.Suppliers[0].ProductsSupplied[0] = "X"
	assert.Equal(t, "Paracetamol", Demo().Suppliers[0].ProductsSupplied[0])
}

func TestProductRepository_UpsertConservaOrden(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepository(entity.Product{ID: "a"}, entity.Product{ID: "b"})

	require.NoError(t, r.Upsert(ctx, &entity.Product{ID: "a", Name: "nuevo"}))
	require.NoError(t, r.Upsert(ctx, &entity.Product{ID: "c"}))

	all, _ := r.ListAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "nuevo", all[0].Name)
	assert.Equal(t, "c", all[2].ID)

	require.NoError(t, r.Delete(ctx, "b"))
	got, err := r.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got)
	all, _ = r.ListAll(ctx)
	assert.Len(t, all, 2)
}

func TestTxRunner_EscribeEnRepositorios(t *testing.T) {
	ctx := context.Background()
	s := NewStore(false)
	err := s.Tx.Run(ctx, func(p repository.ProductRepository, m repository.StockMovementRepository) error {
		if err := p.Upsert(ctx, &entity.Product{ID: "1"}); err != nil {
			return err
		}
		return m.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "1"})
	})
	require.NoError(t, err)

	movs, _ := s.Movements.ListAll(ctx)
	require.Len(t, movs, 1)
	assert.Equal(t, "m1", movs[0].ID)
}

func TestTxRunner_EscriturasNoFallan(t *testing.T) {
	ctx := context.Background()
	s := NewStore(true)
	products, err := s.Products.ListAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	// Run no deshace nada: depende de que Upsert y Create nunca devuelvan error.
	for _, p := range products {
		assert.NoError(t, s.Products.Upsert(ctx, p))
		assert.NoError(t, s.Movements.Create(ctx, &entity.StockMovement{ID: "m-" + p.ID, ProductID: p.ID}))
	}
	// también con el contexto ya cancelado
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.NoError(t, s.Products.Upsert(cancelled, products[0]))
	assert.NoError(t, s.Movements.Create(cancelled, &entity.StockMovement{ID: "m-x", ProductID: products[0].ID}))
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore(false).Tx.Run(ctx, func(repository.ProductRepository, repository.StockMovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSupplierRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewSupplierRepository()

	require.NoError(t, r.Create(ctx, &entity.Supplier{ID: "s1", Name: "Uno"}))
	assert.ErrorIs(t, r.Create(ctx, &entity.Supplier{ID: "s1"}), domain.ErrDuplicate)

	require.NoError(t, r.Update(ctx, &entity.Supplier{ID: "s1", Name: "Dos"}))
	got, _ := r.GetByID(ctx, "s1")
	assert.Equal(t, "Dos", got.Name)

	assert.ErrorIs(t, r.Update(ctx, &entity.Supplier{ID: "zz"}), domain.ErrNotFound)
	require.NoError(t, r.Delete(ctx, "s1"))
	assert.True(t, errors.Is(r.Delete(ctx, "s1"), domain.ErrNotFound))
}

func TestInvoiceRepository_ListaRecientePrimero(t *testing.T) {
	ctx := context.Background()
	r := NewInvoiceRepository()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Create(ctx, &entity.Invoice{ID: id, InvoiceNumber: "INV-" + id}))
	}
	assert.ErrorIs(t, r.Create(ctx, &entity.Invoice{ID: "d", InvoiceNumber: "INV-a"}), domain.ErrDuplicate)

	page, err := r.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)
	assert.Equal(t, "b", page[1].ID)

	page, _ = r.List(ctx, 10, 5)
	assert.Empty(t, page)

	require.NoError(t, r.UpdateStatus(ctx, "a", entity.InvoiceStatusPaid))
	got, _ := r.GetByID(ctx, "a")
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	assert.ErrorIs(t, r.UpdateStatus(ctx, "x", entity.InvoiceStatusPaid), domain.ErrNotFound)
}

func TestDemoUsers_HashValido(t *testing.T) {
	users, err := DemoUsers(bcrypt.MinCost)
	require.NoError(t, err)
	require.Len(t, users, 3)

	r := NewUserRepository(users...)
	u, err := r.FindByUsername(context.Background(), "Admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DemoPassword)))

	missing, err := r.FindByUsername(context.Background(), "nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
