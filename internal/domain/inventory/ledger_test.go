package inventory

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var t0 = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// steppingClock avanza un segundo en cada llamada para distinguir marcas de tiempo.
func steppingClock() func() time.Time {
	now := t0
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("mov-%d", n)
	}
}

func product(id string, stock, min, max int, price string) entity.Product {
	return entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Producto " + id,
		Category:     "General",
		UnitPrice:    decimal.RequireFromString(price),
		CurrentStock: stock,
		MinStock:     min,
		MaxStock:     max,
		LastUpdated:  t0,
	}
}

func newLedger(t *testing.T, products ...entity.Product) *Ledger {
	t.Helper()
	l, err := New(products, nil, WithClock(steppingClock()), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return l
}

func in(id string, qty int) MovementRequest {
	return MovementRequest{ProductID: id, Quantity: qty, Type: entity.MovementTypeIn, Reason: "compra", UserID: "1"}
}

func out(id string, qty int) MovementRequest {
	return MovementRequest{ProductID: id, Quantity: qty, Type: entity.MovementTypeOut, Reason: "venta", UserID: "1"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaEliminaAlerta(t *testing.T) {
	l := newLedger(t, product("1", 50, 100, 1000, "2.50"))
	require.Len(t, l.Alerts(), 1)

	res, err := l.ApplyMovement(MovementRequest{
		ProductID: "1", Quantity: 200, Type: entity.MovementTypeIn,
		Reason: "reposición", Reference: "PO-77", UserID: "2",
	})
	require.NoError(t, err)

	assert.Equal(t, 250, res.Product.CurrentStock)
	assert.Equal(t, 50, res.PreviousStock)
	assert.True(t, res.Product.LastUpdated.After(t0))

	movs := l.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.StockMovement{
		ID:          "mov-1",
		ProductID:   "1",
		ProductName: "Producto 1",
		Type:        entity.MovementTypeIn,
		Quantity:    200,
		Reason:      "reposición",
		Reference:   "PO-77",
		UserID:      "2",
		CreatedAt:   res.Product.LastUpdated,
	}, movs[0])
	assert.Empty(t, l.Alerts(), "250 > 100: la alerta debe desaparecer")

	stored, err := l.Product("1")
	require.NoError(t, err)
	assert.Equal(t, 250, stored.CurrentStock)
}

func TestApplyMovement_SalidaSeRecortaACero(t *testing.T) {
	l := newLedger(t, product("1", 30, 100, 1000, "1"))

	res, err := l.ApplyMovement(out("1", 50))
	require.NoError(t, err, "la salida excedente no es un error con la política clamp")

	assert.Equal(t, 0, res.Product.CurrentStock, "debe quedar en 0, no en -20")
	require.Len(t, l.Movements(), 1)
	assert.Equal(t, 50, l.Movements()[0].Quantity, "se registra la cantidad solicitada")
	assert.Equal(t, entity.MovementTypeOut, l.Movements()[0].Type)

	alerts := l.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeOutOfStock, alerts[0].AlertType)
	assert.Equal(t, entity.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "alert_1", alerts[0].ID)
}

func TestApplyMovement_PoliticaRechazo(t *testing.T) {
	l, err := New([]entity.Product{product("1", 30, 100, 1000, "1")}, nil, WithOutboundPolicy(OutboundReject))
	require.NoError(t, err)

	_, err = l.ApplyMovement(out("1", 50))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, l.Movements())

	p, _ := l.Product("1")
	assert.Equal(t, 30, p.CurrentStock)

	res, err := l.ApplyMovement(out("1", 30))
	require.NoError(t, err, "retirar exactamente el disponible es válido")
	assert.Equal(t, 0, res.Product.CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_Validacion(t *testing.T) {
	cases := []struct {
		name string
		req  MovementRequest
		want error
	}{
		{"cantidad cero", MovementRequest{ProductID: "1", Quantity: 0, Type: entity.MovementTypeIn, Reason: "x"}, domain.ErrInvalidQuantity},
		{"cantidad negativa", MovementRequest{ProductID: "1", Quantity: -3, Type: entity.MovementTypeOut, Reason: "x"}, domain.ErrInvalidQuantity},
		{"motivo vacío", MovementRequest{ProductID: "1", Quantity: 5, Type: entity.MovementTypeIn, Reason: ""}, domain.ErrValidation},
		{"motivo en blanco", MovementRequest{ProductID: "1", Quantity: 5, Type: entity.MovementTypeIn, Reason: "   "}, domain.ErrValidation},
		{"producto desconocido", MovementRequest{ProductID: "unknown", Quantity: 5, Type: entity.MovementTypeIn, Reason: "x"}, domain.ErrNotFound},
		{"tipo desconocido", MovementRequest{ProductID: "1", Quantity: 5, Type: "adjust", Reason: "x"}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(t, product("1", 40, 100, 1000, "1"))
			before := l.Products()
			alertsBefore := l.Alerts()

			_, err := l.ApplyMovement(tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, l.Movements(), "no se crea movimiento si falla la validación")
			assert.Equal(t, before, l.Products(), "el producto no se modifica")
			assert.Equal(t, alertsBefore, l.Alerts())
		})
	}
}

func TestApplyMovement_EntradaQueDesbordaElStock(t *testing.T) {
	l := newLedger(t, product("1", 10, 20, 500, "3"))
	before := l.Products()
	alertsBefore := l.Alerts()

	_, err := l.ApplyMovement(in("1", math.MaxInt))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, l.Movements())
	assert.Equal(t, before, l.Products())
	assert.Equal(t, alertsBefore, l.Alerts())

	// el límite exacto sigue siendo válido
	res, err := l.ApplyMovement(in("1", math.MaxInt-10))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, res.Product.CurrentStock)
	assert.Empty(t, l.Alerts())
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_NoNegativoYConservacion(t *testing.T) {
	l := newLedger(t, product("1", 10, 20, 500, "3"))
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		before, _ := l.Product("1")
		qty := rng.Intn(40) + 1
		req := in("1", qty)
		if rng.Intn(2) == 0 {
			req = out("1", qty)
		}
		res, err := l.ApplyMovement(req)
		require.NoError(t, err)

		after := res.Product.CurrentStock
		require.GreaterOrEqual(t, after, 0)
		if req.Type == entity.MovementTypeIn {
			require.Equal(t, before.CurrentStock+qty, after)
		} else {
			require.Equal(t, before.CurrentStock-min(qty, before.CurrentStock), after)
		}

		movs := l.Movements()
		require.Len(t, movs, i+1, "exactamente un movimiento por llamada exitosa")
		require.Equal(t, qty, movs[i].Quantity)
		require.Equal(t, req.Type, movs[i].Type)
	}
}

func TestApplyMovement_SnapshotDelNombre(t *testing.T) {
	l := newLedger(t, product("1", 10, 5, 50, "1"))
	_, err := l.ApplyMovement(in("1", 1))
	require.NoError(t, err)

	newName := "Renombrado"
	_, err = l.UpdateProduct("1", ProductPatch{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Producto 1", l.Movements()[0].ProductName, "el movimiento conserva el nombre original")
}

func TestPlanCommit_DetectaPlanObsoleto(t *testing.T) {
	l := newLedger(t, product("1", 10, 5, 50, "1"))

	plan, err := l.PlanMovement(out("1", 4))
	require.NoError(t, err)
	assert.Empty(t, l.Movements(), "planificar no aplica nada")

	_, err = l.ApplyMovement(in("1", 1))
	require.NoError(t, err)

	err = l.CommitMovement(plan)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, l.Movements(), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_RegeneraAlertas(t *testing.T) {
	l := newLedger(t, product("1", 500, 100, 1000, "1"))
	assert.Empty(t, l.Alerts())

	_, err := l.AddProduct(product("2", 0, 10, 100, "4"))
	require.NoError(t, err)
	require.Len(t, l.Alerts(), 1)
	assert.Equal(t, "alert_2", l.Alerts()[0].ID)

	minStock := 600
	maxStock := 2000
	_, err = l.UpdateProduct("1", ProductPatch{MinStock: &minStock, MaxStock: &maxStock})
	require.NoError(t, err)
	require.Len(t, l.Alerts(), 2)

	require.NoError(t, l.DeleteProduct("2"))
	require.Len(t, l.Alerts(), 1)
	assert.Equal(t, "alert_1", l.Alerts()[0].ID)

	_, err = l.ApplyMovement(in("2", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto eliminado deja de seguirse")
}

func TestCatalogo_Validaciones(t *testing.T) {
	l := newLedger(t, product("1", 5, 1, 10, "1"))

	_, err := l.AddProduct(product("1", 5, 1, 10, "1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	dupSKU := product("2", 5, 1, 10, "1")
	dupSKU.SKU = "sku-1"
	_, err = l.AddProduct(dupSKU)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "SKU se compara sin distinguir mayúsculas")

	_, err = l.AddProduct(product("3", 5, 20, 10, "1"))
	assert.ErrorIs(t, err, domain.ErrValidation, "min > max")

	_, err = l.AddProduct(product("4", -1, 0, 10, "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = l.AddProduct(product("5", 1, 0, 10, "-0.01"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad := 100
	_, err = l.UpdateProduct("1", ProductPatch{MinStock: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
	p, _ := l.Product("1")
	assert.Equal(t, 1, p.MinStock, "un patch inválido no se aplica")

	assert.Len(t, l.Products(), 1)
}

func TestPutProduct_NoEscribeStock(t *testing.T) {
	l := newLedger(t, product("1", 5, 1, 10, "1"))
	p, _ := l.Product("1")
	p.CurrentStock = 999

	err := l.PutProduct(p)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, _ := l.Product("1")
	assert.Equal(t, 5, stored.CurrentStock)
}

func TestDeleteProduct_ReindexaYConservaMovimientos(t *testing.T) {
	l := newLedger(t, product("1", 5, 1, 10, "1"), product("2", 5, 1, 10, "1"), product("3", 5, 1, 10, "1"))
	_, err := l.ApplyMovement(in("1", 1))
	require.NoError(t, err)

	require.NoError(t, l.DeleteProduct("1"))
	assert.ErrorIs(t, l.DeleteProduct("1"), domain.ErrNotFound)

	p3, err := l.Product("3")
	require.NoError(t, err)
	assert.Equal(t, "3", p3.ID)
	assert.Len(t, l.Movements(), 1)
}

func TestNew_RechazaEstadoInicialInvalido(t *testing.T) {
	_, err := New([]entity.Product{product("1", 1, 0, 5, "1"), product("1", 1, 0, 5, "1")}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = New([]entity.Product{product("1", -4, 0, 5, "1")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestValuation(t *testing.T) {
	l := newLedger(t,
		product("1", 50, 100, 1000, "2.50"),
		product("2", 200, 150, 800, "5.75"),
		product("3", 25, 50, 200, "15.99"),
	)
	// 125 + 1150 + 399.75
	assert.True(t, decimal.RequireFromString("1674.75").Equal(l.Valuation()), l.Valuation().String())
	assert.True(t, Valuation(nil).IsZero())
}

func TestParseOutboundPolicy(t *testing.T) {
	p, err := ParseOutboundPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OutboundClamp, p)

	p, err = ParseOutboundPolicy(" Reject ")
	require.NoError(t, err)
	assert.Equal(t, OutboundReject, p)

	_, err = ParseOutboundPolicy("allow-negative")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
