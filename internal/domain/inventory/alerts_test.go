package inventory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

func TestClassify_Limites(t *testing.T) {
	cases := []struct {
		stock        int
		wantType     string
		wantSeverity string
		wantAlert    bool
	}{
		{0, entity.AlertTypeOutOfStock, entity.SeverityHigh, true},
		{1, entity.AlertTypeLowStock, entity.SeverityMedium, true},
		{50, entity.AlertTypeLowStock, entity.SeverityMedium, true},
		{51, entity.AlertTypeLowStock, entity.SeverityLow, true},
		{100, entity.AlertTypeLowStock, entity.SeverityLow, true},
		{101, "", "", false},
	}
	for _, tc := range cases {
		alertType, severity, ok := Classify(tc.stock, 100)
		assert.Equal(t, tc.wantAlert, ok, "stock=%d", tc.stock)
		assert.Equal(t, tc.wantType, alertType, "stock=%d", tc.stock)
		assert.Equal(t, tc.wantSeverity, severity, "stock=%d", tc.stock)
	}
}

func TestClassify_MinimoImpar(t *testing.T) {
	// min=5 -> min*0.5 = 2.5: 2 es medium, 3 es low
	_, sev, _ := Classify(2, 5)
	assert.Equal(t, entity.SeverityMedium, sev)
	_, sev, _ = Classify(3, 5)
	assert.Equal(t, entity.SeverityLow, sev)
}

func TestClassify_MinimoCero(t *testing.T) {
	alertType, _, ok := Classify(0, 0)
	assert.True(t, ok)
	assert.Equal(t, entity.AlertTypeOutOfStock, alertType)

	_, _, ok = Classify(1, 0)
	assert.False(t, ok)
}

func TestRecomputeAlerts_UnaPorProducto(t *testing.T) {
	products := []entity.Product{
		product("1", 50, 100, 1000, "1"),
		product("2", 200, 150, 800, "1"),
		product("3", 25, 50, 200, "1"),
		product("4", 0, 10, 20, "1"),
	}
	alerts := RecomputeAlerts(products, t0)
	require.Len(t, alerts, 3)

	ids := []string{alerts[0].ID, alerts[1].ID, alerts[2].ID}
	assert.Equal(t, []string{"alert_1", "alert_3", "alert_4"}, ids)
	assert.Equal(t, entity.StockAlert{
		ID:           "alert_1",
		ProductID:    "1",
		ProductName:  "Producto 1",
		CurrentStock: 50,
		MinStock:     100,
		AlertType:    entity.AlertTypeLowStock,
		Severity:     entity.SeverityMedium,
		CreatedAt:    t0,
	}, alerts[0])
}

func TestRecomputeAlerts_Idempotente(t *testing.T) {
	products := []entity.Product{product("1", 50, 100, 1000, "1"), product("2", 0, 1, 2, "1")}
	assert.Equal(t, RecomputeAlerts(products, t0), RecomputeAlerts(products, t0))
	assert.NotNil(t, RecomputeAlerts(nil, t0))
}

func TestLedger_RecalculoSinCambiosConservaAlertas(t *testing.T) {
	l := newLedger(t, product("1", 50, 100, 1000, "1"), product("2", 500, 100, 1000, "1"))
	first := l.Alerts()

	// Un cambio en otro producto regenera el conjunto; la alerta de "1" no cambia.
	_, err := l.ApplyMovement(out("2", 1))
	require.NoError(t, err)
	assert.Equal(t, first, l.Alerts())

	// Cambio de severidad: nueva fecha de generación.
	_, err = l.ApplyMovement(in("1", 10))
	require.NoError(t, err)
	require.Len(t, l.Alerts(), 1)
	assert.Equal(t, entity.SeverityLow, l.Alerts()[0].Severity)
	assert.True(t, l.Alerts()[0].CreatedAt.After(first[0].CreatedAt))
}

func TestClassify_StockGrande(t *testing.T) {
	// stock por encima de MaxInt/2 con mínimo MaxInt: low, nunca medium por desbordamiento
	alertType, sev, ok := Classify(math.MaxInt/2+1, math.MaxInt)
	assert.True(t, ok)
	assert.Equal(t, entity.AlertTypeLowStock, alertType)
	assert.Equal(t, entity.SeverityLow, sev)

	_, sev, _ = Classify(math.MaxInt/2, math.MaxInt)
	assert.Equal(t, entity.SeverityMedium, sev)
}
