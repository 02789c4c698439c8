package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	items := []entity.InvoiceItem{
		{ProductID: "1", ProductName: "Paracetamol 500mg", Quantity: 100, UnitPrice: dec("2.50")},
		{ProductID: "3", ProductName: "Digital Thermometer", Quantity: 3, UnitPrice: dec("15.99")},
	}

	got, err := Calculate(items, dec("10"), dec("5"))
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "250", got.Items[0].Total.String())
	assert.Equal(t, "47.97", got.Items[1].Total.String())
	assert.Equal(t, "297.97", got.Subtotal.String())
	assert.Equal(t, "29.8", got.Tax.String())      // 29.797 -> 29.80
	assert.Equal(t, "14.9", got.Discount.String()) // 14.8985 -> 14.90
	assert.Equal(t, "312.87", got.Total.String())

	assert.True(t, items[0].Total.IsZero(), "no modifica las líneas recibidas")
}

func TestCalculate_SinImpuestoNiDescuento(t *testing.T) {
	got, err := Calculate([]entity.InvoiceItem{{Quantity: 2, UnitPrice: dec("5.75")}}, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(dec("11.5")))
	assert.True(t, got.Total.Equal(got.Subtotal))
}

func TestCalculate_Errores(t *testing.T) {
	_, err := Calculate(nil, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = Calculate([]entity.InvoiceItem{{Quantity: 0, UnitPrice: dec("1")}}, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = Calculate([]entity.InvoiceItem{{Quantity: 1, UnitPrice: dec("-1")}}, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = Calculate([]entity.InvoiceItem{{Quantity: 1, UnitPrice: dec("1")}}, dec("101"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = Calculate([]entity.InvoiceItem{{Quantity: 1, UnitPrice: dec("1")}}, decimal.Zero, dec("-5"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
