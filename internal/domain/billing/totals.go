// Package billing calcula totales de factura: total por línea, subtotal, impuesto, descuento y total.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo de una factura.
type Totals struct {
	Items    []entity.InvoiceItem // con Total por línea
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal cantidad * precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Calculate aplica la fórmula de la factura:
//
//	subtotal = Σ cantidad * precio
//	impuesto = subtotal * taxPct / 100
//	descuento = subtotal * discountPct / 100
//	total = subtotal + impuesto - descuento
//
// Los montos se redondean a 2 decimales. Ambos porcentajes deben estar entre 0 y 100.
func Calculate(items []entity.InvoiceItem, taxPct, discountPct decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, fmt.Errorf("%w: la factura requiere al menos una línea", domain.ErrValidation)
	}
	if err := checkPct("impuesto", taxPct); err != nil {
		return Totals{}, err
	}
	if err := checkPct("descuento", discountPct); err != nil {
		return Totals{}, err
	}

	out := Totals{Items: make([]entity.InvoiceItem, 0, len(items))}
	subtotal := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return Totals{}, fmt.Errorf("%w: línea %d cantidad %d", domain.ErrInvalidQuantity, i+1, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return Totals{}, fmt.Errorf("%w: línea %d precio negativo", domain.ErrValidation, i+1)
		}
		item.Total = LineTotal(item.Quantity, item.UnitPrice).Round(2)
		subtotal = subtotal.Add(item.Total)
		out.Items = append(out.Items, item)
	}

	out.Subtotal = subtotal.Round(2)
	out.Tax = subtotal.Mul(taxPct).Div(hundred).Round(2)
	out.Discount = subtotal.Mul(discountPct).Div(hundred).Round(2)
	out.Total = out.Subtotal.Add(out.Tax).Sub(out.Discount)
	return out, nil
}

func checkPct(name string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: porcentaje de %s fuera de rango (%s)", domain.ErrValidation, name, pct.String())
	}
	return nil
}
