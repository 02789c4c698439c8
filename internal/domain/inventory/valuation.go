package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// Valuation suma CurrentStock * UnitPrice sobre todos los productos.
func Valuation(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total
}
