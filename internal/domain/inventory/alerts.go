package inventory

import (
	"time"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// AlertID devuelve el identificador determinista de la alerta de un producto.
func AlertID(productID string) string {
	return "alert_" + productID
}

// Classify devuelve tipo y severidad de alerta para un nivel de stock, y false si no corresponde alerta.
//
//	stock == 0               -> out_of_stock / high
//	stock <= min*0.5         -> low_stock / medium
//	min*0.5 < stock <= min   -> low_stock / low
//	stock > min              -> sin alerta
func Classify(currentStock, minStock int) (alertType, severity string, ok bool) {
	if currentStock > minStock {
		return "", "", false
	}
	switch {
	case currentStock == 0:
		return entity.AlertTypeOutOfStock, entity.SeverityHigh, true
	case currentStock <= minStock/2: // stock <= min*0.5 sin aritmética flotante ni desbordamiento
		return entity.AlertTypeLowStock, entity.SeverityMedium, true
	default:
		return entity.AlertTypeLowStock, entity.SeverityLow, true
	}
}

// RecomputeAlerts deriva el conjunto completo de alertas a partir de los productos.
// Función pura: mismo input, mismo resultado. Una alerta por producto con stock <= mínimo,
// en el mismo orden que products.
func RecomputeAlerts(products []entity.Product, now time.Time) []entity.StockAlert {
	alerts := make([]entity.StockAlert, 0)
	for _, p := range products {
		alertType, severity, ok := Classify(p.CurrentStock, p.MinStock)
		if !ok {
			continue
		}
		alerts = append(alerts, entity.StockAlert{
			ID:           AlertID(p.ID),
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			AlertType:    alertType,
			Severity:     severity,
			CreatedAt:    now,
		})
	}
	return alerts
}

// carryCreatedAt conserva la fecha de generación de las alertas que siguen iguales
// (mismo ID, tipo y severidad) para que recalcular sin cambios no altere el conjunto.
func carryCreatedAt(next, prev []entity.StockAlert) {
	if len(prev) == 0 {
		return
	}
	byID := make(map[string]entity.StockAlert, len(prev))
	for _, a := range prev {
		byID[a.ID] = a
	}
	for i := range next {
		old, ok := byID[next[i].ID]
		if ok && old.AlertType == next[i].AlertType && old.Severity == next[i].Severity {
			next[i].CreatedAt = old.CreatedAt
		}
	}
}
