package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/medical-erp-api/internal/application/analytics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler maneja los endpoints del dashboard y de reportes.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del dashboard.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_value, total_products, low_stock_count,
// active_suppliers, active_customers, alerts, recent_movements[5]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetInventoryReport devuelve el reporte agregado por categoría y por mes.
// GET /api/reports/inventory
func (h *DashboardHandler) GetInventoryReport(c *fiber.Ctx) error {
	report, err := h.uc.GetInventoryReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// ExportInventory descarga el inventario como libro XLSX.
// GET /api/reports/inventory.xlsx
func (h *DashboardHandler) ExportInventory(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportInventoryXLSX(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
