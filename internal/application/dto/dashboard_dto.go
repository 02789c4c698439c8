package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalValue      decimal.Decimal         `json:"total_value"` // valorización del inventario
	TotalProducts   int                     `json:"total_products"`
	LowStockCount   int                     `json:"low_stock_count"` // productos con stock <= mínimo
	ActiveSuppliers int                     `json:"active_suppliers"`
	ActiveCustomers int                     `json:"active_customers"`
	Alerts          []StockAlertResponse    `json:"alerts"`
	RecentMovements []StockMovementResponse `json:"recent_movements"` // últimos 5
}

// InventoryReportDTO respuesta de GET /api/reports/inventory.
type InventoryReportDTO struct {
	TotalValue           decimal.Decimal        `json:"total_value"`
	LowStockCount        int                    `json:"low_stock_count"`
	TotalCustomers       int                    `json:"total_customers"`
	TotalSuppliers       int                    `json:"total_suppliers"`
	CategoryDistribution []CategoryCountDTO     `json:"category_distribution"`
	MovementsByMonth     []MonthlyMovementDTO   `json:"movements_by_month"`
	ValueByCategory      []CategoryValuationDTO `json:"value_by_category"`
}

// CategoryCountDTO cantidad de productos por categoría.
type CategoryCountDTO struct {
	Category string `json:"category"`
	Products int    `json:"products"`
}

// CategoryValuationDTO valor en mano por categoría.
type CategoryValuationDTO struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// MonthlyMovementDTO unidades movidas por mes (YYYY-MM).
type MonthlyMovementDTO struct {
	Month string `json:"month"`
	In    int    `json:"in"`
	Out   int    `json:"out"`
}
