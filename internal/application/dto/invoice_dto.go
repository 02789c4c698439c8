package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// TaxPct y DiscountPct son porcentajes (0-100); TaxPct nil usa el valor configurado.
type CreateInvoiceRequest struct {
	CustomerID  string               `json:"customer_id" validate:"required"`
	Items       []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxPct      *decimal.Decimal     `json:"tax_pct"`
	DiscountPct decimal.Decimal      `json:"discount_pct"`
	DueDate     *time.Time           `json:"due_date"`
	Status      string               `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
}

// InvoiceItemRequest línea de factura. Sin unit_price toma el precio de catálogo; un 0 explícito se respeta.
type InvoiceItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    string                `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	DueDate       time.Time             `json:"due_date"`
	CreatedBy     string                `json:"created_by"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
