package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice representa una factura de venta con sus líneas.
// Tax y Discount son montos (no porcentajes); TaxPct y DiscountPct guardan lo solicitado.
type Invoice struct {
	ID            string
	InvoiceNumber string
	CustomerID    string
	CustomerName  string
	Items         []InvoiceItem
	TaxPct        decimal.Decimal
	DiscountPct   decimal.Decimal
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Status        string
	CreatedAt     time.Time
	DueDate       time.Time
	CreatedBy     string
}

// InvoiceItem línea de factura.
type InvoiceItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
