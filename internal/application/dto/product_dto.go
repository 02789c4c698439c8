package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. CurrentStock es el stock inicial.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"required,max=100"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int             `json:"current_stock" validate:"min=0"`
	MinStock     int             `json:"min_stock" validate:"min=0"`
	MaxStock     int             `json:"max_stock" validate:"min=0,gtefield=MinStock"`
	Supplier     string          `json:"supplier"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	BatchNumber  string          `json:"batch_number"`
	Location     string          `json:"location"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock    *int             `json:"max_stock" validate:"omitempty,min=0"`
	Supplier    *string          `json:"supplier"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
	BatchNumber *string          `json:"batch_number"`
	Location    *string          `json:"location"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	MaxStock     int             `json:"max_stock"`
	StockStatus  string          `json:"stock_status"` // in_stock | low_stock | out_of_stock
	Supplier     string          `json:"supplier"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	BatchNumber  string          `json:"batch_number,omitempty"`
	Location     string          `json:"location"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
