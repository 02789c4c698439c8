package inventory

import (
	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/inventory"
)

// Estados de stock expuestos en ProductResponse.StockStatus.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// StockStatus deriva el estado implícito del producto de la comparación stock vs mínimo.
func StockStatus(p entity.Product) string {
	alertType, _, ok := inventory.Classify(p.CurrentStock, p.MinStock)
	if !ok {
		return StockStatusInStock
	}
	if alertType == entity.AlertTypeOutOfStock {
		return StockStatusOutOfStock
	}
	return StockStatusLowStock
}

// ToProductResponse mapea la entidad a su DTO.
func ToProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		UnitPrice:    p.UnitPrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		StockStatus:  StockStatus(p),
		Supplier:     p.Supplier,
		ExpiryDate:   p.ExpiryDate,
		BatchNumber:  p.BatchNumber,
		Location:     p.Location,
		LastUpdated:  p.LastUpdated,
	}
}

// ToMovementResponse mapea un movimiento a su DTO.
func ToMovementResponse(m entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToAlertResponse mapea una alerta a su DTO.
func ToAlertResponse(a entity.StockAlert) dto.StockAlertResponse {
	return dto.StockAlertResponse{
		ID:           a.ID,
		ProductID:    a.ProductID,
		ProductName:  a.ProductName,
		CurrentStock: a.CurrentStock,
		MinStock:     a.MinStock,
		AlertType:    a.AlertType,
		Severity:     a.Severity,
		CreatedAt:    a.CreatedAt,
	}
}
