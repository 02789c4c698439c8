// Package export genera el reporte de inventario en XLSX con excelize.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/medical-erp-api/internal/application/analytics"
)

// Hojas del libro.
const (
	SheetProducts  = "Productos"
	SheetMovements = "Movimientos"
	SheetAlerts    = "Alertas"
)

var _ analytics.ReportExporter = (*XLSXExporter)(nil)

// XLSXExporter implementa analytics.ReportExporter.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// ExportInventory arma el libro con productos, movimientos (más reciente primero) y alertas.
func (e *XLSXExporter) ExportInventory(_ context.Context, wb analytics.InventoryWorkbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProducts); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetMovements, SheetAlerts} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	products := [][]any{{"ID", "SKU", "Nombre", "Categoría", "Stock", "Mínimo", "Máximo", "Precio unitario", "Valor", "Proveedor", "Vence", "Lote", "Ubicación"}}
	for _, p := range wb.Products {
		expiry := ""
		if p.ExpiryDate != nil {
			expiry = p.ExpiryDate.Format("2006-01-02")
		}
		products = append(products, []any{
			p.ID, p.SKU, p.Name, p.Category, p.CurrentStock, p.MinStock, p.MaxStock,
			p.UnitPrice.InexactFloat64(), p.StockValue().InexactFloat64(), p.Supplier, expiry, p.BatchNumber, p.Location,
		})
	}

	movements := [][]any{{"Fecha", "Producto", "Tipo", "Cantidad", "Motivo", "Referencia", "Usuario"}}
	for i := len(wb.Movements) - 1; i >= 0; i-- {
		m := wb.Movements[i]
		movements = append(movements, []any{
			m.CreatedAt.UTC().Format("2006-01-02 15:04:05"), m.ProductName, m.Type, m.Quantity, m.Reason, m.Reference, m.UserID,
		})
	}

	alerts := [][]any{{"Producto", "Tipo", "Severidad", "Stock", "Mínimo", "Generada"}}
	for _, a := range wb.Alerts {
		alerts = append(alerts, []any{
			a.ProductName, a.AlertType, a.Severity, a.CurrentStock, a.MinStock, a.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}

	for sheet, rows := range map[string][][]any{SheetProducts: products, SheetMovements: movements, SheetAlerts: alerts} {
		if err := writeRows(f, sheet, rows, header); err != nil {
			return nil, fmt.Errorf("hoja %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows escribe rows desde A1; la primera fila es el encabezado.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
