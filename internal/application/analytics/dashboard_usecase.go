// Package analytics contiene los casos de uso del dashboard y de los reportes de inventario.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	appinv "github.com/jhoicas/medical-erp-api/internal/application/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos en el widget del dashboard

// InventorySnapshot lectura consistente del libro de inventario.
type InventorySnapshot interface {
	Snapshot() ([]entity.Product, []entity.StockMovement, []entity.StockAlert)
}

// InventoryWorkbook datos que se vuelcan al reporte exportable.
type InventoryWorkbook struct {
	GeneratedAt time.Time
	Products    []entity.Product
	Movements   []entity.StockMovement
	Alerts      []entity.StockAlert
}

// ReportExporter serializa el reporte de inventario (XLSX).
type ReportExporter interface {
	ExportInventory(ctx context.Context, wb InventoryWorkbook) ([]byte, error)
}

// DashboardUseCase arma el resumen del dashboard y el reporte de inventario.
//
// Fuentes: el libro de inventario (productos, movimientos, alertas) y los repositorios
// de proveedores y clientes.
type DashboardUseCase struct {
	ledger       InventorySnapshot
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
	exporter     ReportExporter
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. exporter puede ser nil si no se exporta.
func NewDashboardUseCase(
	ledger InventorySnapshot,
	supplierRepo repository.SupplierRepository,
	customerRepo repository.CustomerRepository,
	exporter ReportExporter,
) *DashboardUseCase {
	return &DashboardUseCase{
		ledger:       ledger,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		exporter:     exporter,
		now:          time.Now,
	}
}

type partners struct {
	suppliers []*entity.Supplier
	customers []*entity.Customer
}

// loadPartners consulta proveedores y clientes en paralelo.
func (uc *DashboardUseCase) loadPartners(ctx context.Context) (partners, error) {
	type suppliersResult struct {
		list []*entity.Supplier
		err  error
	}
	type customersResult struct {
		list []*entity.Customer
		err  error
	}

	supCh := make(chan suppliersResult, 1)
	cusCh := make(chan customersResult, 1)

	go func() {
		list, err := uc.supplierRepo.List(ctx)
		supCh <- suppliersResult{list, err}
	}()
	go func() {
		list, err := uc.customerRepo.List(ctx)
		cusCh <- customersResult{list, err}
	}()

	sup := <-supCh
	cus := <-cusCh
	if sup.err != nil {
		return partners{}, fmt.Errorf("dashboard: proveedores: %w", sup.err)
	}
	if cus.err != nil {
		return partners{}, fmt.Errorf("dashboard: clientes: %w", cus.err)
	}
	return partners{suppliers: sup.list, customers: cus.list}, nil
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	p, err := uc.loadPartners(ctx)
	if err != nil {
		return nil, err
	}
	products, movements, alerts := uc.ledger.Snapshot()

	activeSuppliers := 0
	for _, s := range p.suppliers {
		if s.Status == entity.StatusActive {
			activeSuppliers++
		}
	}
	activeCustomers := 0
	for _, c := range p.customers {
		if c.Status == entity.StatusActive {
			activeCustomers++
		}
	}

	alertDTOs := make([]dto.StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		alertDTOs = append(alertDTOs, appinv.ToAlertResponse(a))
	}
	recent := make([]dto.StockMovementResponse, 0, dashboardRecentMovements)
	for i := len(movements) - 1; i >= 0 && len(recent) < dashboardRecentMovements; i-- {
		recent = append(recent, appinv.ToMovementResponse(movements[i]))
	}

	return &dto.DashboardSummaryDTO{
		TotalValue:      inventory.Valuation(products),
		TotalProducts:   len(products),
		LowStockCount:   lowStockCount(products),
		ActiveSuppliers: activeSuppliers,
		ActiveCustomers: activeCustomers,
		Alerts:          alertDTOs,
		RecentMovements: recent,
	}, nil
}

// GetInventoryReport construye el reporte agregado de inventario.
func (uc *DashboardUseCase) GetInventoryReport(ctx context.Context) (*dto.InventoryReportDTO, error) {
	p, err := uc.loadPartners(ctx)
	if err != nil {
		return nil, err
	}
	products, movements, _ := uc.ledger.Snapshot()

	counts := map[string]int{}
	values := map[string]decimal.Decimal{}
	for _, pr := range products {
		counts[pr.Category]++
		values[pr.Category] = values[pr.Category].Add(pr.StockValue())
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	dist := make([]dto.CategoryCountDTO, 0, len(categories))
	byValue := make([]dto.CategoryValuationDTO, 0, len(categories))
	for _, c := range categories {
		dist = append(dist, dto.CategoryCountDTO{Category: c, Products: counts[c]})
		byValue = append(byValue, dto.CategoryValuationDTO{Category: c, Value: values[c]})
	}

	return &dto.InventoryReportDTO{
		TotalValue:           inventory.Valuation(products),
		LowStockCount:        lowStockCount(products),
		TotalCustomers:       len(p.customers),
		TotalSuppliers:       len(p.suppliers),
		CategoryDistribution: dist,
		MovementsByMonth:     movementsByMonth(movements),
		ValueByCategory:      byValue,
	}, nil
}

// ExportInventoryXLSX genera el libro XLSX del inventario actual.
func (uc *DashboardUseCase) ExportInventoryXLSX(ctx context.Context) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("reporte: exportador no configurado")
	}
	products, movements, alerts := uc.ledger.Snapshot()
	now := uc.now()
	data, err := uc.exporter.ExportInventory(ctx, InventoryWorkbook{
		GeneratedAt: now,
		Products:    products,
		Movements:   movements,
		Alerts:      alerts,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: exportar: %w", err)
	}
	return data, fmt.Sprintf("inventario_%s.xlsx", now.Format("20060102")), nil
}

// lowStockCount productos con stock en o bajo el mínimo.
func lowStockCount(products []entity.Product) int {
	n := 0
	for _, p := range products {
		if p.CurrentStock <= p.MinStock {
			n++
		}
	}
	return n
}

// movementsByMonth suma unidades por mes (YYYY-MM, UTC), en orden cronológico.
func movementsByMonth(movements []entity.StockMovement) []dto.MonthlyMovementDTO {
	byMonth := map[string]*dto.MonthlyMovementDTO{}
	for _, m := range movements {
		key := m.CreatedAt.UTC().Format("2006-01")
		row, ok := byMonth[key]
		if !ok {
			row = &dto.MonthlyMovementDTO{Month: key}
			byMonth[key] = row
		}
		if m.Type == entity.MovementTypeIn {
			row.In += m.Quantity
		} else {
			row.Out += m.Quantity
		}
	}
	months := make([]string, 0, len(byMonth))
	for k := range byMonth {
		months = append(months, k)
	}
	sort.Strings(months)
	out := make([]dto.MonthlyMovementDTO, 0, len(months))
	for _, k := range months {
		out = append(out, *byMonth[k])
	}
	return out
}
