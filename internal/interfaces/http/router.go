package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/medical-erp-api/internal/application/analytics"
	"github.com/jhoicas/medical-erp-api/internal/application/auth"
	"github.com/jhoicas/medical-erp-api/internal/application/billing"
	"github.com/jhoicas/medical-erp-api/internal/application/inventory"
	"github.com/jhoicas/medical-erp-api/internal/application/usecase"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Ledger      *inventory.LedgerService
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Permisos: lecturas para cualquier usuario autenticado; movimientos, catálogo y facturas
// para admin y staff; proveedores y clientes solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	operators := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", requireAuth)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", operators, productHandler.Create)
	products.Put("/:id", operators, productHandler.Update)
	products.Delete("/:id", operators, productHandler.Delete)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup := api.Group("/inventory", requireAuth)
	invGroup.Post("/movements", operators, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/alerts", inventoryHandler.Alerts)
	invGroup.Get("/valuation", inventoryHandler.Valuation)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", requireAuth)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", requireAuth)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", adminOnly, customerHandler.Create)
	customers.Put("/:id", adminOnly, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices := api.Group("/invoices", requireAuth)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/", operators, invoiceHandler.Create)
	invoices.Patch("/:id/status", operators, invoiceHandler.UpdateStatus)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireAuth, dashboardHandler.GetSummary)
	reports := api.Group("/reports", requireAuth)
	reports.Get("/inventory", dashboardHandler.GetInventoryReport)
	reports.Get("/inventory.xlsx", dashboardHandler.ExportInventory)
}
