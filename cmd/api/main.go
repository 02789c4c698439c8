package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/medical-erp-api/docs"
	appanalytics "github.com/jhoicas/medical-erp-api/internal/application/analytics"
	"github.com/jhoicas/medical-erp-api/internal/application/auth"
	"github.com/jhoicas/medical-erp-api/internal/application/billing"
	appinv "github.com/jhoicas/medical-erp-api/internal/application/inventory"
	"github.com/jhoicas/medical-erp-api/internal/application/usecase"
	"github.com/jhoicas/medical-erp-api/internal/domain/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
	"github.com/jhoicas/medical-erp-api/internal/infrastructure/export"
	"github.com/jhoicas/medical-erp-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/medical-erp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medical-erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medical-erp-api/internal/interfaces/http"
	"github.com/jhoicas/medical-erp-api/pkg/config"
	"github.com/jhoicas/medical-erp-api/pkg/logger"
)

// storage repositorios elegidos según STORAGE_DRIVER.
type storage struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	suppliers repository.SupplierRepository
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	tx        appinv.TxRunner
	close     func()
}

// @title                       Medical ERP API
// @version                     1.0
// @description                 API del ERP médico: inventario, proveedores, clientes y facturación.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escriba 'Bearer' seguido de un espacio y el token JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Usuarios fijos: siempre en memoria, hash bcrypt calculado al arrancar.
	users, err := memory.DemoUsers(0)
	if err != nil {
		log.Fatal().Err(err).Msg("usuarios de demostración")
	}
	userRepo := memory.NewUserRepository(users...)

	policy, err := inventory.ParseOutboundPolicy(cfg.Inventory.OutboundPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de salidas")
	}
	ledger, err := appinv.NewLedgerService(ctx, store.tx, store.products, store.movements, log,
		inventory.WithOutboundPolicy(policy))
	if err != nil {
		log.Fatal().Err(err).Msg("libro de inventario")
	}

	productUC := usecase.NewProductUseCase(ledger)
	supplierUC := usecase.NewSupplierUseCase(store.suppliers)
	customerUC := billing.NewCustomerUseCase(store.customers)
	invoiceUC := billing.NewInvoiceUseCase(store.invoices, store.customers, ledger,
		decimal.NewFromInt(int64(cfg.Billing.DefaultTaxPct)))

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(store.invoices, store.customers, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(ledger, store.suppliers, store.customers, export.NewXLSXExporter())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Medical ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Ledger:      ledger,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		CustomerUC:  customerUC,
		InvoiceUC:   invoiceUC,
		InvoicePDF:  invoicePDFUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		m := memory.NewStore(cfg.Storage.SeedDemo)
		return &storage{
			products:  m.Products,
			movements: m.Movements,
			suppliers: m.Suppliers,
			customers: m.Customers,
			invoices:  m.Invoices,
			tx:        m.Tx,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	s := &storage{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}
	if cfg.Storage.SeedDemo {
		if err := seedIfEmpty(ctx, s, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return s, nil
}

// seedIfEmpty carga el catálogo de demostración cuando la tabla de productos está vacía.
func seedIfEmpty(ctx context.Context, s *storage, log *logger.Logger) error {
	existing, err := s.products.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	data := memory.Demo()
	for i := range data.Products {
		if err := s.products.Upsert(ctx, &data.Products[i]); err != nil {
			return err
		}
	}
	for i := range data.Suppliers {
		if err := s.suppliers.Create(ctx, &data.Suppliers[i]); err != nil {
			return err
		}
	}
	for i := range data.Customers {
		if err := s.customers.Create(ctx, &data.Customers[i]); err != nil {
			return err
		}
	}
	log.Info().
		Int("products", len(data.Products)).
		Int("suppliers", len(data.Suppliers)).
		Int("customers", len(data.Customers)).
		Msg("catálogo de demostración cargado")
	return nil
}
