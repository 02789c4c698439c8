package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/inventory"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
	"github.com/jhoicas/medical-erp-api/pkg/logger"
)

// LedgerService expone el libro de inventario a los handlers.
// Serializa todas las operaciones con un mutex (el libro no es concurrente) y persiste cada
// mutación en una transacción antes de confirmarla en memoria.
type LedgerService struct {
	mu     sync.Mutex
	ledger *inventory.Ledger
	tx     TxRunner
	log    *logger.Logger
}

// NewLedgerService carga productos y movimientos desde el almacenamiento y construye el libro.
func NewLedgerService(
	ctx context.Context,
	tx TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
	opts ...inventory.Option,
) (*LedgerService, error) {
	products, err := productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	movements, err := movRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar movimientos: %w", err)
	}
	ps := make([]entity.Product, 0, len(products))
	for _, p := range products {
		ps = append(ps, *p)
	}
	ms := make([]entity.StockMovement, 0, len(movements))
	for _, m := range movements {
		ms = append(ms, *m)
	}
	ledger, err := inventory.New(ps, ms, opts...)
	if err != nil {
		return nil, fmt.Errorf("construir libro de inventario: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	svc := &LedgerService{ledger: ledger, tx: tx, log: log.Component("ledger")}
	svc.log.Info().
		Int("products", len(ps)).
		Int("movements", len(ms)).
		Int("alerts", len(ledger.Alerts())).
		Str("outbound_policy", string(ledger.Policy())).
		Msg("libro de inventario cargado")
	return svc, nil
}

// ApplyMovement registra una entrada o salida de stock a nombre de userID.
func (s *LedgerService) ApplyMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResultResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.ledger.PlanMovement(inventory.MovementRequest{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reason:    in.Reason,
		Reference: in.Reference,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}

	err = s.tx.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		if err := productRepo.Upsert(ctx, &res.Product); err != nil {
			return err
		}
		return movRepo.Create(ctx, &res.Movement)
	})
	if err != nil {
		s.log.Error().Err(err).Str("product_id", in.ProductID).Msg("persistir movimiento")
		return nil, err
	}

	before := s.ledger.Alerts()
	if err := s.ledger.CommitMovement(res); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("product_id", res.Product.ID).
		Str("type", res.Movement.Type).
		Int("quantity", res.Movement.Quantity).
		Int("previous_stock", res.PreviousStock).
		Int("stock", res.Product.CurrentStock).
		Msg("movimiento aplicado")
	s.logNewAlerts(before)

	return &dto.MovementResultResponse{
		Product:       ToProductResponse(res.Product),
		Movement:      ToMovementResponse(res.Movement),
		PreviousStock: res.PreviousStock,
	}, nil
}

// CreateProduct da de alta un producto en el catálogo.
func (s *LedgerService) CreateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared, err := s.ledger.PrepareProduct(p)
	if err != nil {
		return entity.Product{}, err
	}
	if err := s.persistProduct(ctx, &prepared); err != nil {
		return entity.Product{}, err
	}
	before := s.ledger.Alerts()
	if err := s.ledger.PutProduct(prepared); err != nil {
		return entity.Product{}, err
	}
	s.logNewAlerts(before)
	return prepared, nil
}

// UpdateProduct aplica un patch de catálogo (sin stock).
func (s *LedgerService) UpdateProduct(ctx context.Context, id string, patch inventory.ProductPatch) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared, err := s.ledger.PrepareUpdate(id, patch)
	if err != nil {
		return entity.Product{}, err
	}
	if err := s.persistProduct(ctx, &prepared); err != nil {
		return entity.Product{}, err
	}
	before := s.ledger.Alerts()
	if err := s.ledger.PutProduct(prepared); err != nil {
		return entity.Product{}, err
	}
	s.logNewAlerts(before)
	return prepared, nil
}

// DeleteProduct elimina un producto del catálogo y del seguimiento de stock.
func (s *LedgerService) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ledger.Product(id); err != nil {
		return err
	}
	err := s.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		s.log.Error().Err(err).Str("product_id", id).Msg("eliminar producto")
		return err
	}
	return s.ledger.DeleteProduct(id)
}

// Product devuelve un producto por ID.
func (s *LedgerService) Product(id string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Product(id)
}

// Products devuelve una copia de todos los productos.
func (s *LedgerService) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Products()
}

// Snapshot devuelve productos, movimientos y alertas leídos bajo el mismo bloqueo (reportes).
func (s *LedgerService) Snapshot() ([]entity.Product, []entity.StockMovement, []entity.StockAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Products(), s.ledger.Movements(), s.ledger.Alerts()
}

// Movements lista movimientos, más reciente primero, opcionalmente filtrados por producto.
func (s *LedgerService) Movements(productID string, limit, offset int) dto.MovementListResponse {
	s.mu.Lock()
	all := s.ledger.Movements()
	s.mu.Unlock()

	filtered := make([]dto.StockMovementResponse, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if productID != "" && all[i].ProductID != productID {
			continue
		}
		filtered = append(filtered, ToMovementResponse(all[i]))
	}
	return dto.MovementListResponse{
		Items: dto.Paginate(filtered, limit, offset),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(filtered)},
	}
}

// Alerts devuelve el conjunto de alertas vigente; severity vacío = todas.
func (s *LedgerService) Alerts(severity string) []dto.StockAlertResponse {
	s.mu.Lock()
	alerts := s.ledger.Alerts()
	s.mu.Unlock()

	out := make([]dto.StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		if severity != "" && a.Severity != severity {
			continue
		}
		out = append(out, ToAlertResponse(a))
	}
	return out
}

// Valuation valor total del inventario.
func (s *LedgerService) Valuation() dto.ValuationResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	units := 0
	products := s.ledger.Products()
	for _, p := range products {
		units += p.CurrentStock
	}
	return dto.ValuationResponse{
		TotalValue:   s.ledger.Valuation(),
		ProductCount: len(products),
		TotalUnits:   units,
	}
}

func (s *LedgerService) persistProduct(ctx context.Context, p *entity.Product) error {
	err := s.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		return productRepo.Upsert(ctx, p)
	})
	if err != nil {
		s.log.Error().Err(err).Str("product_id", p.ID).Msg("persistir producto")
	}
	return err
}

// logNewAlerts registra en warn las alertas que no existían (o cambiaron de severidad).
func (s *LedgerService) logNewAlerts(before []entity.StockAlert) {
	prev := make(map[string]string, len(before))
	for _, a := range before {
		prev[a.ID] = a.Severity
	}
	for _, a := range s.ledger.Alerts() {
		if sev, ok := prev[a.ID]; ok && sev == a.Severity {
			continue
		}
		s.log.Warn().
			Str("product_id", a.ProductID).
			Str("alert_type", a.AlertType).
			Str("severity", a.Severity).
			Int("stock", a.CurrentStock).
			Int("min_stock", a.MinStock).
			Msg("alerta de stock")
	}
}
