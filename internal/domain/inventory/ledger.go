// Package inventory contiene el libro de inventario: única ruta de mutación de CurrentStock,
// registro de movimientos (auditoría) y derivación de alertas de stock.
//
// Ledger no es seguro para uso concurrente. ApplyMovement y las operaciones de catálogo leen y
// escriben el stock y luego regeneran el conjunto global de alertas; el llamador debe serializarlas
// (ver application/inventory.LedgerService).
package inventory

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// OutboundPolicy define qué hacer con una salida mayor al stock disponible.
type OutboundPolicy string

const (
	// OutboundClamp recorta el stock a cero sin error (comportamiento por defecto).
	OutboundClamp OutboundPolicy = "clamp"
	// OutboundReject rechaza la salida con domain.ErrInsufficientStock.
	OutboundReject OutboundPolicy = "reject"
)

// ParseOutboundPolicy convierte el valor de configuración en una política.
func ParseOutboundPolicy(s string) (OutboundPolicy, error) {
	switch OutboundPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutboundClamp:
		return OutboundClamp, nil
	case OutboundReject:
		return OutboundReject, nil
	}
	return "", fmt.Errorf("%w: política de salida %q", domain.ErrValidation, s)
}

// MovementRequest solicitud de movimiento de stock.
type MovementRequest struct {
	ProductID string
	Quantity  int
	Type      string // entity.MovementTypeIn | entity.MovementTypeOut
	Reason    string
	Reference string
	UserID    string
}

// MovementResult producto actualizado y movimiento creado.
// PreviousStock es el stock sobre el que se calculó el resultado.
type MovementResult struct {
	Product       entity.Product
	Movement      entity.StockMovement
	PreviousStock int
}

// ProductPatch actualización parcial de catálogo. No incluye CurrentStock: el stock solo
// cambia mediante movimientos.
type ProductPatch struct {
	SKU         *string
	Name        *string
	Category    *string
	Description *string
	UnitPrice   *decimal.Decimal
	MinStock    *int
	MaxStock    *int
	Supplier    *string
	ExpiryDate  *time.Time
	BatchNumber *string
	Location    *string
}

// Option configura un Ledger.
type Option func(*Ledger)

// WithClock fija la fuente de tiempo (tests).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator fija el generador de IDs de movimiento.
func WithIDGenerator(next func() string) Option {
	return func(l *Ledger) { l.newID = next }
}

// WithOutboundPolicy fija la política para salidas que exceden el stock.
func WithOutboundPolicy(p OutboundPolicy) Option {
	return func(l *Ledger) { l.policy = p }
}

// Ledger mantiene productos, movimientos y alertas en memoria.
type Ledger struct {
	products  []entity.Product
	index     map[string]int
	movements []entity.StockMovement
	alerts    []entity.StockAlert

	policy OutboundPolicy
	now    func() time.Time
	newID  func() string
}

// New construye el libro con un conjunto inicial de productos y movimientos históricos.
// Los productos deben cumplir las invariantes (stock >= 0, min <= max, IDs únicos).
func New(products []entity.Product, movements []entity.StockMovement, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		index:  make(map[string]int, len(products)),
		policy: OutboundClamp,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := l.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: producto %s repetido", domain.ErrDuplicate, p.ID)
		}
		l.index[p.ID] = len(l.products)
		l.products = append(l.products, p)
	}
	l.movements = append(l.movements, movements...)
	l.recomputeAlerts()
	return l, nil
}

// Policy devuelve la política de salidas vigente.
func (l *Ledger) Policy() OutboundPolicy { return l.policy }

// Products devuelve una copia de los productos en orden de alta.
func (l *Ledger) Products() []entity.Product {
	out := make([]entity.Product, len(l.products))
	copy(out, l.products)
	return out
}

// Product devuelve un producto por ID.
func (l *Ledger) Product(id string) (entity.Product, error) {
	i, ok := l.index[id]
	if !ok {
		return entity.Product{}, fmt.Errorf("%w: producto %q", domain.ErrNotFound, id)
	}
	return l.products[i], nil
}

// Movements devuelve una copia del registro de movimientos en orden de creación.
func (l *Ledger) Movements() []entity.StockMovement {
	out := make([]entity.StockMovement, len(l.movements))
	copy(out, l.movements)
	return out
}

// Alerts devuelve una copia del conjunto de alertas vigente.
func (l *Ledger) Alerts() []entity.StockAlert {
	out := make([]entity.StockAlert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// Valuation valor total del inventario en mano.
func (l *Ledger) Valuation() decimal.Decimal {
	return Valuation(l.products)
}

// ApplyMovement valida y aplica un movimiento: actualiza stock y LastUpdated, agrega exactamente
// un movimiento y regenera las alertas. Si falla la validación no cambia nada.
func (l *Ledger) ApplyMovement(req MovementRequest) (MovementResult, error) {
	res, err := l.PlanMovement(req)
	if err != nil {
		return MovementResult{}, err
	}
	if err := l.CommitMovement(res); err != nil {
		return MovementResult{}, err
	}
	return res, nil
}

// PlanMovement calcula el resultado de un movimiento sin aplicarlo.
// Permite persistir el resultado antes de confirmarlo con CommitMovement.
func (l *Ledger) PlanMovement(req MovementRequest) (MovementResult, error) {
	product, err := l.Product(req.ProductID)
	if err != nil {
		return MovementResult{}, err
	}
	if req.Quantity <= 0 {
		return MovementResult{}, fmt.Errorf("%w: %d (debe ser un entero positivo)", domain.ErrInvalidQuantity, req.Quantity)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return MovementResult{}, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrValidation)
	}

	previous := product.CurrentStock
	var next int
	switch req.Type {
	case entity.MovementTypeIn:
		if req.Quantity > math.MaxInt-previous {
			return MovementResult{}, fmt.Errorf("%w: %d excede la capacidad del stock (actual %d)", domain.ErrInvalidQuantity, req.Quantity, previous)
		}
		next = previous + req.Quantity
	case entity.MovementTypeOut:
		if req.Quantity > previous && l.policy == OutboundReject {
			return MovementResult{}, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, previous, req.Quantity)
		}
		next = max(0, previous-req.Quantity)
	default:
		return MovementResult{}, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrValidation, req.Type)
	}

	now := l.now()
	product.CurrentStock = next
	product.LastUpdated = now

	return MovementResult{
		Product: product,
		Movement: entity.StockMovement{
			ID:          l.newID(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        req.Type,
			Quantity:    req.Quantity,
			Reason:      req.Reason,
			Reference:   req.Reference,
			UserID:      req.UserID,
			CreatedAt:   now,
		},
		PreviousStock: previous,
	}, nil
}

// CommitMovement confirma un resultado de PlanMovement. Falla con ErrConflict si el stock
// del producto cambió desde que se planificó.
func (l *Ledger) CommitMovement(res MovementResult) error {
	i, ok := l.index[res.Product.ID]
	if !ok {
		return fmt.Errorf("%w: producto %q", domain.ErrNotFound, res.Product.ID)
	}
	if l.products[i].CurrentStock != res.PreviousStock {
		return fmt.Errorf("%w: el stock de %q cambió desde la planificación", domain.ErrConflict, res.Product.ID)
	}
	l.products[i].CurrentStock = res.Product.CurrentStock
	l.products[i].LastUpdated = res.Product.LastUpdated
	l.movements = append(l.movements, res.Movement)
	l.recomputeAlerts()
	return nil
}

// PrepareProduct valida un producto nuevo y le asigna LastUpdated, sin registrarlo.
func (l *Ledger) PrepareProduct(p entity.Product) (entity.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return entity.Product{}, fmt.Errorf("%w: id requerido", domain.ErrValidation)
	}
	if _, dup := l.index[p.ID]; dup {
		return entity.Product{}, fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
	}
	if err := l.checkSKU(p.ID, p.SKU); err != nil {
		return entity.Product{}, err
	}
	if err := validateProduct(p); err != nil {
		return entity.Product{}, err
	}
	p.LastUpdated = l.now()
	return p, nil
}

// PrepareUpdate aplica un patch de catálogo sobre el estado actual y valida el resultado, sin registrarlo.
func (l *Ledger) PrepareUpdate(id string, patch ProductPatch) (entity.Product, error) {
	p, err := l.Product(id)
	if err != nil {
		return entity.Product{}, err
	}
	if patch.SKU != nil {
		if err := l.checkSKU(id, *patch.SKU); err != nil {
			return entity.Product{}, err
		}
		p.SKU = *patch.SKU
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	if patch.MaxStock != nil {
		p.MaxStock = *patch.MaxStock
	}
	if patch.Supplier != nil {
		p.Supplier = *patch.Supplier
	}
	if patch.ExpiryDate != nil {
		exp := *patch.ExpiryDate
		p.ExpiryDate = &exp
	}
	if patch.BatchNumber != nil {
		p.BatchNumber = *patch.BatchNumber
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if err := validateProduct(p); err != nil {
		return entity.Product{}, err
	}
	p.LastUpdated = l.now()
	return p, nil
}

// PutProduct registra un producto preparado (alta o reemplazo de catálogo) y regenera las alertas.
// Para productos existentes CurrentStock debe coincidir con el registrado: el stock no se escribe por aquí.
func (l *Ledger) PutProduct(p entity.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if i, ok := l.index[p.ID]; ok {
		if l.products[i].CurrentStock != p.CurrentStock {
			return fmt.Errorf("%w: el stock de %q solo cambia mediante movimientos", domain.ErrConflict, p.ID)
		}
		l.products[i] = p
	} else {
		l.index[p.ID] = len(l.products)
		l.products = append(l.products, p)
	}
	l.recomputeAlerts()
	return nil
}

// AddProduct valida y registra un producto nuevo.
func (l *Ledger) AddProduct(p entity.Product) (entity.Product, error) {
	prepared, err := l.PrepareProduct(p)
	if err != nil {
		return entity.Product{}, err
	}
	if err := l.PutProduct(prepared); err != nil {
		return entity.Product{}, err
	}
	return prepared, nil
}

// UpdateProduct aplica un patch de catálogo.
func (l *Ledger) UpdateProduct(id string, patch ProductPatch) (entity.Product, error) {
	prepared, err := l.PrepareUpdate(id, patch)
	if err != nil {
		return entity.Product{}, err
	}
	if err := l.PutProduct(prepared); err != nil {
		return entity.Product{}, err
	}
	return prepared, nil
}

// DeleteProduct deja de seguir un producto. Sus movimientos históricos se conservan.
func (l *Ledger) DeleteProduct(id string) error {
	i, ok := l.index[id]
	if !ok {
		return fmt.Errorf("%w: producto %q", domain.ErrNotFound, id)
	}
	l.products = append(l.products[:i], l.products[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.products); j++ {
		l.index[l.products[j].ID] = j
	}
	l.recomputeAlerts()
	return nil
}

// recomputeAlerts reemplaza el conjunto de alertas de una sola vez.
func (l *Ledger) recomputeAlerts() {
	next := RecomputeAlerts(l.products, l.now())
	carryCreatedAt(next, l.alerts)
	l.alerts = next
}

func (l *Ledger) checkSKU(id, sku string) error {
	if sku == "" {
		return nil
	}
	for _, p := range l.products {
		if p.ID != id && strings.EqualFold(p.SKU, sku) {
			return fmt.Errorf("%w: SKU %s ya existe", domain.ErrDuplicate, sku)
		}
	}
	return nil
}

func validateProduct(p entity.Product) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: id requerido", domain.ErrValidation)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: nombre requerido", domain.ErrValidation)
	case p.UnitPrice.IsNegative():
		return fmt.Errorf("%w: precio unitario negativo", domain.ErrValidation)
	case p.CurrentStock < 0:
		return fmt.Errorf("%w: stock negativo", domain.ErrInvalidQuantity)
	case p.MinStock < 0:
		return fmt.Errorf("%w: stock mínimo negativo", domain.ErrValidation)
	case p.MinStock > p.MaxStock:
		return fmt.Errorf("%w: stock mínimo (%d) mayor que máximo (%d)", domain.ErrValidation, p.MinStock, p.MaxStock)
	}
	return nil
}
