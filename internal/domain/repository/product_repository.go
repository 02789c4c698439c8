package repository

import (
	"context"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El estado autoritativo vive en el libro de inventario; el repositorio es su copia durable.
type ProductRepository interface {
	// Upsert inserta o reemplaza el producto completo (incluye CurrentStock y LastUpdated).
	Upsert(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListAll devuelve todos los productos en orden de alta (carga inicial del libro).
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
