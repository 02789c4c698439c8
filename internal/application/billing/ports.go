package billing

import (
	"context"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// ProductCatalog lectura de productos del libro de inventario (nombre y precio vigentes).
type ProductCatalog interface {
	Product(id string) (entity.Product, error)
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
