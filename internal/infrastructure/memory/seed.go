package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
)

// DemoPassword contraseña común de la lista de usuarios fija.
const DemoPassword = "password"

// DemoData catálogo de demostración con el que arranca el almacenamiento.
type DemoData struct {
	Products  []entity.Product
	Suppliers []entity.Supplier
	Customers []entity.Customer
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// Demo devuelve una copia nueva del catálogo de demostración.
func Demo() DemoData {
	return DemoData{
		Products: []entity.Product{
			{
				ID: "1", SKU: "MED001", Name: "Paracetamol 500mg", Category: "Pain Relief",
				Description: "Pain relief medication", UnitPrice: decimal.RequireFromString("2.50"),
				CurrentStock: 50, MinStock: 100, MaxStock: 1000, Supplier: "PharmaCorp Ltd",
				ExpiryDate: day("2025-12-31"), BatchNumber: "PC001", Location: "Warehouse A-1",
				LastUpdated: date("2024-01-15T10:30:00Z"),
			},
			{
				ID: "2", SKU: "MED002", Name: "Amoxicillin 250mg", Category: "Antibiotics",
				Description: "Antibiotic medication", UnitPrice: decimal.RequireFromString("5.75"),
				CurrentStock: 200, MinStock: 150, MaxStock: 800, Supplier: "MediSupply Co",
				ExpiryDate: day("2025-08-15"), BatchNumber: "MS002", Location: "Warehouse B-2",
				LastUpdated: date("2024-01-14T14:20:00Z"),
			},
			{
				ID: "3", SKU: "DEV001", Name: "Digital Thermometer", Category: "Medical Devices",
				Description: "Digital body thermometer", UnitPrice: decimal.RequireFromString("15.99"),
				CurrentStock: 25, MinStock: 50, MaxStock: 200, Supplier: "TechMed Solutions",
				Location: "Warehouse C-1", LastUpdated: date("2024-01-16T09:15:00Z"),
			},
		},
		Suppliers: []entity.Supplier{
			{
				ID: "1", Name: "PharmaCorp Ltd", ContactPerson: "Michael Johnson",
				Email: "contact@pharmacorp.com", Phone: "+1-555-0123", Address: "123 Pharma Street",
				City: "New York", Country: "USA", ProductsSupplied: []string{"Paracetamol", "Ibuprofen", "Aspirin"},
				Status: entity.StatusActive, CreatedAt: date("2023-01-15T00:00:00Z"),
			},
			{
				ID: "2", Name: "MediSupply Co", ContactPerson: "Sarah Wilson",
				Email: "info@medisupply.com", Phone: "+1-555-0456", Address: "456 Medical Ave",
				City: "Chicago", Country: "USA", ProductsSupplied: []string{"Antibiotics", "Vitamins"},
				Status: entity.StatusActive, CreatedAt: date("2023-02-10T00:00:00Z"),
			},
		},
		Customers: []entity.Customer{
			{
				ID: "1", Name: "City General Hospital", Type: entity.CustomerTypeHospital,
				ContactPerson: "Dr. Emily Brown", Email: "procurement@citygeneral.com", Phone: "+1-555-0789",
				Address: "789 Hospital Blvd", City: "Boston", Country: "USA",
				CreditLimit: decimal.NewFromInt(50000), CurrentBalance: decimal.NewFromInt(12500),
				Status: entity.StatusActive, CreatedAt: date("2023-03-01T00:00:00Z"),
			},
			{
				ID: "2", Name: "MediClinic Network", Type: entity.CustomerTypeClinic,
				ContactPerson: "Mark Davis", Email: "orders@mediclinic.com", Phone: "+1-555-0321",
				Address: "321 Clinic Road", City: "Los Angeles", Country: "USA",
				CreditLimit: decimal.NewFromInt(25000), CurrentBalance: decimal.NewFromInt(3200),
				Status: entity.StatusActive, CreatedAt: date("2023-03-15T00:00:00Z"),
			},
		},
	}
}

// DemoUsers construye la lista de credenciales fija con el hash bcrypt de DemoPassword.
// cost <= 0 usa bcrypt.DefaultCost.
func DemoUsers(cost int) ([]entity.User, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña demo: %w", err)
	}
	created := date("2024-01-01T00:00:00Z")
	return []entity.User{
		{ID: "1", Username: "admin", Email: "admin@medicalerp.com", Name: "John Admin", Role: entity.RoleAdmin, PasswordHash: string(hash), CreatedAt: created},
		{ID: "2", Username: "staff", Email: "staff@medicalerp.com", Name: "Jane Staff", Role: entity.RoleStaff, PasswordHash: string(hash), CreatedAt: created},
		{ID: "3", Username: "supplier", Email: "supplier@medicalerp.com", Name: "Bob Supplier", Role: entity.RoleSupplier, PasswordHash: string(hash), CreatedAt: created},
	}, nil
}

// Store agrupa los repositorios en memoria.
type Store struct {
	Products  *ProductRepository
	Movements *StockMovementRepository
	Suppliers *SupplierRepository
	Customers *CustomerRepository
	Invoices  *InvoiceRepository
	Tx        *TxRunner
}

// NewStore crea los repositorios en memoria, opcionalmente con el catálogo de demostración.
func NewStore(seed bool) *Store {
	var data DemoData
	if seed {
		data = Demo()
	}
	s := &Store{
		Products:  NewProductRepository(data.Products...),
		Movements: NewStockMovementRepository(),
		Suppliers: NewSupplierRepository(data.Suppliers...),
		Customers: NewCustomerRepository(data.Customers...),
		Invoices:  NewInvoiceRepository(),
	}
	s.Tx = NewTxRunner(s.Products, s.Movements)
	return s
}
