package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

// SupplierRepository is the persistence boundary for the supplier catalogue.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	Search(ctx context.Context, filter domain.SupplierFilter) ([]domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

type SupplierInput struct {
	Name        string
	FieldID     string
	ContactName string
	Phone       string
	Email       string
	Address     string
}

type SupplierService interface {
	Create(ctx context.Context, input SupplierInput) (*domain.Supplier, error)
	Search(ctx context.Context, filter domain.SupplierFilter) ([]domain.Supplier, error)
	Update(ctx context.Context, id string, input SupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, id string) error
}
