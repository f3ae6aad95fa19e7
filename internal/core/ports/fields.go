package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

type FieldRepository interface {
	Create(ctx context.Context, field *domain.SupplierField) (*domain.SupplierField, error)
	FindByID(ctx context.Context, id string) (*domain.SupplierField, error)
	List(ctx context.Context) ([]domain.SupplierField, error)
	Update(ctx context.Context, field *domain.SupplierField) error
}

type FieldService interface {
	Create(ctx context.Context, name string) (*domain.SupplierField, error)
	List(ctx context.Context) ([]domain.SupplierField, error)
	Rename(ctx context.Context, id, name string) (*domain.SupplierField, error)
}
