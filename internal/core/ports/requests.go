package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, request *domain.SupplierRequest) (*domain.SupplierRequest, error)
	FindByID(ctx context.Context, id string) (*domain.SupplierRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.SupplierRequest, error)
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)
	Update(ctx context.Context, request *domain.SupplierRequest) error
}

type CreateRequestInput struct {
	RequestedBy   string
	BranchID      string
	SupplierName  string
	FieldID       string
	ContactName   string
	Phone         string
	Justification string
}

// RequestService covers the branch-manager to treasury supplier request flow.
type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) (*domain.SupplierRequest, error)
	ListPending(ctx context.Context) ([]domain.SupplierRequest, error)
	CountPending(ctx context.Context) (int64, error)
	Resolve(ctx context.Context, id string, status domain.RequestStatus) (*domain.SupplierRequest, error)
}
