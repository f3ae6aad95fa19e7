package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]domain.Review, error)
}

type CreateReviewInput struct {
	SupplierID string
	AuthorID   string
	AuthorName string
	Rating     int
	Comment    string
}

type ReviewService interface {
	Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]domain.Review, error)
}
