package service

import (
	"context"
	"time"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

// ReviewService records supplier ratings and keeps the supplier's running
// average in step with them.
type ReviewService struct {
	reviews   ports.ReviewRepository
	suppliers ports.SupplierRepository
}

func NewReviewService(reviews ports.ReviewRepository, suppliers ports.SupplierRepository) *ReviewService {
	return &ReviewService{reviews: reviews, suppliers: suppliers}
}

func (s *ReviewService) Create(ctx context.Context, input ports.CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(input.Rating) {
		return nil, domain.ErrReviewInvalid
	}

	supplier, err := s.suppliers.FindByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		SupplierID: input.SupplierID,
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	// Incremental mean: avoids re-reading every review on each submission.
	total := supplier.Rating*float64(supplier.ReviewCount) + float64(input.Rating)
	supplier.ReviewCount++
	supplier.Rating = total / float64(supplier.ReviewCount)
	supplier.UpdatedAt = created.CreatedAt
	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *ReviewService) ListBySupplier(ctx context.Context, supplierID string) ([]domain.Review, error) {
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.reviews.ListBySupplier(ctx, supplierID)
}
