package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type stubSupplierRepo struct {
	suppliers map[string]*domain.Supplier
	seq       int
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[string]*domain.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	r.seq++
	copy := *supplier
	copy.ID = fmt.Sprintf("sup_%d", r.seq)
	r.suppliers[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id string) (*domain.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}
	copy := *s
	return &copy, nil
}

func (r *stubSupplierRepo) Search(_ context.Context, filter domain.SupplierFilter) ([]domain.Supplier, error) {
	var out []domain.Supplier
	for _, s := range r.suppliers {
		if filter.FieldID != "" && s.FieldID != filter.FieldID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, supplier *domain.Supplier) error {
	if _, ok := r.suppliers[supplier.ID]; !ok {
		return domain.ErrSupplierNotFound
	}
	copy := *supplier
	r.suppliers[supplier.ID] = &copy
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.suppliers[id]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(r.suppliers, id)
	return nil
}

type stubReviewRepo struct {
	reviews []domain.Review
	seq     int
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.seq++
	copy := *review
	copy.ID = fmt.Sprintf("rev_%d", r.seq)
	r.reviews = append(r.reviews, copy)
	out := copy
	return &out, nil
}

func (r *stubReviewRepo) ListBySupplier(_ context.Context, supplierID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rev := range r.reviews {
		if rev.SupplierID == supplierID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func seedSupplier(t *testing.T, repo *stubSupplierRepo) *domain.Supplier {
	t.Helper()
	s, err := repo.Create(context.Background(), &domain.Supplier{
		Name:      "Negev Produce",
		FieldID:   "field_1",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return s
}

func TestReviewService_Create_UpdatesRunningAverage(t *testing.T) {
	suppliers := newStubSupplierRepo()
	svc := NewReviewService(&stubReviewRepo{}, suppliers)
	supplier := seedSupplier(t, suppliers)

	for _, rating := range []int{5, 3, 4} {
		if _, err := svc.Create(context.Background(), ports.CreateReviewInput{
			SupplierID: supplier.ID,
			AuthorID:   "user_1",
			Rating:     rating,
		}); err != nil {
			t.Fatalf("create review (%d stars): %v", rating, err)
		}
	}

	updated, err := suppliers.FindByID(context.Background(), supplier.ID)
	if err != nil {
		t.Fatalf("find supplier: %v", err)
	}
	if updated.ReviewCount != 3 {
		t.Fatalf("review count = %d, want 3", updated.ReviewCount)
	}
	if math.Abs(updated.Rating-4.0) > 1e-9 {
		t.Fatalf("rating = %f, want 4.0", updated.Rating)
	}
}

func TestReviewService_Create_RejectsBadRating(t *testing.T) {
	suppliers := newStubSupplierRepo()
	svc := NewReviewService(&stubReviewRepo{}, suppliers)
	supplier := seedSupplier(t, suppliers)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Create(context.Background(), ports.CreateReviewInput{
			SupplierID: supplier.ID,
			AuthorID:   "user_1",
			Rating:     rating,
		}); err != domain.ErrReviewInvalid {
			t.Fatalf("rating %d: expected ErrReviewInvalid, got %v", rating, err)
		}
	}
}

func TestReviewService_Create_UnknownSupplier(t *testing.T) {
	svc := NewReviewService(&stubReviewRepo{}, newStubSupplierRepo())

	if _, err := svc.Create(context.Background(), ports.CreateReviewInput{
		SupplierID: "missing",
		AuthorID:   "user_1",
		Rating:     4,
	}); err != domain.ErrSupplierNotFound {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}
}

func TestReviewService_ListBySupplier(t *testing.T) {
	suppliers := newStubSupplierRepo()
	svc := NewReviewService(&stubReviewRepo{}, suppliers)
	supplier := seedSupplier(t, suppliers)

	if _, err := svc.Create(context.Background(), ports.CreateReviewInput{
		SupplierID: supplier.ID,
		AuthorID:   "user_1",
		Rating:     5,
		Comment:    "reliable",
	}); err != nil {
		t.Fatalf("create review: %v", err)
	}

	reviews, err := svc.ListBySupplier(context.Background(), supplier.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Comment != "reliable" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}

	if _, err := svc.ListBySupplier(context.Background(), "missing"); err != domain.ErrSupplierNotFound {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}
}
