package service

import (
	"context"
	"strings"
	"time"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

// FieldService manages the supplier-field tag vocabulary.
type FieldService struct {
	fields ports.FieldRepository
}

func NewFieldService(fields ports.FieldRepository) *FieldService {
	return &FieldService{fields: fields}
}

func (s *FieldService) Create(ctx context.Context, name string) (*domain.SupplierField, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrFieldNotFound
	}

	existing, err := s.fields.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if strings.EqualFold(f.Name, name) {
			return nil, domain.ErrFieldExists
		}
	}

	return s.fields.Create(ctx, &domain.SupplierField{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *FieldService) List(ctx context.Context) ([]domain.SupplierField, error) {
	return s.fields.List(ctx)
}

func (s *FieldService) Rename(ctx context.Context, id, name string) (*domain.SupplierField, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrFieldNotFound
	}

	field, err := s.fields.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	field.Name = name
	if err := s.fields.Update(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}
