package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

// SupplierService implements catalogue CRUD and search.
type SupplierService struct {
	suppliers ports.SupplierRepository
	fields    ports.FieldRepository
	logger    zerolog.Logger
}

func NewSupplierService(suppliers ports.SupplierRepository, fields ports.FieldRepository, logger zerolog.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, fields: fields, logger: logger}
}

func (s *SupplierService) Create(ctx context.Context, input ports.SupplierInput) (*domain.Supplier, error) {
	if err := s.checkField(ctx, input.FieldID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	supplier := &domain.Supplier{
		Name:        input.Name,
		FieldID:     input.FieldID,
		ContactName: input.ContactName,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.suppliers.Create(ctx, supplier)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("supplier_id", created.ID).Str("field_id", created.FieldID).Msg("supplier created")
	return created, nil
}

func (s *SupplierService) Search(ctx context.Context, filter domain.SupplierFilter) ([]domain.Supplier, error) {
	return s.suppliers.Search(ctx, filter)
}

func (s *SupplierService) Update(ctx context.Context, id string, input ports.SupplierInput) (*domain.Supplier, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FieldID != "" && input.FieldID != supplier.FieldID {
		if err := s.checkField(ctx, input.FieldID); err != nil {
			return nil, err
		}
		supplier.FieldID = input.FieldID
	}
	if input.Name != "" {
		supplier.Name = input.Name
	}
	supplier.ContactName = input.ContactName
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Address = input.Address
	supplier.UpdatedAt = time.Now().UTC()

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.suppliers.Delete(ctx, id)
}

func (s *SupplierService) checkField(ctx context.Context, fieldID string) error {
	if fieldID == "" {
		return domain.ErrFieldNotFound
	}
	_, err := s.fields.FindByID(ctx, fieldID)
	return err
}
