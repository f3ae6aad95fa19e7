package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

// RequestService implements the branch-manager to treasury supplier request
// flow. Creating a request notifies every treasury account; resolving it
// notifies the requesting manager.
type RequestService struct {
	requests      ports.RequestRepository
	users         ports.UserRepository
	notifications ports.NotificationService
	logger        zerolog.Logger
}

func NewRequestService(requests ports.RequestRepository, users ports.UserRepository, notifications ports.NotificationService, logger zerolog.Logger) *RequestService {
	return &RequestService{
		requests:      requests,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *RequestService) Create(ctx context.Context, input ports.CreateRequestInput) (*domain.SupplierRequest, error) {
	if input.SupplierName == "" || input.RequestedBy == "" {
		return nil, domain.ErrRequestInvalid
	}

	now := time.Now().UTC()
	request := &domain.SupplierRequest{
		RequestedBy:   input.RequestedBy,
		BranchID:      input.BranchID,
		SupplierName:  input.SupplierName,
		FieldID:       input.FieldID,
		ContactName:   input.ContactName,
		Phone:         input.Phone,
		Justification: input.Justification,
		Status:        domain.RequestPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.notifyTreasury(ctx, fmt.Sprintf("New supplier request: %s", created.SupplierName))
	return created, nil
}

func (s *RequestService) ListPending(ctx context.Context) ([]domain.SupplierRequest, error) {
	return s.requests.ListByStatus(ctx, domain.RequestPending)
}

func (s *RequestService) CountPending(ctx context.Context) (int64, error) {
	return s.requests.CountByStatus(ctx, domain.RequestPending)
}

func (s *RequestService) Resolve(ctx context.Context, id string, status domain.RequestStatus) (*domain.SupplierRequest, error) {
	if !domain.ValidRequestStatus(status) || status == domain.RequestPending {
		return nil, domain.ErrInvalidRequestStatus
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = status
	request.UpdatedAt = time.Now().UTC()
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Your supplier request %q was %s", request.SupplierName, status)
	if err := s.notifications.Notify(ctx, request.RequestedBy, msg); err != nil {
		// The resolution itself succeeded; a lost notification is not fatal.
		s.logger.Warn().Err(err).Str("request_id", request.ID).Msg("requester notification failed")
	}

	return request, nil
}

// notifyTreasury fans a message out to every treasury account. Failures are
// logged and skipped so one bad recipient cannot block the request.
func (s *RequestService) notifyTreasury(ctx context.Context, message string) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("treasury notification fan-out failed")
		return
	}
	for _, u := range users {
		if u.Role() != domain.RoleTreasury {
			continue
		}
		if err := s.notifications.Notify(ctx, u.ID, message); err != nil {
			s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("treasury notification failed")
		}
	}
}
