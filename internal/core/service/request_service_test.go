package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type stubRequestRepo struct {
	requests map[string]*domain.SupplierRequest
	seq      int
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[string]*domain.SupplierRequest)}
}

func (r *stubRequestRepo) Create(_ context.Context, request *domain.SupplierRequest) (*domain.SupplierRequest, error) {
	r.seq++
	copy := *request
	copy.ID = fmt.Sprintf("req_%d", r.seq)
	r.requests[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.SupplierRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	copy := *req
	return &copy, nil
}

func (r *stubRequestRepo) ListByStatus(_ context.Context, status domain.RequestStatus) ([]domain.SupplierRequest, error) {
	var out []domain.SupplierRequest
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubRequestRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	list, _ := r.ListByStatus(ctx, status)
	return int64(len(list)), nil
}

func (r *stubRequestRepo) Update(_ context.Context, request *domain.SupplierRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return domain.ErrRequestNotFound
	}
	copy := *request
	r.requests[request.ID] = &copy
	return nil
}

type recordingNotifier struct {
	sent []string // "<user_id>: <message>"
}

func (n *recordingNotifier) Notify(_ context.Context, userID, message string) error {
	n.sent = append(n.sent, userID+": "+message)
	return nil
}

func (n *recordingNotifier) ListForUser(context.Context, string) ([]domain.Notification, error) {
	return nil, nil
}
func (n *recordingNotifier) MarkRead(context.Context, string, string) error    { return nil }
func (n *recordingNotifier) MarkAllRead(context.Context, string) error         { return nil }

func requestServiceUnderTest(t *testing.T) (*RequestService, *stubRequestRepo, *stubUserRepo, *recordingNotifier) {
	t.Helper()
	requests := newStubRequestRepo()
	users := newStubUserRepo()
	notifier := &recordingNotifier{}
	svc := NewRequestService(requests, users, notifier, zerolog.Nop())
	return svc, requests, users, notifier
}

func TestRequestService_Create_NotifiesTreasuryOnly(t *testing.T) {
	svc, _, users, notifier := requestServiceUnderTest(t)
	treasurer := seedUser(t, users, "treasurer@example.com", "pw", 2)
	manager := seedUser(t, users, "manager@example.com", "pw", 4)

	created, err := svc.Create(context.Background(), ports.CreateRequestInput{
		RequestedBy:  manager.ID,
		BranchID:     "branch_1",
		SupplierName: "Negev Produce",
		FieldID:      "field_1",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if created.Status != domain.RequestPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d: %v", len(notifier.sent), notifier.sent)
	}
	if !strings.HasPrefix(notifier.sent[0], treasurer.ID+": ") {
		t.Fatalf("notification went to %q, want treasurer %s", notifier.sent[0], treasurer.ID)
	}
}

func TestRequestService_Create_MissingSupplier(t *testing.T) {
	svc, _, _, _ := requestServiceUnderTest(t)

	_, err := svc.Create(context.Background(), ports.CreateRequestInput{RequestedBy: "u1"})
	if !errors.Is(err, domain.ErrRequestInvalid) {
		t.Fatalf("err = %v, want ErrRequestInvalid", err)
	}

	_, err = svc.Create(context.Background(), ports.CreateRequestInput{SupplierName: "Acme"})
	if !errors.Is(err, domain.ErrRequestInvalid) {
		t.Fatalf("err = %v, want ErrRequestInvalid", err)
	}
}

func TestRequestService_Resolve_ApproveNotifiesRequester(t *testing.T) {
	svc, _, users, notifier := requestServiceUnderTest(t)
	manager := seedUser(t, users, "manager@example.com", "pw", 4)

	created, err := svc.Create(context.Background(), ports.CreateRequestInput{
		RequestedBy:  manager.ID,
		SupplierName: "Negev Produce",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	notifier.sent = nil

	resolved, err := svc.Resolve(context.Background(), created.ID, domain.RequestApproved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != domain.RequestApproved {
		t.Fatalf("status = %s, want approved", resolved.Status)
	}

	if len(notifier.sent) != 1 || !strings.HasPrefix(notifier.sent[0], manager.ID+": ") {
		t.Fatalf("requester not notified: %v", notifier.sent)
	}

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("resolved request still pending: %v", pending)
	}
}

func TestRequestService_Resolve_RejectsBadStatus(t *testing.T) {
	svc, _, users, _ := requestServiceUnderTest(t)
	manager := seedUser(t, users, "manager@example.com", "pw", 4)

	created, err := svc.Create(context.Background(), ports.CreateRequestInput{
		RequestedBy:  manager.ID,
		SupplierName: "Negev Produce",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), created.ID, "shipped"); err != domain.ErrInvalidRequestStatus {
		t.Fatalf("expected ErrInvalidRequestStatus, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), created.ID, domain.RequestPending); err != domain.ErrInvalidRequestStatus {
		t.Fatalf("expected ErrInvalidRequestStatus for pending, got %v", err)
	}
}

func TestRequestService_CountPending(t *testing.T) {
	svc, _, users, _ := requestServiceUnderTest(t)
	manager := seedUser(t, users, "manager@example.com", "pw", 4)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateRequestInput{
			RequestedBy:  manager.ID,
			SupplierName: fmt.Sprintf("Supplier %d", i),
		}); err != nil {
			t.Fatalf("create request %d: %v", i, err)
		}
	}

	count, err := svc.CountPending(context.Background())
	if err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
