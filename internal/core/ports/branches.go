package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

type BranchRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Branch, error)
	FindByManager(ctx context.Context, userID string) (*domain.Branch, error)
}

// TransactionRepository reads booked cash movements. The portal only ever
// aggregates and lists; bookings arrive from the accounting import, not here.
type TransactionRepository interface {
	ListByBranch(ctx context.Context, branchID string, limit int64) ([]domain.Transaction, error)
	SumByBranch(ctx context.Context, branchID string) (income, expenses float64, err error)
	ListBetween(ctx context.Context, from, to int64) ([]domain.Transaction, error)
}

type BranchService interface {
	BranchOfUser(ctx context.Context, userID string) (*domain.Branch, error)
	Balance(ctx context.Context, branchID string) (float64, error)
	RecentTransactions(ctx context.Context, branchID string) ([]domain.Transaction, error)
}

type DashboardService interface {
	Summary(ctx context.Context, period domain.SummaryPeriod) (*domain.DashboardSummary, error)
	AnnualCashFlow(ctx context.Context, year int) (*domain.AnnualCashFlow, error)
}
