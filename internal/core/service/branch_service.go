package service

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

const recentTransactionLimit = 20

// BranchService serves the branch-manager portal: the manager's branch, its
// balance, and its most recent cash movements.
type BranchService struct {
	branches     ports.BranchRepository
	transactions ports.TransactionRepository
}

func NewBranchService(branches ports.BranchRepository, transactions ports.TransactionRepository) *BranchService {
	return &BranchService{branches: branches, transactions: transactions}
}

func (s *BranchService) BranchOfUser(ctx context.Context, userID string) (*domain.Branch, error) {
	return s.branches.FindByManager(ctx, userID)
}

func (s *BranchService) Balance(ctx context.Context, branchID string) (float64, error) {
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return 0, err
	}
	income, expenses, err := s.transactions.SumByBranch(ctx, branchID)
	if err != nil {
		return 0, err
	}
	return income - expenses, nil
}

func (s *BranchService) RecentTransactions(ctx context.Context, branchID string) ([]domain.Transaction, error) {
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, err
	}
	return s.transactions.ListByBranch(ctx, branchID, recentTransactionLimit)
}
