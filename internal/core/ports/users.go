package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

// UserRepository is the persistence boundary for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	RoleID   int
	BranchID string
}

type UpdateUserInput struct {
	Name     string
	Email    string
	RoleID   int
	BranchID string
}

// UserService covers treasury-side account management.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
