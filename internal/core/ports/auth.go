package ports

import (
	"context"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

// AuthService covers login, password reset issuance and consumption.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	RequestPasswordReset(ctx context.Context, userID string) (resetToken string, err error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// ResetRepository persists one-time password reset tokens.
type ResetRepository interface {
	Save(ctx context.Context, reset *domain.PasswordReset) error
	// Consume returns the reset for token and deletes it atomically.
	Consume(ctx context.Context, token string) (*domain.PasswordReset, error)
}
