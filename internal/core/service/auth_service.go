package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

// AuthService implements login and the password-reset round trip.
type AuthService struct {
	users     ports.UserRepository
	resets    ports.ResetRepository
	jwtSecret string
	tokenTTL  time.Duration
	resetTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, resets ports.ResetRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		resets:    resets,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		resetTTL:  time.Hour,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Do not reveal whether the address exists.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestPasswordReset mints a one-time token for the given user. The token is
// handed back to the treasury screen, which passes it to the user out of band.
func (s *AuthService) RequestPasswordReset(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	token, err := randomToken()
	if err != nil {
		return "", err
	}

	reset := &domain.PasswordReset{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.resetTTL),
	}
	if err := s.resets.Save(ctx, reset); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a one-time token and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" || newPassword == "" {
		return domain.ErrResetTokenInvalid
	}

	reset, err := s.resets.Consume(ctx, resetToken)
	if err != nil {
		return err
	}
	if reset.Expired(time.Now().UTC()) {
		return domain.ErrResetTokenInvalid
	}

	user, err := s.users.FindByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

// generateToken signs an HS256 token carrying the identity claims the portal
// decodes client-side: user id and raw role_id.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":      user.ID,
		"role_id": user.RoleID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
