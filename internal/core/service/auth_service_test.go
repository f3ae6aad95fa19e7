package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubResetRepo struct {
	resets map[string]*domain.PasswordReset
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{resets: make(map[string]*domain.PasswordReset)}
}

func (r *stubResetRepo) Save(_ context.Context, reset *domain.PasswordReset) error {
	copy := *reset
	r.resets[reset.Token] = &copy
	return nil
}

func (r *stubResetRepo) Consume(_ context.Context, token string) (*domain.PasswordReset, error) {
	reset, ok := r.resets[token]
	if !ok {
		return nil, domain.ErrResetTokenInvalid
	}
	delete(r.resets, token)
	copy := *reset
	return &copy, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, roleID int) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       roleID,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubResetRepo(), "secret", time.Hour)
	seeded := seedUser(t, users, "treasurer@example.com", "s3cret", 2)

	token, user, err := svc.Login(context.Background(), "treasurer@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.ID != seeded.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != seeded.ID {
		t.Fatalf("id claim = %v, want %s", claims["id"], seeded.ID)
	}
	if roleID, _ := claims["role_id"].(float64); int(roleID) != 2 {
		t.Fatalf("role_id claim = %v, want 2", claims["role_id"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("token missing exp claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubResetRepo(), "secret", time.Hour)
	seedUser(t, users, "bob@example.com", "right", 4)

	if _, _, err := svc.Login(context.Background(), "bob@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailMasked(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubResetRepo(), "secret", time.Hour)

	// Unknown address must not be distinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubResetRepo(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_PasswordResetRoundTrip(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubResetRepo(), "secret", time.Hour)
	seeded := seedUser(t, users, "carol@example.com", "old-pass", 4)

	token, err := svc.RequestPasswordReset(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty reset token")
	}

	if err := svc.ResetPassword(context.Background(), token, "new-pass"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "carol@example.com", "old-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted, err = %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "carol@example.com", "new-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_ResetPassword_TokenSingleUse(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubResetRepo(), "secret", time.Hour)
	seeded := seedUser(t, users, "dave@example.com", "old", 4)

	token, err := svc.RequestPasswordReset(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "first"); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	if err := svc.ResetPassword(context.Background(), token, "second"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
}

func TestAuthService_ResetPassword_Expired(t *testing.T) {
	users := newStubUserRepo()
	resets := newStubResetRepo()
	svc := NewAuthService(users, resets, "secret", time.Hour)
	seeded := seedUser(t, users, "erin@example.com", "old", 4)

	_ = resets.Save(context.Background(), &domain.PasswordReset{
		Token:     "stale",
		UserID:    seeded.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	})

	if err := svc.ResetPassword(context.Background(), "stale", "new"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}
