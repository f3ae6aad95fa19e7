package domain

import "time"

// User models an account able to sign in to the portal.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role_id"`
	BranchID     string    `json:"branch_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role resolves the user's coarse permission class from its raw role_id.
func (u *User) Role() Role {
	return RoleFromID(u.RoleID)
}

// PasswordReset is a one-time token allowing a user to set a new password
// without knowing the old one. Issued by treasury, consumed unauthenticated.
type PasswordReset struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
