package domain

import "time"

// Notification is an in-portal message addressed to a single user.
type Notification struct {
	ID        string    `json:"notification_id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
