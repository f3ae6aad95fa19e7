// Package session persists the portal's login sessions. The browser only ever
// carries an opaque sid cookie; the API token it maps to lives server-side.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Store maps a session id to the upstream API token it was issued.
type Store interface {
	// Save associates token with sid for at most ttl.
	Save(ctx context.Context, sid, token string, ttl time.Duration) error
	// Read returns the token stored under sid. ok is false when the session
	// does not exist or has expired.
	Read(ctx context.Context, sid string) (token string, ok bool, err error)
	// Clear removes the session. Clearing an absent session is not an error.
	Clear(ctx context.Context, sid string) error
}

// NewSID returns a fresh random session id.
func NewSID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("session: random source unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
