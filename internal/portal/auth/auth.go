// Package auth owns the portal's notion of "who is signed in". Identity is
// decoded locally from the stored API token; the portal never calls the API
// just to find out who a session belongs to.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/metrics"
	"github.com/kibfin/supplier-portal/internal/portal/session"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// Identity is the signed-in user as seen by the portal: just enough to route
// and render, nothing more.
type Identity struct {
	UserID string
	Role   domain.Role
}

// Manager ties the session store and the upstream login endpoint together.
type Manager struct {
	store      session.Store
	api        *upstream.Client
	sessionTTL time.Duration
	logger     zerolog.Logger

	// onLogout runs after a session is destroyed, whatever the cause. The
	// router uses it to stop the session's notification poller.
	onLogout func(sid string)
}

func NewManager(store session.Store, api *upstream.Client, sessionTTL time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		api:        api,
		sessionTTL: sessionTTL,
		logger:     logger,
		onLogout:   func(string) {},
	}
}

// OnLogout registers fn to run whenever a session is destroyed. Call once
// during wiring, before the manager handles traffic.
func (m *Manager) OnLogout(fn func(sid string)) {
	if fn != nil {
		m.onLogout = fn
	}
}

// Login authenticates against the API and, on success, stores the issued
// token under sid and returns the identity decoded from it along with the
// token itself.
func (m *Manager) Login(ctx context.Context, sid, email, password string) (*Identity, string, error) {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	identity, err := decodeToken(token)
	if err != nil {
		return nil, "", fmt.Errorf("auth: undecodable token from api: %w", err)
	}

	if err := m.store.Save(ctx, sid, token, m.sessionTTL); err != nil {
		return nil, "", err
	}
	return identity, token, nil
}

// Logout destroys the session. Safe to call on a session that is already gone.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	if err := m.store.Clear(ctx, sid); err != nil {
		return err
	}
	metrics.SessionsDestroyedTotal.WithLabelValues("logout").Inc()
	m.onLogout(sid)
	return nil
}

// Destroy tears a session down without touching the caller's cookie. It backs
// the upstream client's 401 hook.
func (m *Manager) Destroy(sid string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.Clear(ctx, sid); err != nil {
		m.logger.Warn().Err(err).Str("sid", sid).Msg("session clear failed")
	}
	metrics.SessionsDestroyedTotal.WithLabelValues("unauthorized").Inc()
	m.onLogout(sid)
}

// CurrentUser resolves the identity of a session. A session holding a
// malformed or expired token is destroyed on the spot, so a present identity
// always corresponds to a well-formed, unexpired stored token.
func (m *Manager) CurrentUser(ctx context.Context, sid string) (*Identity, string, bool) {
	token, ok, err := m.store.Read(ctx, sid)
	if err != nil {
		m.logger.Warn().Err(err).Str("sid", sid).Msg("session read failed")
		return nil, "", false
	}
	if !ok {
		return nil, "", false
	}

	identity, err := decodeToken(token)
	if err != nil {
		m.logger.Debug().Err(err).Str("sid", sid).Msg("stored token unusable, clearing session")
		if err := m.store.Clear(ctx, sid); err != nil {
			m.logger.Warn().Err(err).Str("sid", sid).Msg("session clear failed")
		}
		metrics.SessionsDestroyedTotal.WithLabelValues("invalid_token").Inc()
		m.onLogout(sid)
		return nil, "", false
	}
	return identity, token, true
}

// decodeToken extracts the identity claims without verifying the signature.
// The API verifies the signature on every call it receives; the portal only
// needs the claims for routing.
func decodeToken(token string) (*Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("token has no usable exp claim")
	}
	if time.Now().After(exp.Time) {
		return nil, fmt.Errorf("token expired at %s", exp.Time.Format(time.RFC3339))
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("token has no id claim")
	}

	// JSON numbers decode as float64.
	roleID, ok := claims["role_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("token has no role_id claim")
	}

	return &Identity{UserID: id, Role: domain.RoleFromID(int(roleID))}, nil
}
