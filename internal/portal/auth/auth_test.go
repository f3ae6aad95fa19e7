package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/session"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

func signToken(t *testing.T, userID string, roleID int, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":      userID,
		"role_id": roleID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func newManager(t *testing.T, loginHandler http.HandlerFunc) (*Manager, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	var api *upstream.Client
	if loginHandler != nil {
		server := httptest.NewServer(loginHandler)
		t.Cleanup(server.Close)
		api = upstream.NewClient(server.URL+"/api", &upstream.Transport{})
	} else {
		api = upstream.NewClient("http://unreachable.invalid/api", &upstream.Transport{})
	}
	return NewManager(store, api, time.Hour, zerolog.Nop()), store
}

func TestLogin_StoresTokenAndDecodesIdentity(t *testing.T) {
	token := signToken(t, "user-7", 2, time.Hour)
	manager, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/login" {
			t.Errorf("path = %s, want /api/users/login", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"` + token + `"}`))
	})

	identity, issued, err := manager.Login(context.Background(), "sid-1", "t@kibfin.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.UserID != "user-7" {
		t.Errorf("UserID = %s, want user-7", identity.UserID)
	}
	if identity.Role != domain.RoleTreasury {
		t.Errorf("Role = %v, want treasury", identity.Role)
	}
	if issued != token {
		t.Error("Login returned a token that differs from the one the api issued")
	}

	stored, ok, _ := store.Read(context.Background(), "sid-1")
	if !ok || stored != token {
		t.Fatal("token was not stored under the session id")
	}
}

func TestLogin_UpstreamRejection(t *testing.T) {
	manager, store := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	_, _, err := manager.Login(context.Background(), "sid-1", "t@kibfin.com", "wrong")
	if !upstream.IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401 APIError", err)
	}
	if _, ok, _ := store.Read(context.Background(), "sid-1"); ok {
		t.Fatal("a session was stored for a failed login")
	}
}

func TestCurrentUser_MissingSession(t *testing.T) {
	manager, _ := newManager(t, nil)

	if _, _, ok := manager.CurrentUser(context.Background(), "never-logged-in"); ok {
		t.Fatal("identity reported for an unknown session")
	}
}

func TestCurrentUser_ValidToken(t *testing.T) {
	manager, store := newManager(t, nil)
	token := signToken(t, "user-3", 4, time.Hour)
	store.Save(context.Background(), "sid-1", token, time.Hour)

	identity, gotToken, ok := manager.CurrentUser(context.Background(), "sid-1")
	if !ok {
		t.Fatal("identity absent for a valid stored token")
	}
	if identity.UserID != "user-3" {
		t.Errorf("UserID = %s, want user-3", identity.UserID)
	}
	if identity.Role != domain.RoleBranchManager {
		t.Errorf("Role = %v, want branch manager", identity.Role)
	}
	if gotToken != token {
		t.Error("returned token differs from the stored one")
	}
}

func TestCurrentUser_GarbageTokenClearsSession(t *testing.T) {
	manager, store := newManager(t, nil)
	store.Save(context.Background(), "sid-1", "not-a-jwt-at-all", time.Hour)

	var loggedOut []string
	manager.OnLogout(func(sid string) { loggedOut = append(loggedOut, sid) })

	if _, _, ok := manager.CurrentUser(context.Background(), "sid-1"); ok {
		t.Fatal("identity reported for a garbage token")
	}
	if _, ok, _ := store.Read(context.Background(), "sid-1"); ok {
		t.Fatal("garbage token left in the store")
	}
	if len(loggedOut) != 1 || loggedOut[0] != "sid-1" {
		t.Fatalf("logout hook calls = %v, want [sid-1]", loggedOut)
	}
}

func TestCurrentUser_ExpiredTokenClearsSession(t *testing.T) {
	manager, store := newManager(t, nil)
	store.Save(context.Background(), "sid-1", signToken(t, "user-3", 2, -time.Minute), time.Hour)

	if _, _, ok := manager.CurrentUser(context.Background(), "sid-1"); ok {
		t.Fatal("identity reported for an expired token")
	}
	if _, ok, _ := store.Read(context.Background(), "sid-1"); ok {
		t.Fatal("expired token left in the store")
	}
}

func TestLogout_ClearsSessionAndFiresHook(t *testing.T) {
	manager, store := newManager(t, nil)
	store.Save(context.Background(), "sid-1", signToken(t, "user-3", 2, time.Hour), time.Hour)

	var loggedOut []string
	manager.OnLogout(func(sid string) { loggedOut = append(loggedOut, sid) })

	if err := manager.Logout(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, ok, _ := store.Read(context.Background(), "sid-1"); ok {
		t.Fatal("session survived logout")
	}
	if len(loggedOut) != 1 {
		t.Fatalf("logout hook fired %d times, want 1", len(loggedOut))
	}

	// Logging out twice must not fail.
	if err := manager.Logout(context.Background(), "sid-1"); err != nil {
		t.Fatalf("second Logout returned error: %v", err)
	}
}
