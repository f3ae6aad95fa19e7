package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/portal/auth"
	"github.com/kibfin/supplier-portal/internal/portal/session"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

const cookieName = "portal_sid"

func signToken(t *testing.T, userID string, roleID int) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":      userID,
		"role_id": roleID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func newGuardedApp(t *testing.T) (*echo.Echo, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	api := upstream.NewClient("http://unreachable.invalid/api", &upstream.Transport{})
	manager := auth.NewManager(store, api, time.Hour, zerolog.Nop())

	ok := func(c echo.Context) error { return c.String(http.StatusOK, c.Path()) }

	e := echo.New()
	e.Use(Guard(manager, cookieName, nil))
	e.GET(LoginPath, ok)
	e.GET(Home, ok)
	e.GET("/suppliers", ok)
	e.GET("/user-management", ok)
	e.RouteNotFound("/*", ok)
	return e, store
}

func get(e *echo.Echo, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_NoSessionRedirectsToLogin(t *testing.T) {
	e, _ := newGuardedApp(t)

	rec := get(e, "/suppliers", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("Location = %s, want %s", loc, LoginPath)
	}
}

func TestGuard_LoginAlwaysReachable(t *testing.T) {
	e, _ := newGuardedApp(t)

	if rec := get(e, LoginPath, ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGuard_TreasuryReachesEverything(t *testing.T) {
	e, store := newGuardedApp(t)
	store.Save(context.Background(), "sid-t", signToken(t, "u1", 2), time.Hour)

	for _, path := range []string{Home, "/suppliers", "/user-management"} {
		if rec := get(e, path, "sid-t"); rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestGuard_UnknownPathRedirectsHome(t *testing.T) {
	e, store := newGuardedApp(t)
	store.Save(context.Background(), "sid-t", signToken(t, "u1", 2), time.Hour)

	rec := get(e, "/nonexistent", "sid-t")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != Home {
		t.Fatalf("Location = %s, want %s", loc, Home)
	}
}

func TestGuard_BranchManagerBouncedFromTreasuryRoutes(t *testing.T) {
	e, store := newGuardedApp(t)
	store.Save(context.Background(), "sid-b", signToken(t, "u2", 4), time.Hour)

	if rec := get(e, Home, "sid-b"); rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}

	for _, path := range []string{"/suppliers", "/user-management"} {
		rec := get(e, path, "sid-b")
		if rec.Code != http.StatusFound {
			t.Errorf("GET %s status = %d, want 302", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != Home {
			t.Errorf("GET %s Location = %s, want %s", path, loc, Home)
		}
	}
}

func TestGuard_GarbageSessionTreatedAsSignedOut(t *testing.T) {
	e, store := newGuardedApp(t)
	store.Save(context.Background(), "sid-g", "garbage-not-a-token", time.Hour)

	rec := get(e, Home, "sid-g")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("Location = %s, want %s", loc, LoginPath)
	}

	// The unusable session must be gone.
	if _, ok, _ := store.Read(context.Background(), "sid-g"); ok {
		t.Fatal("garbage session left in store")
	}

	// And the login page still renders.
	if rec := get(e, LoginPath, "sid-g"); rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", rec.Code)
	}
}
