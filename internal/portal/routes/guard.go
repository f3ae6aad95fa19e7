package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/auth"
	"github.com/kibfin/supplier-portal/internal/portal/metrics"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

const (
	ctxSID      = "portal_sid"
	ctxIdentity = "portal_identity"
)

// PollerStarter keeps a background badge poller alive for a session. The
// notification registry implements it.
type PollerStarter interface {
	Ensure(sid, token string)
}

// Guard resolves the caller's session once per request and enforces the route
// table: public routes always pass, protected routes without an identity
// bounce to the login page, and routes outside the caller's role set bounce
// to the role home.
//
// For signed-in callers it also binds the session credentials into the
// request context, so everything a handler sends upstream carries the token,
// and makes sure a treasury session has its badge poller running. Sessions
// restored from the store after a restart pick their poller back up here.
func Guard(manager *auth.Manager, cookieName string, pollers PollerStarter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var identity *auth.Identity

			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				sid := cookie.Value
				c.Set(ctxSID, sid)

				if id, token, ok := manager.CurrentUser(c.Request().Context(), sid); ok {
					identity = id
					c.Set(ctxIdentity, id)

					creds := upstream.Credentials{SID: sid, Token: token}
					ctx := upstream.WithCredentials(c.Request().Context(), creds)
					c.SetRequest(c.Request().WithContext(ctx))

					if pollers != nil && id.Role == domain.RoleTreasury {
						pollers.Ensure(sid, token)
					}
				}
			}

			access, known := AccessFor(c.Path())
			if known && access == AccessPublic {
				return next(c)
			}

			if identity == nil {
				metrics.GuardRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if !known {
				metrics.GuardRedirectsTotal.WithLabelValues("unknown_path").Inc()
				return c.Redirect(http.StatusFound, Home)
			}
			if access == AccessTreasury && identity.Role != domain.RoleTreasury {
				metrics.GuardRedirectsTotal.WithLabelValues("role_home").Inc()
				return c.Redirect(http.StatusFound, Home)
			}
			return next(c)
		}
	}
}

// SID returns the request's session id, creating none. Empty when the caller
// sent no session cookie.
func SID(c echo.Context) string {
	sid, _ := c.Get(ctxSID).(string)
	return sid
}

// Identity returns the signed-in identity resolved by the guard.
func Identity(c echo.Context) (*auth.Identity, bool) {
	identity, ok := c.Get(ctxIdentity).(*auth.Identity)
	return identity, ok
}
