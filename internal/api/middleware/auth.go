package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenHeader is the header every authenticated portal request carries.
const TokenHeader = "x-auth-token"

// Auth validates the x-auth-token JWT and injects the identity claims into
// the echo context. The token is sent raw, without a Bearer prefix.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing auth token")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["id"].(string)
			// JSON numbers decode as float64.
			rawRole, _ := claims["role_id"].(float64)

			c.Set("user_id", userID)
			c.Set("role_id", int(rawRole))

			return next(c)
		}
	}
}
