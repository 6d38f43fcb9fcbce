package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// AuthMiddleware accepts an HS256 bearer token signed with secret and stores
// its subject as the user id. Issuing tokens is left to the identity provider.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			var claims jwt.RegisteredClaims
			_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userIDKey, claims.Subject)
			return next(c)
		}
	}
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
