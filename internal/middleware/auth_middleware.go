package middleware

import (
	"net/http"
	"strings"

	"olistInsights/pkg/logger"
	"olistInsights/pkg/utils"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Message string `json:"message"`
}

// AuthMiddleware requires a valid HS256 bearer token signed with secret.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "missing authorization header"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "invalid authorization format"})
			}

			claims, err := utils.ParseJWT(tokenParts[1], secret)
			if err != nil {
				logger.Warn("rejected bearer token", "error", err)
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "invalid token"})
			}

			if claims.Scope != utils.ScopeReports {
				return c.JSON(http.StatusForbidden, errorBody{Message: "token scope does not allow reports"})
			}

			c.Set("subject", claims.Subject)

			return next(c)
		}
	}
}
