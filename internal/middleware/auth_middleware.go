package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dinesmart/pkg/logger"
	"dinesmart/pkg/metrics"
	"dinesmart/pkg/utils"

	jsonres "dinesmart/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks that a bearer token still has a live session.
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

// Auth validates the JWT and the redis session behind it, then puts the
// resolved identity on the request context. Nothing identity-related is ever
// read from the request body.
func Auth(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Invalid authorization format", nil,
				))
			}

			tokenString := tokenParts[1]

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				metrics.AuthFailuresTotal.Inc()
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Invalid token", nil,
				))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Token expired", nil,
				))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			sessionUserID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
			if err != nil {
				metrics.AuthFailuresTotal.Inc()
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Session expired or revoked", nil,
				))
			}

			if sessionUserID != claims.UserID {
				logger.Error("Session user mismatch", "jwt_user", claims.UserID, "session_user", sessionUserID)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Invalid token", nil,
				))
			}

			userID, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHENTICATED", "Invalid token subject", nil,
				))
			}

			c.Set("user_id", uint(userID))
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// RequireRole gates a route to the given roles. Runs after Auth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[strings.ToUpper(role)] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[strings.ToUpper(role)] {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Insufficient role", nil,
				))
			}

			return next(c)
		}
	}
}
