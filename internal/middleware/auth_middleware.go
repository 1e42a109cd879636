package middleware

import (
	"strings"

	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// OptionalAuth resolves the caller's identity from a Bearer access token or,
// failing that, from the session cookie. It never rejects a request: when no
// valid access token is found the request proceeds without a userID and the
// pipeline decides what to do with it.
func OptionalAuth(authService service.AuthService, sessionCookie string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, source := extractToken(c, sessionCookie)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous.",
				zap.String("source", source), zap.Error(err))
			return c.Next()
		}

		if claims.TokenType != service.TokenTypeAccess {
			logger.Get().Debug("OptionalAuth: Invalid token type, expected access token, proceeding as anonymous.",
				zap.String("tokenType", claims.TokenType))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		logger.Get().Debug("OptionalAuth: User authenticated.",
			zap.String("userID", claims.UserID), zap.String("source", source))

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, sessionCookie string) (token string, source string) {
	if authHeader := c.Get(AuthorizationHeader); strings.HasPrefix(authHeader, BearerSchema) {
		if token = strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema)); token != "" {
			return token, "header"
		}
	}
	if sessionCookie != "" {
		if token = c.Cookies(sessionCookie); token != "" {
			return token, "cookie"
		}
	}
	return "", ""
}

// UserIDFromContext returns the identity set by OptionalAuth, or "".
func UserIDFromContext(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
