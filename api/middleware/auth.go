package middleware

import (
	"errors"
	"log/slog"

	"github.com/HermawanSutanto/sertifikat-lokal2/common/util"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer token to a user id and stores it in c.Locals("user_id").
// A missing or malformed header is answered with 401, a token that fails verification with 403.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userId, err := util.VerifyAuthToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, util.ErrAuthMissing) {
				slog.Warn("AuthMiddleware: missing or malformed authorization header",
					"path", c.Path(),
					"method", c.Method(),
					"ip", c.IP())
				return response.SendUnauthorized(c, "Authorization header is required. Expected: Bearer <token>")
			}

			slog.Warn("AuthMiddleware: token rejected",
				"error", err,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP())
			return response.SendForbidden(c, "Invalid or expired token")
		}

		c.Locals("user_id", userId)

		slog.Debug("AuthMiddleware: authentication successful",
			"user_id", userId,
			"path", c.Path(),
			"method", c.Method())

		return c.Next()
	}
}

// GetUserFromContext - Helper function to extract user ID from request context
func GetUserFromContext(c *fiber.Ctx) (string, bool) {
	if userID := c.Locals("user_id"); userID != nil {
		if id, ok := userID.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
