package auth_controller

import (
	"log/slog"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

func Verify(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		slog.Error("Get user from context failed")
		return response.SendUnauthorized(c, "Failed to read user from context")
	}
	slog.Info("Auth Verify successful", "user_id", userId)
	return response.SendSuccess(c, "Token is valid", map[string]any{
		"userId": userId,
	})
}
