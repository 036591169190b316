package routes

import (
	auth_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/auth"
	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(router fiber.Router) {
	authGroup := router.Group("auth")

	authGroup.Get("verify", middleware.AuthMiddleware(), auth_controller.Verify)
}
