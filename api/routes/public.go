package routes

import (
	"github.com/gofiber/fiber/v2"
)

// SetupPublicRoutes mounts endpoints reachable without a token, such as the
// verification page a printed QR code points to.
func SetupPublicRoutes(router fiber.Router, ctrl Controllers) {
	publicGroup := router.Group("public")

	publicGroup.Get("certificate/:certId", ctrl.Certificate.Verify)
}
