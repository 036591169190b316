package routes

import (
	"time"

	certificate_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/certificate"
	design_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/design"
	"github.com/gofiber/fiber/v2"
)

// Controllers are the request handlers the router mounts.
type Controllers struct {
	Certificate *certificate_controller.CertificateController
	Design      *design_controller.DesignController
}

func Init(router fiber.Router, ctrl Controllers) {
	router.Get("health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("api")

	SetupPublicRoutes(api, ctrl)
	SetupAuthRoutes(api)
	SetupCertificateRoutes(api, ctrl.Certificate)
	SetupDesignRoutes(api, ctrl.Design)
}
