package routes

import (
	certificate_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/certificate"
	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(router fiber.Router, ctrl *certificate_controller.CertificateController) {
	certificateGroup := router.Group("certificate")

	certificateGroup.Use(middleware.AuthMiddleware())

	certificateGroup.Get("", ctrl.GetByUser)
	certificateGroup.Post("generate", ctrl.Generate)
	certificateGroup.Post("archive", ctrl.Archive)
}
