package routes

import (
	design_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/design"
	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupDesignRoutes(router fiber.Router, ctrl *design_controller.DesignController) {
	designGroup := router.Group("design")

	designGroup.Use(middleware.AuthMiddleware())

	designGroup.Get("", ctrl.GetByUser)
	designGroup.Post("", ctrl.Save)
	designGroup.Get(":designId", ctrl.GetById)
	designGroup.Delete(":designId", ctrl.Delete)
}
