package design_controller

import (
	"log/slog"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/gofiber/fiber/v2"
)

func (ctrl *DesignController) GetByUser(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		slog.Error("Design GetByUser UserToken not found")
		return response.SendUnauthorized(c, "User token not found")
	}

	designs, err := ctrl.designRepo.GetByUser(userId)
	if err != nil {
		slog.Error("Design GetByUser failed", "error", err, "user_id", userId)
		return response.SendError(c, "Failed to fetch designs")
	}
	if designs == nil {
		designs = []*model.DesignTemplate{}
	}

	return response.SendSuccess(c, "Design fetched", designs)
}

func (ctrl *DesignController) GetById(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		return response.SendUnauthorized(c, "User token not found")
	}

	design, err := ctrl.designRepo.GetById(c.Params("designId"))
	if err != nil {
		slog.Error("Design GetById failed", "error", err, "design_id", c.Params("designId"))
		return response.SendError(c, "Failed to fetch design")
	}
	// Other users' designs are reported as missing.
	if design == nil || design.UserID != userId {
		return response.SendNotFound(c, "Design not found")
	}

	return response.SendSuccess(c, "Design fetched", design)
}
