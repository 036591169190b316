package design_controller

import (
	"log/slog"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

func (ctrl *DesignController) Delete(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		return response.SendUnauthorized(c, "User token not found")
	}

	designId := c.Params("designId")
	deleted, err := ctrl.designRepo.Delete(designId, userId)
	if err != nil {
		slog.Error("Design Delete failed", "error", err, "design_id", designId)
		return response.SendError(c, "Failed to delete design")
	}
	if !deleted {
		return response.SendNotFound(c, "Design not found")
	}

	slog.Info("Design Delete successful", "design_id", designId, "user_id", userId)
	return response.SendSuccess(c, "Design deleted")
}
