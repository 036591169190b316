package design_controller

import (
	"log/slog"
	"strings"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/util"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

func (ctrl *DesignController) Save(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		slog.Error("Design Save UserToken not found")
		return response.SendUnauthorized(c, "User token not found")
	}

	body := new(payload.CreateDesignPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Invalid request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		slog.Warn("Design Save validation failed", "errors", errors, "user_id", userId)
		return response.SendFailed(c, strings.Join(errors, ", "))
	}

	labels := make(map[string]bool, len(body.Elements))
	for _, el := range body.Elements {
		if labels[el.Label] {
			return response.SendFailed(c, "Duplicate element label: "+el.Label)
		}
		labels[el.Label] = true
	}

	// Saved designs may only point at templates this service stored.
	if body.TemplateURL != "" {
		if _, err := util.ExtractObjectNameFromURL(body.TemplateURL, ctrl.templateBucket); err != nil {
			return response.SendFailed(c, "templateUrl must reference the template bucket")
		}
	}

	design, err := ctrl.designRepo.Create(*body, userId)
	if err != nil {
		slog.Error("Design Save failed", "error", err, "user_id", userId)
		return response.SendError(c, "Failed to save design")
	}

	slog.Info("Design Save successful", "design_id", design.ID, "user_id", userId)
	return response.SendCreated(c, "Design saved", design)
}
