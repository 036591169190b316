package certificate_controller

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/internal/renderer"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

// Generate renders one certificate per data row of the multipart request.
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		slog.Error("Certificate Generate UserToken not found")
		return response.SendUnauthorized(c, "User token not found")
	}

	in, err := parseGenerateRequest(c, userId)
	if err != nil {
		slog.Warn("Certificate Generate invalid request", "error", err, "user_id", userId)
		return sendRendererError(c, err)
	}

	result, err := ctrl.generator.Generate(c.UserContext(), in)
	if err != nil {
		slog.Error("Certificate Generate failed", "error", err, "user_id", userId, "rows", len(in.Rows))
		return sendRendererError(c, err)
	}

	message := "Certificates generated"
	if result.Status == renderer.BatchPartialSuccess {
		message = "Certificates generated with skipped rows"
	}

	return response.SendSuccess(c, message, payload.GenerateCertificateResult{
		BatchID:         result.BatchID,
		Status:          string(result.Status),
		TemplateURL:     result.TemplateURL,
		CertificateURLs: result.CertificateURLs,
		Certificates:    result.Certificates,
		SkippedRows:     result.Skipped,
		FontFailures:    result.FontFailures,
	})
}

// sendRendererError maps pipeline errors to client and server faults. Server faults
// carry a fixed message; the cause stays in the log.
func sendRendererError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, renderer.ErrValidation):
		return response.SendFailed(c, userMessage(err))
	case errors.Is(err, renderer.ErrTemplateDecode):
		return response.SendFailed(c, "Template is not a valid image")
	case errors.Is(err, renderer.ErrNoRenderableRows):
		return response.SendFailed(c, "No row produced a certificate")
	case errors.Is(err, renderer.ErrArchiveEmpty):
		return response.SendNotFound(c, "No certificates to archive")
	case errors.Is(err, renderer.ErrFontCatalogDown):
		return response.SendError(c, "Fonts could not be loaded")
	case errors.Is(err, renderer.ErrUploadFailed):
		return response.SendError(c, "Certificates could not be stored")
	case errors.Is(err, renderer.ErrPersistence):
		return response.SendError(c, "Certificates could not be recorded")
	case errors.Is(err, renderer.ErrArchiveDownload):
		return response.SendError(c, "Archive could not be built")
	default:
		return response.SendError(c, "Internal server error")
	}
}

// userMessage drops the sentinel prefix from a validation error.
func userMessage(err error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, renderer.ErrValidation.Error()+": "); trimmed != "" {
		return trimmed
	}
	return msg
}
