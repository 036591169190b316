package certificate_controller

import (
	"log/slog"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

// Archive zips every certificate of the caller and returns the archive URL.
func (ctrl *CertificateController) Archive(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		slog.Error("Certificate Archive UserToken not found")
		return response.SendUnauthorized(c, "User token not found")
	}

	archive, err := ctrl.archiver.Build(c.UserContext(), userId)
	if err != nil {
		slog.Error("Certificate Archive failed", "error", err, "user_id", userId)
		return sendRendererError(c, err)
	}

	slog.Info("Certificate Archive successful", "user_id", userId, "count", archive.Count, "omitted", archive.Omitted)
	return response.SendSuccess(c, "Archive created", payload.CertificateArchive{
		ZipURL:  archive.URL,
		Count:   archive.Count,
		Omitted: archive.Omitted,
	})
}
