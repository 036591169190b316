package certificate_controller

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/middleware"
	certificatemodel "github.com/HermawanSutanto/sertifikat-lokal2/api/model/certificateModel"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/gofiber/fiber/v2"
)

// GetByUser returns one page of the caller's certificates, newest first.
// Query: lastVisible (cursor id from the previous page), limit (1..20).
func (ctrl *CertificateController) GetByUser(c *fiber.Ctx) error {
	userId, success := middleware.GetUserFromContext(c)
	if !success {
		slog.Error("Certificate GetByUser UserToken not found")
		return response.SendUnauthorized(c, "User token not found")
	}

	limit := ctrl.pageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return response.SendFailed(c, "limit must be a number")
		}
		limit = clampPageSize(n)
	}

	certificates, hasMore, err := ctrl.certRepo.GetPageByUser(c.UserContext(), userId, c.Query("lastVisible"), limit)
	if err != nil {
		if errors.Is(err, certificatemodel.ErrInvalidCursor) {
			return response.SendFailed(c, "Invalid pagination cursor")
		}
		slog.Error("Certificate GetByUser failed", "error", err, "user_id", userId)
		return response.SendError(c, "Failed to fetch certificates")
	}

	if certificates == nil {
		certificates = []*model.Certificate{}
	}

	page := payload.CertificatePage{
		Certificates: certificates,
		HasMore:      hasMore,
	}
	if len(certificates) > 0 {
		last := certificates[len(certificates)-1].ID
		page.LastDocID = &last
	}

	slog.Info("Certificate GetByUser successful", "user_id", userId, "count", len(certificates), "has_more", hasMore)
	return response.SendSuccess(c, "Certificate fetched", page)
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
