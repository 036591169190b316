package certificate_controller

import (
	"log/slog"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/response"
	"github.com/gofiber/fiber/v2"
)

// Verify is the public lookup behind the QR code printed on a certificate.
func (ctrl *CertificateController) Verify(c *fiber.Ctx) error {
	certId := c.Params("certId")
	if certId == "" {
		return response.SendFailed(c, "Certificate ID is required")
	}

	cert, err := ctrl.certRepo.GetById(c.UserContext(), certId)
	if err != nil {
		slog.Error("Certificate Verify failed", "error", err, "cert_id", certId)
		return response.SendError(c, "Failed to verify certificate")
	}
	if cert == nil {
		slog.Warn("Certificate Verify: certificate not found", "cert_id", certId)
		return response.SendNotFound(c, "Certificate not found")
	}

	return response.SendSuccess(c, "Certificate is valid", payload.CertificateVerification{
		ID:             cert.ID,
		PrimaryValue:   cert.PrimaryValue,
		CertificateURL: cert.CertificateURL,
		IssuedAt:       cert.CreatedAt.UTC().Format(time.RFC3339),
	})
}
