package certificate_controller

import (
	"context"

	certificatemodel "github.com/HermawanSutanto/sertifikat-lokal2/api/model/certificateModel"
	"github.com/HermawanSutanto/sertifikat-lokal2/internal/renderer"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 20
)

// Generator runs one certificate batch.
type Generator interface {
	Generate(ctx context.Context, in renderer.GenerateInput) (*renderer.BatchResult, error)
}

// Archiver bundles all certificates of a user into one downloadable zip.
type Archiver interface {
	Build(ctx context.Context, userID string) (*renderer.Archive, error)
}

// CertificateController handles certificate-related HTTP requests
type CertificateController struct {
	certRepo  certificatemodel.ICertificateRepository
	generator Generator
	archiver  Archiver
	pageSize  int
}

// NewCertificateController creates a new certificate controller with injected dependencies
func NewCertificateController(certRepo certificatemodel.ICertificateRepository, generator Generator, archiver Archiver, pageSize int) *CertificateController {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return &CertificateController{
		certRepo:  certRepo,
		generator: generator,
		archiver:  archiver,
		pageSize:  pageSize,
	}
}
