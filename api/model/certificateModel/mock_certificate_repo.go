package certificatemodel

import (
	"context"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
)

// ICertificateRepository defines the interface for certificate repository operations
type ICertificateRepository interface {
	InsertBatch(ctx context.Context, certs []*model.Certificate) error
	GetById(ctx context.Context, certId string) (*model.Certificate, error)
	GetPageByUser(ctx context.Context, userId string, afterId string, limit int) ([]*model.Certificate, bool, error)
	GetAllByUser(ctx context.Context, userId string) ([]*model.Certificate, error)
}

// Ensure CertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*CertificateRepository)(nil)

// MockCertificateRepository is a mock implementation for testing
type MockCertificateRepository struct {
	InsertBatchFunc   func(ctx context.Context, certs []*model.Certificate) error
	GetByIdFunc       func(ctx context.Context, certId string) (*model.Certificate, error)
	GetPageByUserFunc func(ctx context.Context, userId string, afterId string, limit int) ([]*model.Certificate, bool, error)
	GetAllByUserFunc  func(ctx context.Context, userId string) ([]*model.Certificate, error)
}

// Ensure MockCertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*MockCertificateRepository)(nil)

// NewMockCertificateRepository creates a new mock repository
func NewMockCertificateRepository() *MockCertificateRepository {
	return &MockCertificateRepository{}
}

func (m *MockCertificateRepository) InsertBatch(ctx context.Context, certs []*model.Certificate) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, certs)
	}
	return nil
}

func (m *MockCertificateRepository) GetById(ctx context.Context, certId string) (*model.Certificate, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, certId)
	}
	return nil, nil
}

func (m *MockCertificateRepository) GetPageByUser(ctx context.Context, userId string, afterId string, limit int) ([]*model.Certificate, bool, error) {
	if m.GetPageByUserFunc != nil {
		return m.GetPageByUserFunc(ctx, userId, afterId, limit)
	}
	return nil, false, nil
}

func (m *MockCertificateRepository) GetAllByUser(ctx context.Context, userId string) ([]*model.Certificate, error) {
	if m.GetAllByUserFunc != nil {
		return m.GetAllByUserFunc(ctx, userId)
	}
	return nil, nil
}
