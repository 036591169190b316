package designmodel

import (
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
)

// IDesignRepository defines the interface for design repository operations
type IDesignRepository interface {
	Create(data payload.CreateDesignPayload, userId string) (*model.DesignTemplate, error)
	GetByUser(userId string) ([]*model.DesignTemplate, error)
	GetById(designId string) (*model.DesignTemplate, error)
	Delete(designId string, userId string) (bool, error)
}

var _ IDesignRepository = (*DesignRepository)(nil)

// MockDesignRepository is a mock implementation for testing
type MockDesignRepository struct {
	CreateFunc    func(data payload.CreateDesignPayload, userId string) (*model.DesignTemplate, error)
	GetByUserFunc func(userId string) ([]*model.DesignTemplate, error)
	GetByIdFunc   func(designId string) (*model.DesignTemplate, error)
	DeleteFunc    func(designId string, userId string) (bool, error)
}

var _ IDesignRepository = (*MockDesignRepository)(nil)

func NewMockDesignRepository() *MockDesignRepository {
	return &MockDesignRepository{}
}

func (m *MockDesignRepository) Create(data payload.CreateDesignPayload, userId string) (*model.DesignTemplate, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(data, userId)
	}
	return nil, nil
}

func (m *MockDesignRepository) GetByUser(userId string) ([]*model.DesignTemplate, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(userId)
	}
	return nil, nil
}

func (m *MockDesignRepository) GetById(designId string) (*model.DesignTemplate, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(designId)
	}
	return nil, nil
}

func (m *MockDesignRepository) Delete(designId string, userId string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(designId, userId)
	}
	return false, nil
}
