package designmodel

import (
	"errors"
	"log/slog"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DesignRepository handles saved layer layouts in postgres.
type DesignRepository struct {
	db *gorm.DB
}

func NewDesignRepository(db *gorm.DB) *DesignRepository {
	return &DesignRepository{db: db}
}

func (r *DesignRepository) Create(data payload.CreateDesignPayload, userId string) (*model.DesignTemplate, error) {
	design := &model.DesignTemplate{
		ID:           uuid.NewString(),
		UserID:       userId,
		Name:         data.Name,
		TemplateURL:  data.TemplateURL,
		Width:        data.Width,
		Height:       data.Height,
		PreviewWidth: data.PreviewWidth,
		Elements:     data.Elements,
	}

	if err := r.db.Create(design).Error; err != nil {
		slog.Error("Design Create", "error", err, "user_id", userId)
		return nil, err
	}

	return design, nil
}

func (r *DesignRepository) GetByUser(userId string) ([]*model.DesignTemplate, error) {
	var designs []*model.DesignTemplate
	err := r.db.Where("user_id = ?", userId).Order("created_at desc").Find(&designs).Error
	if err != nil {
		slog.Error("Design GetByUser", "error", err, "user_id", userId)
		return nil, err
	}
	return designs, nil
}

// GetById returns nil without error when the design does not exist.
func (r *DesignRepository) GetById(designId string) (*model.DesignTemplate, error) {
	var design model.DesignTemplate
	err := r.db.Where("id = ?", designId).First(&design).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Design GetById", "error", err, "design_id", designId)
		return nil, err
	}
	return &design, nil
}

func (r *DesignRepository) Delete(designId string, userId string) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", designId, userId).Delete(&model.DesignTemplate{})
	if result.Error != nil {
		slog.Error("Design Delete", "error", result.Error, "design_id", designId)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
