package model

import "time"

// DesignTemplate is a saved layer layout that can be reused for later batches.
type DesignTemplate struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string        `json:"user_id" gorm:"index;not null"`
	Name         string        `json:"name" gorm:"not null"`
	TemplateURL  string        `json:"template_url"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	PreviewWidth int           `json:"preview_width"`
	Elements     []TextElement `json:"elements" gorm:"serializer:json;type:jsonb"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (DesignTemplate) TableName() string {
	return "design_template"
}
