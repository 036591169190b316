package payload

import "github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"

type CreateDesignPayload struct {
	Name         string              `json:"name" validate:"required,max=120"`
	TemplateURL  string              `json:"templateUrl" validate:"omitempty,url"`
	Width        int                 `json:"width" validate:"gte=0"`
	Height       int                 `json:"height" validate:"gte=0"`
	PreviewWidth int                 `json:"previewWidth" validate:"gte=0"`
	Elements     []model.TextElement `json:"elements" validate:"required,min=1,dive"`
}
