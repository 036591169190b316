package model

import "time"

// Position is a normalized [0..1] point relative to the template size.
// Values outside the range are allowed and place the text off-canvas.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// TextElement is one configured text layer of a generation request.
type TextElement struct {
	Label           string   `json:"label" bson:"label" validate:"required"`
	FontFamily      string   `json:"fontFamily" bson:"font_family"`
	FontSize        int      `json:"fontSize" bson:"font_size" validate:"gte=0"`
	TextColor       string   `json:"textColor" bson:"text_color" validate:"omitempty,hexcolor"`
	PositionPercent Position `json:"positionPercent" bson:"position_percent"`
	IsLocked        bool     `json:"isLocked,omitempty" bson:"is_locked,omitempty"`
}

// Certificate is the metadata record of one rendered certificate.
type Certificate struct {
	ID             string            `json:"id" bson:"_id"`
	UserID         string            `json:"user_id" bson:"user_id"`
	BatchID        string            `json:"batch_id" bson:"batch_id"`
	PrimaryValue   string            `json:"primary_value" bson:"primary_value"`
	CertificateURL string            `json:"certificate_url" bson:"certificate_url"`
	ObjectPath     string            `json:"object_path" bson:"object_path"`
	TemplateURL    string            `json:"template_url,omitempty" bson:"template_url,omitempty"`
	RowData        map[string]string `json:"row_data" bson:"row_data"`
	Elements       []TextElement     `json:"elements" bson:"elements"`
	PreviewWidth   int               `json:"preview_width" bson:"preview_width"`
	SkippedLayers  []string          `json:"skipped_layers,omitempty" bson:"skipped_layers,omitempty"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
}
