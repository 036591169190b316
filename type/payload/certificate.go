package payload

import (
	"github.com/HermawanSutanto/sertifikat-lokal2/internal/renderer"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
)

// QRPayload is the optional verification code layer of a generate request.
type QRPayload struct {
	Enabled         bool           `json:"enabled"`
	PositionPercent model.Position `json:"positionPercent"`
	SizePercent     float64        `json:"sizePercent" validate:"gte=0,lte=1"`
}

// LegacyTextFields are the flat single-name form fields with an optional secondary line.
type LegacyTextFields struct {
	NamesField       string  `form:"namesField"`
	PositionXPercent float64 `form:"positionXPercent"`
	PositionYPercent float64 `form:"positionYPercent"`
	FontSize         int     `form:"fontSize"`
	FontFamily       string  `form:"fontFamily"`
	TextColor        string  `form:"textColor"`

	SecondaryTextField        string  `form:"secondaryTextField"`
	SecondaryPositionXPercent float64 `form:"secondaryPositionXPercent"`
	SecondaryPositionYPercent float64 `form:"secondaryPositionYPercent"`
	SecondaryFontSize         int     `form:"secondaryFontSize"`
	SecondaryFontFamily       string  `form:"secondaryFontFamily"`
	SecondaryTextColor        string  `form:"secondaryTextColor"`
}

type GenerateCertificateResult struct {
	BatchID         string                `json:"batchId"`
	Status          string                `json:"status"`
	TemplateURL     string                `json:"templateUrl"`
	CertificateURLs []string              `json:"certificateUrls"`
	Certificates    []*model.Certificate  `json:"certificates"`
	SkippedRows     []renderer.SkippedRow `json:"skippedRows"`
	FontFailures    map[string]string     `json:"fontFailures,omitempty"`
}

type CertificatePage struct {
	Certificates []*model.Certificate `json:"certificates"`
	HasMore      bool                 `json:"hasMore"`
	LastDocID    *string              `json:"lastDocId"`
}

type CertificateArchive struct {
	ZipURL  string `json:"zipUrl"`
	Count   int    `json:"count"`
	Omitted int    `json:"omitted"`
}

type CertificateVerification struct {
	ID             string `json:"id"`
	PrimaryValue   string `json:"primaryValue"`
	CertificateURL string `json:"certificateUrl"`
	IssuedAt       string `json:"issuedAt"`
}
