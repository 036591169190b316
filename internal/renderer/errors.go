package renderer

import "errors"

var (
	ErrValidation       = errors.New("invalid generation request")
	ErrTemplateDecode   = errors.New("template is not a decodable image")
	ErrFontUnavailable  = errors.New("font unavailable")
	ErrFontMissing      = errors.New("font payload missing")
	ErrFontCatalogDown  = errors.New("none of the requested fonts could be loaded")
	ErrNoRenderableRows = errors.New("no row produced a certificate")
	ErrUploadFailed     = errors.New("no certificate could be uploaded")
	ErrPersistence      = errors.New("failed to persist certificate records")
	ErrArchiveEmpty     = errors.New("no certificates to archive")
	ErrArchiveDownload  = errors.New("no certificate could be downloaded for the archive")
)
