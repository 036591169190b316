package renderer

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const OutputQuality = 85

type OutputFormat string

const (
	FormatJPEG OutputFormat = "jpeg"
	FormatWebP OutputFormat = "webp"
)

// ParseOutputFormat falls back to JPEG for unknown names.
func ParseOutputFormat(name string) OutputFormat {
	if strings.EqualFold(name, string(FormatWebP)) {
		return FormatWebP
	}
	return FormatJPEG
}

func (f OutputFormat) Extension() string {
	if f == FormatWebP {
		return "webp"
	}
	return "jpg"
}

func (f OutputFormat) ContentType() string {
	if f == FormatWebP {
		return "image/webp"
	}
	return "image/jpeg"
}

func (f OutputFormat) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatWebP:
		if err := webp.Encode(&buf, img, &webp.Options{Quality: OutputQuality}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	default:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(OutputQuality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	}
	return buf.Bytes(), nil
}
