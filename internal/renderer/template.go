package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	MaxTemplateBytes       = 2 * 1024 * 1024
	MaxTemplateWidth       = 1920
	DownsampledJPEGQuality = 80
)

// Template is a decoded background image. Bytes holds the file stored for the
// request, which is the re-encoded image when the upload was downsampled.
type Template struct {
	Image       *image.NRGBA
	Width       int
	Height      int
	Bytes       []byte
	ContentType string
	Downsampled bool
}

// IngestTemplate decodes an uploaded template. Files larger than MaxTemplateBytes are
// scaled down to MaxTemplateWidth (never up) and re-encoded. Dimensions are measured on
// the image that layers are composited against.
func IngestTemplate(raw []byte) (*Template, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: template image is empty", ErrValidation)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateDecode, err)
	}

	tpl := &Template{
		Bytes:       raw,
		ContentType: http.DetectContentType(raw),
	}

	if len(raw) > MaxTemplateBytes {
		if img.Bounds().Dx() > MaxTemplateWidth {
			img = imaging.Resize(img, MaxTemplateWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(DownsampledJPEGQuality)); err != nil {
			return nil, fmt.Errorf("re-encode template: %w", err)
		}
		slog.Info("Template downsampled", "original_bytes", len(raw), "bytes", buf.Len(), "width", img.Bounds().Dx())

		tpl.Bytes = buf.Bytes()
		tpl.ContentType = "image/jpeg"
		tpl.Downsampled = true
	}

	tpl.Image = imaging.Clone(img)
	tpl.Width = tpl.Image.Bounds().Dx()
	tpl.Height = tpl.Image.Bounds().Dy()

	return tpl, nil
}

// Canvas returns a private copy of the template to draw a row onto.
func (t *Template) Canvas() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	draw.Draw(canvas, canvas.Bounds(), t.Image, t.Image.Bounds().Min, draw.Src)
	return canvas
}

// Size is the template size in pixels.
func (t *Template) Size() image.Point {
	return image.Pt(t.Width, t.Height)
}

// Extension returns the file extension matching ContentType.
func (t *Template) Extension() string {
	switch t.ContentType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
