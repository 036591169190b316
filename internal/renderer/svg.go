package renderer

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"regexp"

	svg "github.com/ajstarks/svgo"
)

const DefaultTextColor = "#333333"

var (
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	familyNameFilter = regexp.MustCompile(`[^A-Za-z0-9 _-]`)
)

// LayerStyle is the visual style of a text layer in template pixels.
type LayerStyle struct {
	FontSize int
	Color    string
}

// NormalizeColor returns color when it is a #rgb or #rrggbb value and the default otherwise.
func NormalizeColor(color string) string {
	if hexColorPattern.MatchString(color) {
		return color
	}
	return DefaultTextColor
}

// RenderLayer produces a standalone SVG document the size of the template holding one
// centered text node, with the font embedded as a data URI. The text is XML escaped.
func RenderLayer(text string, style LayerStyle, at Point, size image.Point, asset *FontAsset) ([]byte, error) {
	if asset == nil || asset.Encoded == "" {
		return nil, ErrFontMissing
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", size.X, size.Y)
	}
	if style.FontSize <= 0 {
		return nil, fmt.Errorf("invalid font size %d", style.FontSize)
	}

	family := familyNameFilter.ReplaceAllString(asset.ResolvedFamily, "")
	if family == "" {
		family = DefaultFontFamily
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size.X, size.Y)
	canvas.Style("text/css", fmt.Sprintf(
		`@font-face { font-family: "%s"; src: url(data:font/ttf;base64,%s); }`,
		family, asset.Encoded,
	))
	canvas.Text(
		int(math.Round(at.X)),
		int(math.Round(at.Y)),
		text,
		fmt.Sprintf(
			"text-anchor:middle;dominant-baseline:middle;font-family:'%s',sans-serif;font-size:%dpx;fill:%s",
			family, style.FontSize, NormalizeColor(style.Color),
		),
	)
	canvas.End()

	return buf.Bytes(), nil
}
