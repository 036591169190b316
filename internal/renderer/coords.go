package renderer

import (
	"math"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
)

// DefaultPreviewWidth is used when a request does not report the width of the
// editor preview it was designed against.
const DefaultPreviewWidth = 500

// Point is an absolute position in template pixel space.
type Point struct {
	X float64
	Y float64
}

// ToTruePixels maps a normalized coordinate onto a template dimension.
// No clamping is applied.
func ToTruePixels(percent float64, trueDimension int) float64 {
	return percent * float64(trueDimension)
}

// ScaleFontSize converts a font size picked in the preview into template pixels.
func ScaleFontSize(previewPx, trueWidth, previewWidth int) int {
	if previewWidth <= 0 {
		previewWidth = DefaultPreviewWidth
	}
	return int(math.Round(float64(previewPx) * float64(trueWidth) / float64(previewWidth)))
}

// Scale holds the preview to template mapping of one request.
type Scale struct {
	TrueWidth    int
	TrueHeight   int
	PreviewWidth int
}

func NewScale(trueWidth, trueHeight, previewWidth int) Scale {
	if previewWidth <= 0 {
		previewWidth = DefaultPreviewWidth
	}
	return Scale{
		TrueWidth:    trueWidth,
		TrueHeight:   trueHeight,
		PreviewWidth: previewWidth,
	}
}

func (s Scale) Point(p model.Position) Point {
	return Point{
		X: ToTruePixels(p.X, s.TrueWidth),
		Y: ToTruePixels(p.Y, s.TrueHeight),
	}
}

func (s Scale) FontSize(previewPx int) int {
	return ScaleFontSize(previewPx, s.TrueWidth, s.PreviewWidth)
}

// Factor is the multiplier from preview pixels to template pixels.
func (s Scale) Factor() float64 {
	return float64(s.TrueWidth) / float64(s.PreviewWidth)
}
