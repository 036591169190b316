package renderer

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontFacePattern = regexp.MustCompile(`url\(data:font/[A-Za-z0-9.+-]+;base64,([A-Za-z0-9+/=]+)\)`)
	fontSizePattern = regexp.MustCompile(`font-size:\s*([0-9.]+)px`)
	fillPattern     = regexp.MustCompile(`fill:\s*(#[0-9a-fA-F]{3,6})`)
)

type svgDocument struct {
	XMLName xml.Name  `xml:"svg"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	Styles  []string  `xml:"style"`
	Texts   []svgText `xml:"text"`
}

type svgText struct {
	X       string `xml:"x,attr"`
	Y       string `xml:"y,attr"`
	Style   string `xml:"style,attr"`
	Content string `xml:",chardata"`
}

// ParsedLayer is the content of a layer document produced by RenderLayer.
type ParsedLayer struct {
	Width    int
	Height   int
	At       Point
	Text     string
	FontSize int
	Color    string
	FontData []byte
}

// ParseLayer reads back a layer document.
func ParseLayer(doc []byte) (*ParsedLayer, error) {
	var parsed svgDocument
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parse layer document: %w", err)
	}
	if len(parsed.Texts) != 1 {
		return nil, fmt.Errorf("layer document has %d text nodes, want 1", len(parsed.Texts))
	}

	width, err := parseLength(parsed.Width)
	if err != nil {
		return nil, fmt.Errorf("layer width: %w", err)
	}
	height, err := parseLength(parsed.Height)
	if err != nil {
		return nil, fmt.Errorf("layer height: %w", err)
	}

	text := parsed.Texts[0]
	x, err := strconv.ParseFloat(text.X, 64)
	if err != nil {
		return nil, fmt.Errorf("layer x: %w", err)
	}
	y, err := strconv.ParseFloat(text.Y, 64)
	if err != nil {
		return nil, fmt.Errorf("layer y: %w", err)
	}

	layer := &ParsedLayer{
		Width:  width,
		Height: height,
		At:     Point{X: x, Y: y},
		Text:   strings.TrimSpace(text.Content),
		Color:  DefaultTextColor,
	}

	if m := fontSizePattern.FindStringSubmatch(text.Style); m != nil {
		size, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("layer font size: %w", err)
		}
		layer.FontSize = int(math.Round(size))
	}
	if m := fillPattern.FindStringSubmatch(text.Style); m != nil {
		layer.Color = m[1]
	}

	for _, style := range parsed.Styles {
		if m := fontFacePattern.FindStringSubmatch(style); m != nil {
			data, err := base64.StdEncoding.DecodeString(m[1])
			if err != nil {
				return nil, fmt.Errorf("decode embedded font: %w", err)
			}
			layer.FontData = data
			break
		}
	}
	if len(layer.FontData) == 0 {
		return nil, ErrFontMissing
	}

	return layer, nil
}

func parseLength(v string) (int, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("non-positive length %d", n)
	}
	return n, nil
}

// Rasterizer draws layer documents into transparent bitmaps.
// Parsed fonts are kept for the lifetime of the rasterizer.
type Rasterizer struct {
	fonts *gocache.Cache
}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{fonts: gocache.New(gocache.NoExpiration, 0)}
}

func (r *Rasterizer) font(data []byte) (*opentype.Font, error) {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	if cached, found := r.fonts.Get(key); found {
		return cached.(*opentype.Font), nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r.fonts.Set(key, f, gocache.NoExpiration)
	return f, nil
}

// Rasterize draws the layer text into a transparent bitmap covering only the painted
// rectangle, in document coordinates and clipped to the document size.
func (r *Rasterizer) Rasterize(doc []byte) (*image.RGBA, image.Rectangle, error) {
	layer, err := ParseLayer(doc)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	if layer.FontSize <= 0 {
		return nil, image.Rectangle{}, fmt.Errorf("invalid font size %d", layer.FontSize)
	}

	f, err := r.font(layer.FontData)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(layer.FontSize),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	fill, err := parseHexColor(layer.Color)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	drawer := &font.Drawer{
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  anchorDot(face, layer.At, layer.Text),
	}

	bounds, _ := drawer.BoundString(layer.Text)
	painted := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	).Intersect(image.Rect(0, 0, layer.Width, layer.Height))

	dst := image.NewRGBA(painted)
	if painted.Empty() {
		return dst, painted, nil
	}
	drawer.Dst = dst
	drawer.DrawString(layer.Text)

	return dst, painted, nil
}

// anchorDot is the baseline origin that centers text on at. text-anchor:middle centers
// the advance on x; dominant-baseline:middle centers the ascent to descent span on y.
func anchorDot(face font.Face, at Point, text string) fixed.Point26_6 {
	metrics := face.Metrics()
	advance := font.MeasureString(face, text)
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(at.X*64)) - advance/2,
		Y: fixed.Int26_6(math.Round(at.Y*64)) + (metrics.Ascent-metrics.Descent)/2,
	}
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
