package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisePNG does not compress, so a large canvas reliably exceeds MaxTemplateBytes.
func noisePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	_, _ = rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIngestTemplateKeepsSmallImages(t *testing.T) {
	raw := solidPNG(t, 1000, 700, color.White)

	tpl, err := IngestTemplate(raw)
	require.NoError(t, err)
	assert.Equal(t, 1000, tpl.Width)
	assert.Equal(t, 700, tpl.Height)
	assert.False(t, tpl.Downsampled)
	assert.Equal(t, raw, tpl.Bytes)
	assert.Equal(t, "image/png", tpl.ContentType)
	assert.Equal(t, "png", tpl.Extension())
}

func TestIngestTemplateDownsamplesLargeImages(t *testing.T) {
	raw := noisePNG(t, 2400, 1200)
	require.Greater(t, len(raw), MaxTemplateBytes)

	tpl, err := IngestTemplate(raw)
	require.NoError(t, err)
	assert.True(t, tpl.Downsampled)
	assert.Equal(t, MaxTemplateWidth, tpl.Width)
	assert.Equal(t, 960, tpl.Height, "aspect ratio is kept and measured after the resize")
	assert.Equal(t, "image/jpeg", tpl.ContentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(tpl.Bytes))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, MaxTemplateWidth, cfg.Width)
}

func TestIngestTemplateNeverUpscales(t *testing.T) {
	raw := noisePNG(t, 1200, 1000)
	require.Greater(t, len(raw), MaxTemplateBytes)

	tpl, err := IngestTemplate(raw)
	require.NoError(t, err)
	assert.True(t, tpl.Downsampled)
	assert.Equal(t, 1200, tpl.Width)
	assert.Equal(t, 1000, tpl.Height)
}

func TestIngestTemplateRejectsGarbage(t *testing.T) {
	_, err := IngestTemplate([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrTemplateDecode)

	_, err = IngestTemplate(nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTemplateCanvasIsACopy(t *testing.T) {
	tpl, err := IngestTemplate(solidPNG(t, 20, 10, color.White))
	require.NoError(t, err)

	canvas := tpl.Canvas()
	canvas.Set(0, 0, color.Black)

	r, _, _, _ := tpl.Image.At(0, 0).RGBA()
	assert.EqualValues(t, 0xffff, r)
	assert.Equal(t, image.Pt(20, 10), tpl.Size())
}
