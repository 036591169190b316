package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/skip2/go-qrcode"
)

const DefaultQRSizePercent = 0.12

// QROptions places a verification QR code on every certificate of a batch.
// SizePercent is the side length as a fraction of the template width.
type QROptions struct {
	Enabled     bool
	Position    model.Position
	SizePercent float64
	VerifyHost  string
}

// VerifyURL is the frontend verification page encoded into the QR code of a certificate.
func VerifyURL(host, certificateID string) string {
	return strings.TrimRight(host, "/") + "/verify/" + certificateID
}

func drawQR(canvas *image.RGBA, opts *QROptions, certificateID string, scale Scale) error {
	sizePercent := opts.SizePercent
	if sizePercent <= 0 {
		sizePercent = DefaultQRSizePercent
	}
	side := int(math.Round(sizePercent * float64(scale.TrueWidth)))
	if side <= 0 {
		return fmt.Errorf("qr code size %d is too small", side)
	}

	code, err := qrcode.New(VerifyURL(opts.VerifyHost, certificateID), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode qr code: %w", err)
	}
	img := code.Image(side)

	center := scale.Point(opts.Position)
	origin := image.Pt(
		int(math.Round(center.X))-img.Bounds().Dx()/2,
		int(math.Round(center.Y))-img.Bounds().Dy()/2,
	)
	rect := image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}
	draw.Draw(canvas, rect, img, img.Bounds().Min, draw.Over)

	return nil
}
