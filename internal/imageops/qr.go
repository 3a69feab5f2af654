package imageops

import (
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// QRSize is the edge length in pixels of generated QR codes.
const QRSize = 256

// QRCode renders text as a PNG-encoded QR symbol.
func QRCode(text string) ([]byte, error) {
	if text == "" {
		return nil, domain.MissingInput("text is required")
	}
	png, err := qrcode.Encode(text, qrcode.Medium, QRSize)
	if err != nil {
		return nil, domain.TransformationFailure("QR generation failed", err)
	}
	return png, nil
}
