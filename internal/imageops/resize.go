package imageops

import (
	"bytes"
	"image"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// Resize scales an image to exactly width x height, ignoring the source
// aspect ratio, matching the documented contract of the resize route.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, domain.InvalidParameter("width and height must be positive")
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst, nil
}

// EncodeJPEG flattens and encodes an image as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Flatten(img), &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, domain.TransformationFailure("JPEG encoding failed", err)
	}
	return buf.Bytes(), nil
}

// clampQuality keeps encoder quality within the valid 1-100 range.
// Out-of-range values are clamped, not rejected.
func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	default:
		return q
	}
}
