// Package imageops implements the raster image transformations: decode,
// resize, format conversion, watermark compositing, target-size
// compression and QR generation.
package imageops

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// Decode sniffs and decodes an uploaded image, returning the decoded
// image and the detected source format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", domain.TransformationFailure("unsupported or corrupt image", err)
	}
	return img, format, nil
}

// Flatten normalizes any color model to opaque RGB by compositing over
// a white background. JPEG carries no alpha channel, so every lossy
// encode path goes through here first.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
