package imageops

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// Tiling strides relative to the font size.
const (
	strideXFactor = 10
	strideYFactor = 8
)

// Watermark tiles text across the image on a transparent layer, then
// alpha-composites the layer over the base. fontPath optionally points
// at a TTF/OTF file; when empty or unreadable the embedded Go Regular
// face is used, and a fixed-size bitmap face is the last resort.
// Opacity is clamped to 0-255. The result keeps the base dimensions and
// an opaque color model ready for lossy encoding.
func Watermark(img image.Image, text string, opacity, fontSize int, fontPath string) (image.Image, error) {
	if text == "" {
		return nil, domain.MissingInput("watermark text is required")
	}
	if fontSize <= 0 {
		return nil, domain.InvalidParameter("font_size must be positive")
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 255 {
		opacity = 255
	}

	base := Flatten(img)
	bounds := base.Bounds()

	layer := image.NewRGBA(bounds)
	face := loadFace(fontPath, fontSize)
	drawer := font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(opacity)}),
		Face: face,
	}

	ascent := face.Metrics().Ascent.Ceil()
	stepX := strideXFactor * fontSize
	stepY := strideYFactor * fontSize
	for y := 0; y < bounds.Dy(); y += stepY {
		for x := 0; x < bounds.Dx(); x += stepX {
			drawer.Dot = fixed.P(x, y+ascent)
			drawer.DrawString(text)
		}
	}

	draw.Draw(base, bounds, layer, image.Point{}, draw.Over)
	return base, nil
}

func loadFace(path string, size int) font.Face {
	ttf := goregular.TTF
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			ttf = b
		}
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
