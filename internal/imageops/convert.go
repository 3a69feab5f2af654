package imageops

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// Format is a supported encode target.
type Format struct {
	Name      string
	Ext       string
	MediaType string
}

var formats = map[string]Format{
	"jpeg": {Name: "jpeg", Ext: "jpg", MediaType: "image/jpeg"},
	"jpg":  {Name: "jpeg", Ext: "jpg", MediaType: "image/jpeg"},
	"png":  {Name: "png", Ext: "png", MediaType: "image/png"},
	"gif":  {Name: "gif", Ext: "gif", MediaType: "image/gif"},
	"bmp":  {Name: "bmp", Ext: "bmp", MediaType: "image/bmp"},
	"tiff": {Name: "tiff", Ext: "tiff", MediaType: "image/tiff"},
	"tif":  {Name: "tiff", Ext: "tiff", MediaType: "image/tiff"},
}

// ParseFormat normalizes a caller-supplied format name.
func ParseFormat(name string) (Format, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, domain.InvalidParameter(fmt.Sprintf("unsupported target format %q", name))
	}
	return f, nil
}

// Encode re-encodes an image in the target format. Lossy targets are
// flattened first; lossless targets keep the source color model.
func Encode(img image.Image, f Format, jpegQuality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f.Name {
	case "jpeg":
		err = jpeg.Encode(&buf, Flatten(img), &jpeg.Options{Quality: clampQuality(jpegQuality)})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, &gif.Options{NumColors: 256})
	case "bmp":
		err = bmp.Encode(&buf, Flatten(img))
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		return nil, domain.InvalidParameter(fmt.Sprintf("unsupported target format %q", f.Name))
	}
	if err != nil {
		return nil, domain.TransformationFailure(fmt.Sprintf("%s encoding failed", f.Name), err)
	}
	return buf.Bytes(), nil
}
