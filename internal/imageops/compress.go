package imageops

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/tooconvert/conversion-api/internal/domain"
)

const (
	startQuality = 95
	floorQuality = 10
	qualityStep  = 5
)

// CompressToTarget re-encodes an image as JPEG at decreasing quality
// until the payload fits targetKB kilobytes or the quality floor is
// reached. The target is best-effort: at the floor the result may still
// exceed it. Returns the encoded bytes and the final quality used.
//
// The loop is bounded: quality walks 95, 90, ..., 10, so at most 18
// encodes happen.
func CompressToTarget(img image.Image, targetKB int) ([]byte, int, error) {
	if targetKB <= 0 {
		return nil, 0, domain.InvalidParameter("target_size must be positive")
	}

	flat := Flatten(img)
	quality := startQuality
	for {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
			return nil, 0, domain.TransformationFailure("JPEG encoding failed", err)
		}
		if buf.Len() <= targetKB*1024 || quality <= floorQuality {
			return buf.Bytes(), quality, nil
		}
		quality -= qualityStep
	}
}
