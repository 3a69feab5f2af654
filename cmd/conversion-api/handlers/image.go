package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/imageops"
	"github.com/tooconvert/conversion-api/internal/upload"
)

// ImageHandler serves the raster image routes: resize, format
// conversion, watermarking, target-size compression and QR generation.
type ImageHandler struct {
	logger      zerolog.Logger
	jpegQuality int
	fontPath    string
}

// NewImageHandler creates a new image handler.
func NewImageHandler(logger zerolog.Logger, jpegQuality int, fontPath string) *ImageHandler {
	return &ImageHandler{logger: logger, jpegQuality: jpegQuality, fontPath: fontPath}
}

// Resize handles POST /resize-image.
func (h *ImageHandler) Resize(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "resize-image", err)
		return
	}
	width, err := upload.PositiveInt(r, "width")
	if err != nil {
		writeError(w, h.logger, "resize-image", err)
		return
	}
	height, err := upload.PositiveInt(r, "height")
	if err != nil {
		writeError(w, h.logger, "resize-image", err)
		return
	}

	img, _, err := imageops.Decode(asset.Data)
	if err != nil {
		writeError(w, h.logger, "resize-image", err)
		return
	}
	resized, err := imageops.Resize(img, width, height)
	if err != nil {
		writeError(w, h.logger, "resize-image", err)
		return
	}
	data, err := imageops.EncodeJPEG(resized, h.jpegQuality)
	if err != nil {
		writeError(w, h.logger, "resize-image", err)
		return
	}

	streamArtifact(w, archive.Artifact{Name: "resized.jpg", MediaType: "image/jpeg", Data: data})
}

// ConvertFormat handles POST /convert-format.
func (h *ImageHandler) ConvertFormat(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "convert-format", err)
		return
	}
	rawFormat, err := upload.Text(r, "format")
	if err != nil {
		writeError(w, h.logger, "convert-format", err)
		return
	}
	format, err := imageops.ParseFormat(rawFormat)
	if err != nil {
		writeError(w, h.logger, "convert-format", err)
		return
	}

	img, srcFormat, err := imageops.Decode(asset.Data)
	if err != nil {
		writeError(w, h.logger, "convert-format", err)
		return
	}
	data, err := imageops.Encode(img, format, h.jpegQuality)
	if err != nil {
		writeError(w, h.logger, "convert-format", err)
		return
	}

	h.logger.Info().Str("operation", "convert-format").
		Str("from", srcFormat).
		Str("to", format.Name).
		Msg("converted")
	streamArtifact(w, archive.Artifact{
		Name:      "converted." + format.Ext,
		MediaType: format.MediaType,
		Data:      data,
	})
}

// Watermark handles POST /watermark.
func (h *ImageHandler) Watermark(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}
	text, err := upload.Text(r, "text")
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}
	opacity, err := upload.Int(r, "opacity")
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}
	fontSize, err := upload.PositiveInt(r, "font_size")
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}

	img, _, err := imageops.Decode(asset.Data)
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}
	marked, err := imageops.Watermark(img, text, opacity, fontSize, h.fontPath)
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}
	data, err := imageops.EncodeJPEG(marked, h.jpegQuality)
	if err != nil {
		writeError(w, h.logger, "watermark", err)
		return
	}

	streamArtifact(w, archive.Artifact{Name: "watermarked.jpg", MediaType: "image/jpeg", Data: data})
}

// CompressImage handles POST /compress-image. Best effort: the target
// may be missed when the quality floor is reached first.
func (h *ImageHandler) CompressImage(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "compress-image", err)
		return
	}
	targetKB, err := upload.PositiveInt(r, "target_size")
	if err != nil {
		writeError(w, h.logger, "compress-image", err)
		return
	}

	img, _, err := imageops.Decode(asset.Data)
	if err != nil {
		writeError(w, h.logger, "compress-image", err)
		return
	}
	data, quality, err := imageops.CompressToTarget(img, targetKB)
	if err != nil {
		writeError(w, h.logger, "compress-image", err)
		return
	}

	h.logger.Info().Str("operation", "compress-image").
		Int("target_kb", targetKB).
		Int("out_bytes", len(data)).
		Int("quality", quality).
		Msg("compressed")
	streamArtifact(w, archive.Artifact{Name: "compressed.jpg", MediaType: "image/jpeg", Data: data})
}

// GenerateQR handles POST /generate-qr.
func (h *ImageHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	text, err := upload.Text(r, "text")
	if err != nil {
		writeError(w, h.logger, "generate-qr", err)
		return
	}

	data, err := imageops.QRCode(text)
	if err != nil {
		writeError(w, h.logger, "generate-qr", err)
		return
	}

	streamArtifact(w, archive.Artifact{Name: "qrcode.png", MediaType: "image/png", Data: data})
}
