package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/domain"
	"github.com/tooconvert/conversion-api/internal/pdfops"
	"github.com/tooconvert/conversion-api/internal/scratch"
	"github.com/tooconvert/conversion-api/internal/upload"
)

// PDFHandler serves the PDF manipulation routes: merge, split, text
// extraction and compression.
type PDFHandler struct {
	logger zerolog.Logger
	engine *pdfops.Engine
}

// NewPDFHandler creates a new PDF handler.
func NewPDFHandler(logger zerolog.Logger, engine *pdfops.Engine) *PDFHandler {
	return &PDFHandler{logger: logger, engine: engine}
}

// Merge handles POST /merge-pdf.
func (h *PDFHandler) Merge(w http.ResponseWriter, r *http.Request) {
	assets, err := upload.Files(r, "files")
	if err != nil {
		writeError(w, h.logger, "merge-pdf", err)
		return
	}

	docs := make([][]byte, len(assets))
	for i, a := range assets {
		docs[i] = a.Data
	}

	merged, err := h.engine.Merge(docs)
	if err != nil {
		writeError(w, h.logger, "merge-pdf", err)
		return
	}

	h.logger.Info().Str("operation", "merge-pdf").Int("documents", len(docs)).Msg("merged")
	streamArtifact(w, archive.Artifact{
		Name:      "merged.pdf",
		MediaType: "application/pdf",
		Data:      merged,
	})
}

// Split handles POST /split-pdf. The result is always a ZIP, one member
// per chunk; an empty source document yields an empty archive.
func (h *PDFHandler) Split(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "split-pdf", err)
		return
	}
	pagesPerSplit, err := upload.PositiveInt(r, "pages_per_split")
	if err != nil {
		writeError(w, h.logger, "split-pdf", err)
		return
	}

	artifacts, err := h.engine.Split(asset.Data, pagesPerSplit)
	if err != nil {
		writeError(w, h.logger, "split-pdf", err)
		return
	}

	data, err := archive.Zip(artifacts)
	if err != nil {
		writeError(w, h.logger, "split-pdf", domain.TransformationFailure("failed to archive chunks", err))
		return
	}

	h.logger.Info().Str("operation", "split-pdf").
		Int("pages_per_split", pagesPerSplit).
		Int("chunks", len(artifacts)).
		Msg("split")
	streamArtifact(w, archive.Artifact{
		Name:      "split_pdfs.zip",
		MediaType: "application/zip",
		Data:      data,
	})
}

// ExtractText handles POST /extract-text.
func (h *PDFHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "extract-text", err)
		return
	}

	text, err := pdfops.ExtractText(r.Context(), asset.Data)
	if err != nil {
		writeError(w, h.logger, "extract-text", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// Compress handles POST /compress-pdf. The level parameter is optional
// and clamps to medium when absent or unrecognized.
func (h *PDFHandler) Compress(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "compress-pdf", err)
		return
	}
	rawLevel, err := upload.OptionalText(r, "level", string(pdfops.LevelMedium))
	if err != nil {
		writeError(w, h.logger, "compress-pdf", err)
		return
	}
	level := pdfops.ParseCompressionLevel(rawLevel)

	compressed, err := h.engine.Compress(asset.Data, level)
	if err != nil {
		writeError(w, h.logger, "compress-pdf", err)
		return
	}

	h.logger.Info().Str("operation", "compress-pdf").
		Str("level", string(level)).
		Int("in_bytes", len(asset.Data)).
		Int("out_bytes", len(compressed)).
		Msg("compressed")
	streamArtifact(w, archive.Artifact{
		Name:      "compressed_" + scratch.SanitizeName(asset.Filename),
		MediaType: "application/pdf",
		Data:      compressed,
	})
}
