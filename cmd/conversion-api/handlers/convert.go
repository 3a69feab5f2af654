package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/domain"
	"github.com/tooconvert/conversion-api/internal/office"
	"github.com/tooconvert/conversion-api/internal/pdfops"
	"github.com/tooconvert/conversion-api/internal/scratch"
	"github.com/tooconvert/conversion-api/internal/upload"
)

const (
	mediaTypePDF  = "application/pdf"
	mediaTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ConvertHandler serves the cross-format document conversion routes.
// Office formats go through the LibreOffice capability, which requires
// filesystem paths; those requests get a scratch session that is
// removed on every exit path.
type ConvertHandler struct {
	logger      zerolog.Logger
	engine      *pdfops.Engine
	store       *scratch.Store
	office      *office.Converter
	jpegQuality int
}

// NewConvertHandler creates a new conversion handler.
func NewConvertHandler(logger zerolog.Logger, engine *pdfops.Engine, store *scratch.Store, converter *office.Converter, jpegQuality int) *ConvertHandler {
	return &ConvertHandler{
		logger:      logger,
		engine:      engine,
		store:       store,
		office:      converter,
		jpegQuality: jpegQuality,
	}
}

// PDFToImage handles POST /convert/pdf-to-image. One page streams
// directly; several pages are zipped as images.zip.
func (h *ConvertHandler) PDFToImage(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "pdf-to-image", err)
		return
	}
	format, err := upload.OptionalText(r, "format", "jpg")
	if err != nil {
		writeError(w, h.logger, "pdf-to-image", err)
		return
	}

	artifacts, err := pdfops.RenderPages(r.Context(), asset.Data, format, h.jpegQuality)
	if err != nil {
		writeError(w, h.logger, "pdf-to-image", err)
		return
	}

	result, err := archive.Package("images.zip", artifacts)
	if err != nil {
		writeError(w, h.logger, "pdf-to-image", domain.TransformationFailure("failed to archive pages", err))
		return
	}

	h.logger.Info().Str("operation", "pdf-to-image").
		Str("format", format).
		Int("pages", len(artifacts)).
		Msg("rendered")
	streamArtifact(w, result)
}

// ImageToPDF handles POST /convert/image-to-pdf.
func (h *ConvertHandler) ImageToPDF(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, "image-to-pdf", err)
		return
	}

	pdf, err := h.engine.FromImages([][]byte{asset.Data})
	if err != nil {
		writeError(w, h.logger, "image-to-pdf", err)
		return
	}

	name := scratch.SanitizeName(asset.Filename)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
	streamArtifact(w, archive.Artifact{Name: name, MediaType: mediaTypePDF, Data: pdf})
}

// PDFToDocx handles POST /pdf-to-docx and its aliases.
func (h *ConvertHandler) PDFToDocx(w http.ResponseWriter, r *http.Request) {
	h.convertOffice(w, r, "pdf-to-docx", office.TargetDocx, mediaTypeDocx)
}

// DocxToPDF handles POST /convert/docx-to-pdf.
func (h *ConvertHandler) DocxToPDF(w http.ResponseWriter, r *http.Request) {
	h.convertOffice(w, r, "docx-to-pdf", office.TargetPDF, mediaTypePDF)
}

// PPTToPDF handles POST /convert/ppt-to-pdf.
func (h *ConvertHandler) PPTToPDF(w http.ResponseWriter, r *http.Request) {
	h.convertOffice(w, r, "ppt-to-pdf", office.TargetPDF, mediaTypePDF)
}

// ExcelToPDF handles POST /convert/excel-to-pdf.
func (h *ConvertHandler) ExcelToPDF(w http.ResponseWriter, r *http.Request) {
	h.convertOffice(w, r, "excel-to-pdf", office.TargetPDF, mediaTypePDF)
}

func (h *ConvertHandler) convertOffice(w http.ResponseWriter, r *http.Request, operation string, target office.Target, mediaType string) {
	asset, err := upload.File(r, "file")
	if err != nil {
		writeError(w, h.logger, operation, err)
		return
	}

	sess, err := h.store.Session()
	if err != nil {
		writeError(w, h.logger, operation, domain.TransformationFailure("failed to allocate working storage", err))
		return
	}
	defer sess.Close()

	inPath, err := sess.WriteFile(asset.Filename, asset.Data)
	if err != nil {
		writeError(w, h.logger, operation, domain.TransformationFailure("failed to persist upload", err))
		return
	}

	outPath, err := h.office.Convert(r.Context(), inPath, sess.Dir(), target)
	if err != nil {
		writeError(w, h.logger, operation, domain.TransformationFailure("document conversion failed", err))
		return
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		writeError(w, h.logger, operation, domain.TransformationFailure("failed to read conversion output", err))
		return
	}

	h.logger.Info().Str("operation", operation).
		Int("in_bytes", len(asset.Data)).
		Int("out_bytes", len(data)).
		Msg("converted")
	streamArtifact(w, archive.Artifact{
		Name:      filepath.Base(outPath),
		MediaType: mediaType,
		Data:      data,
	})
}
