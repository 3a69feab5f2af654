package pdfops

import (
	"bytes"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/domain"
)

// CompressionLevel selects how aggressively a PDF is optimized.
type CompressionLevel string

const (
	LevelHigh   CompressionLevel = "high"
	LevelMedium CompressionLevel = "medium"
	LevelLow    CompressionLevel = "low"
)

// ParseCompressionLevel normalizes a caller-supplied level. Unknown or
// empty values clamp to medium rather than failing the request.
func ParseCompressionLevel(s string) CompressionLevel {
	switch CompressionLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelHigh:
		return LevelHigh
	case LevelLow:
		return LevelLow
	default:
		return LevelMedium
	}
}

// Engine operates on in-memory PDF documents via pdfcpu.
type Engine struct {
	conf *model.Configuration
}

// NewEngine returns an engine with relaxed validation, tolerating the
// slightly out-of-spec PDFs that uploads tend to be.
func NewEngine() *Engine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Engine{conf: conf}
}

// PageCount returns the number of pages in the document.
func (e *Engine) PageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), e.conf)
	if err != nil {
		return 0, domain.TransformationFailure("failed to read PDF", err)
	}
	return n, nil
}

// Split partitions the document into chunks of pagesPerSplit pages,
// each serialized as a standalone PDF artifact named after the 1-based
// index of its first page. An empty document yields zero artifacts.
func (e *Engine) Split(pdf []byte, pagesPerSplit int) ([]archive.Artifact, error) {
	pageCount, err := e.PageCount(pdf)
	if err != nil {
		return nil, err
	}
	chunks, err := Plan(pageCount, pagesPerSplit)
	if err != nil {
		return nil, err
	}

	artifacts := make([]archive.Artifact, 0, len(chunks))
	for _, c := range chunks {
		var buf bytes.Buffer
		if err := api.Trim(bytes.NewReader(pdf), &buf, []string{c.Selection()}, e.conf); err != nil {
			return nil, domain.TransformationFailure("failed to extract pages "+c.Selection(), err)
		}
		artifacts = append(artifacts, archive.Artifact{
			Name:      c.Name(),
			MediaType: "application/pdf",
			Data:      buf.Bytes(),
		})
	}
	return artifacts, nil
}

// Merge concatenates the documents into one, preserving both the given
// document order and each document's page order. Merging a single
// document is the identity transformation on its page sequence.
func (e *Engine) Merge(docs [][]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, domain.MissingInput("at least one PDF is required")
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, e.conf); err != nil {
		return nil, domain.TransformationFailure("failed to merge PDFs", err)
	}
	return buf.Bytes(), nil
}

// Compress rewrites the document dropping unused objects and compressing
// streams. The level is recorded for the caller but optimization runs
// the same lossless pass for every level; pdfcpu exposes no lossy
// quality knob.
func (e *Engine) Compress(pdf []byte, level CompressionLevel) ([]byte, error) {
	_ = level
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(pdf), &buf, e.conf); err != nil {
		return nil, domain.TransformationFailure("failed to compress PDF", err)
	}
	return buf.Bytes(), nil
}

// FromImages builds a PDF with one page per input image.
func (e *Engine) FromImages(images [][]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, domain.MissingInput("at least one image is required")
	}

	readers := make([]io.Reader, len(images))
	for i, img := range images {
		readers[i] = bytes.NewReader(img)
	}

	var buf bytes.Buffer
	imp := pdfcpu.DefaultImportConfig()
	if err := api.ImportImages(nil, &buf, readers, imp, e.conf); err != nil {
		return nil, domain.TransformationFailure("failed to convert image to PDF", err)
	}
	return buf.Bytes(), nil
}
