package pdfops

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/domain"
	"github.com/tooconvert/conversion-api/internal/imageops"
)

// document abstracts the rendered PDF so tests can stub the MuPDF
// binding.
type document interface {
	NumPage() int
	Image(n int) (image.Image, error)
	Text(n int) (string, error)
	Close() error
}

type fitzDocument struct {
	doc *fitz.Document
}

func (d fitzDocument) NumPage() int                  { return d.doc.NumPage() }
func (d fitzDocument) Image(n int) (image.Image, error) { return d.doc.Image(n) }
func (d fitzDocument) Text(n int) (string, error)    { return d.doc.Text(n) }
func (d fitzDocument) Close() error                  { return d.doc.Close() }

var openDocument = func(pdf []byte) (document, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, err
	}
	return fitzDocument{doc: doc}, nil
}

// RenderPages rasterizes every page as an image artifact named
// page_{i}.{ext} with a 0-based page index. Unknown formats render as
// JPEG. The context is checked between pages so a cancelled request
// stops rendering promptly.
func RenderPages(ctx context.Context, pdf []byte, format string, jpegQuality int) ([]archive.Artifact, error) {
	ext, mediaType := "jpg", "image/jpeg"
	if strings.EqualFold(strings.TrimSpace(format), "png") {
		ext, mediaType = "png", "image/png"
	}

	doc, err := openDocument(pdf)
	if err != nil {
		return nil, domain.TransformationFailure("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	artifacts := make([]archive.Artifact, 0, pageCount)
	for n := 0; n < pageCount; n++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.Image(n)
		if err != nil {
			return nil, domain.TransformationFailure(fmt.Sprintf("failed to render page %d", n+1), err)
		}

		var data []byte
		if ext == "png" {
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return nil, domain.TransformationFailure(fmt.Sprintf("failed to encode page %d", n+1), err)
			}
			data = buf.Bytes()
		} else {
			data, err = imageops.EncodeJPEG(img, jpegQuality)
			if err != nil {
				return nil, err
			}
		}

		artifacts = append(artifacts, archive.Artifact{
			Name:      fmt.Sprintf("page_%d.%s", n, ext),
			MediaType: mediaType,
			Data:      data,
		})
	}
	return artifacts, nil
}

// ExtractText concatenates the text of all pages in order.
func ExtractText(ctx context.Context, pdf []byte) (string, error) {
	doc, err := openDocument(pdf)
	if err != nil {
		return "", domain.TransformationFailure("failed to open PDF", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := doc.Text(n)
		if err != nil {
			return "", domain.TransformationFailure(fmt.Sprintf("failed to extract text from page %d", n+1), err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
