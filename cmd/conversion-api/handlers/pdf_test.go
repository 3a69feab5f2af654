package handlers

import (
	"archive/zip"
	"bytes"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooconvert/conversion-api/internal/pdfops"
)

// buildPDF assembles an n-page PDF fixture by importing n generated
// JPEGs, one page each.
func buildPDF(t *testing.T, engine *pdfops.Engine, n int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, img, nil))

	pages := make([][]byte, n)
	for i := range pages {
		pages[i] = jpg.Bytes()
	}
	pdf, err := engine.FromImages(pages)
	require.NoError(t, err)
	return pdf
}

func TestSplit_TenPagesByThree(t *testing.T) {
	engine := pdfops.NewEngine()
	h := NewPDFHandler(zerolog.Nop(), engine)

	req := multipartRequest(t, "/split-pdf",
		[]filePart{{"file", "doc.pdf", buildPDF(t, engine, 10)}},
		map[string]string{"pages_per_split": "3"})
	rec := httptest.NewRecorder()

	h.Split(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "split_pdfs.zip")

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 4)

	wantNames := []string{"split_1.pdf", "split_4.pdf", "split_7.pdf", "split_10.pdf"}
	for i, f := range zr.File {
		assert.Equal(t, wantNames[i], f.Name)
	}
}

func TestSplit_RejectsInvalidChunkSize(t *testing.T) {
	engine := pdfops.NewEngine()
	h := NewPDFHandler(zerolog.Nop(), engine)

	req := multipartRequest(t, "/split-pdf",
		[]filePart{{"file", "doc.pdf", buildPDF(t, engine, 2)}},
		map[string]string{"pages_per_split": "-2"})
	rec := httptest.NewRecorder()

	h.Split(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_parameter", decodeErrorBody(t, rec).Error.Code)
}

func TestSplit_MissingFile(t *testing.T) {
	h := NewPDFHandler(zerolog.Nop(), pdfops.NewEngine())

	req := multipartRequest(t, "/split-pdf", nil, map[string]string{"pages_per_split": "3"})
	rec := httptest.NewRecorder()

	h.Split(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_input", decodeErrorBody(t, rec).Error.Code)
}

func TestMerge(t *testing.T) {
	engine := pdfops.NewEngine()
	h := NewPDFHandler(zerolog.Nop(), engine)

	req := multipartRequest(t, "/merge-pdf", []filePart{
		{"files", "a.pdf", buildPDF(t, engine, 2)},
		{"files", "b.pdf", buildPDF(t, engine, 3)},
	}, nil)
	rec := httptest.NewRecorder()

	h.Merge(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "merged.pdf")

	n, err := engine.PageCount(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestMerge_NoFiles(t *testing.T) {
	h := NewPDFHandler(zerolog.Nop(), pdfops.NewEngine())

	req := multipartRequest(t, "/merge-pdf", nil, map[string]string{"x": "y"})
	rec := httptest.NewRecorder()

	h.Merge(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_input", decodeErrorBody(t, rec).Error.Code)
}

func TestCompressPDF(t *testing.T) {
	engine := pdfops.NewEngine()
	h := NewPDFHandler(zerolog.Nop(), engine)

	req := multipartRequest(t, "/compress-pdf",
		[]filePart{{"file", "report.pdf", buildPDF(t, engine, 3)}},
		map[string]string{"level": "high"})
	rec := httptest.NewRecorder()

	h.Compress(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "compressed_report.pdf")

	n, err := engine.PageCount(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCompressPDF_UnknownLevelClampsToMedium(t *testing.T) {
	engine := pdfops.NewEngine()
	h := NewPDFHandler(zerolog.Nop(), engine)

	req := multipartRequest(t, "/compress-pdf",
		[]filePart{{"file", "doc.pdf", buildPDF(t, engine, 1)}},
		map[string]string{"level": "extreme"})
	rec := httptest.NewRecorder()

	h.Compress(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompressPDF_GarbageInput(t *testing.T) {
	h := NewPDFHandler(zerolog.Nop(), pdfops.NewEngine())

	req := multipartRequest(t, "/compress-pdf",
		[]filePart{{"file", "doc.pdf", []byte("not a pdf")}}, nil)
	rec := httptest.NewRecorder()

	h.Compress(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "transformation_failure", body.Error.Code)
	// Safe message only; the library's raw error text stays in the logs.
	assert.NotContains(t, body.Error.Message, "xref")
}
