package pdfops

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// buildPDF assembles an n-page PDF fixture by importing n generated
// JPEGs, one page each.
func buildPDF(t *testing.T, e *Engine, n int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 200, 255
	}
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, img, nil))

	pages := make([][]byte, n)
	for i := range pages {
		pages[i] = jpg.Bytes()
	}

	pdf, err := e.FromImages(pages)
	require.NoError(t, err)
	return pdf
}

func TestEngine_PageCount(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 4)

	n, err := e.PageCount(pdf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestEngine_PageCount_Garbage(t *testing.T) {
	e := NewEngine()

	_, err := e.PageCount([]byte("definitely not a pdf"))
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeTransformationFailure, de.Code)
}

func TestEngine_Split_TenPagesByThree(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 10)

	artifacts, err := e.Split(pdf, 3)
	require.NoError(t, err)
	require.Len(t, artifacts, 4)

	wantNames := []string{"split_1.pdf", "split_4.pdf", "split_7.pdf", "split_10.pdf"}
	wantPages := []int{3, 3, 3, 1}
	for i, a := range artifacts {
		assert.Equal(t, wantNames[i], a.Name)
		assert.Equal(t, "application/pdf", a.MediaType)

		n, err := e.PageCount(a.Data)
		require.NoError(t, err)
		assert.Equal(t, wantPages[i], n)
	}
}

func TestEngine_Split_ChunkLargerThanDocument(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 2)

	artifacts, err := e.Split(pdf, 50)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	n, err := e.PageCount(artifacts[0].Data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEngine_Split_RejectsNonPositiveChunkSize(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 2)

	_, err := e.Split(pdf, 0)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidParameter, de.Code)
}

func TestEngine_Merge_PageCountIsSum(t *testing.T) {
	e := NewEngine()
	a := buildPDF(t, e, 2)
	b := buildPDF(t, e, 3)
	c := buildPDF(t, e, 1)

	merged, err := e.Merge([][]byte{a, b, c})
	require.NoError(t, err)

	n, err := e.PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestEngine_Merge_SingleDocumentKeepsPageCount(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 3)

	merged, err := e.Merge([][]byte{pdf})
	require.NoError(t, err)

	n, err := e.PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// Merge is associative at the page-sequence level: merge(merge(a,b),c)
// has the same page count and order as merge(a,b,c).
func TestEngine_Merge_Associative(t *testing.T) {
	e := NewEngine()
	a := buildPDF(t, e, 1)
	b := buildPDF(t, e, 2)
	c := buildPDF(t, e, 3)

	ab, err := e.Merge([][]byte{a, b})
	require.NoError(t, err)
	abc1, err := e.Merge([][]byte{ab, c})
	require.NoError(t, err)

	abc2, err := e.Merge([][]byte{a, b, c})
	require.NoError(t, err)

	n1, err := e.PageCount(abc1)
	require.NoError(t, err)
	n2, err := e.PageCount(abc2)
	require.NoError(t, err)
	assert.Equal(t, n2, n1)
	assert.Equal(t, 6, n1)
}

func TestEngine_Merge_Empty(t *testing.T) {
	e := NewEngine()

	_, err := e.Merge(nil)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeMissingInput, de.Code)
}

// Splitting then merging the chunks in order reproduces the original
// page count.
func TestEngine_SplitThenMergeRoundTrip(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 7)

	artifacts, err := e.Split(pdf, 2)
	require.NoError(t, err)
	require.Len(t, artifacts, 4)

	chunks := make([][]byte, len(artifacts))
	for i, a := range artifacts {
		chunks[i] = a.Data
	}
	merged, err := e.Merge(chunks)
	require.NoError(t, err)

	n, err := e.PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestEngine_Compress_ProducesValidPDF(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 3)

	out, err := e.Compress(pdf, LevelMedium)
	require.NoError(t, err)

	n, err := e.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEngine_FromImages_OnePagePerImage(t *testing.T) {
	e := NewEngine()
	pdf := buildPDF(t, e, 1)

	n, err := e.PageCount(pdf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEngine_FromImages_Empty(t *testing.T) {
	e := NewEngine()

	_, err := e.FromImages(nil)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeMissingInput, de.Code)
}
