// Package pdfops implements the page-range split/merge engine and the
// PDF rendering and text-extraction capabilities.
package pdfops

import (
	"fmt"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// Chunk is one contiguous page range of a split plan. Start is
// 0-based inclusive, End exclusive.
type Chunk struct {
	Start int
	End   int
}

// Name returns the output filename for the chunk, keyed by the 1-based
// index of its first page.
func (c Chunk) Name() string {
	return fmt.Sprintf("split_%d.pdf", c.Start+1)
}

// Selection returns the chunk's 1-based page selection in pdfcpu syntax.
func (c Chunk) Selection() string {
	return fmt.Sprintf("%d-%d", c.Start+1, c.End)
}

// Pages returns the number of pages in the chunk.
func (c Chunk) Pages() int { return c.End - c.Start }

// Plan partitions pageCount pages into contiguous, non-overlapping
// chunks of pagesPerSplit pages; the last chunk may be shorter. A zero
// page count yields an empty plan. Concatenating the chunks in order
// reproduces the original page order exactly.
func Plan(pageCount, pagesPerSplit int) ([]Chunk, error) {
	if pagesPerSplit <= 0 {
		return nil, domain.InvalidParameter("pages_per_split must be positive")
	}
	if pageCount < 0 {
		return nil, domain.InvalidParameter("page count cannot be negative")
	}

	var chunks []Chunk
	for start := 0; start < pageCount; start += pagesPerSplit {
		end := start + pagesPerSplit
		if end > pageCount {
			end = pageCount
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks, nil
}
