// Package upload reads multipart files and form fields out of inbound
// requests and coerces typed parameters, rejecting requests before any
// transformation starts.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/tooconvert/conversion-api/internal/domain"
)

// maxFormMemory is the in-memory threshold for multipart parsing; parts
// beyond it spill to disk via the stdlib's own temp files.
const maxFormMemory = 32 << 20

// Asset is one uploaded file, fully materialized in memory. The
// filename is only trusted as far as extension sniffing; callers must
// sanitize before touching the filesystem.
type Asset struct {
	Data        []byte
	Filename    string
	ContentType string
}

// File reads the required file part named field.
func File(r *http.Request, field string) (*Asset, error) {
	asset, err := OptionalFile(r, field)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.MissingInput(fmt.Sprintf("file %q is required", field))
	}
	return asset, nil
}

// OptionalFile reads the file part named field, returning (nil, nil)
// when the part is absent.
func OptionalFile(r *http.Request, field string) (*Asset, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.ParseFailure("malformed multipart form", err)
	}
	defer f.Close()
	return readPart(f, hdr)
}

// Files reads all file parts named field. At least one must be present.
func Files(r *http.Request, field string) ([]*Asset, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, domain.MissingInput(fmt.Sprintf("at least one %q file is required", field))
	}

	headers := r.MultipartForm.File[field]
	assets := make([]*Asset, 0, len(headers))
	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			return nil, domain.ParseFailure("malformed multipart form", err)
		}
		asset, err := readPart(f, hdr)
		f.Close()
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// Text reads the required form value named field.
func Text(r *http.Request, field string) (string, error) {
	if err := parseForm(r); err != nil {
		return "", err
	}
	v := r.FormValue(field)
	if v == "" {
		return "", domain.MissingInput(fmt.Sprintf("field %q is required", field))
	}
	return v, nil
}

// OptionalText reads the form value named field, or fallback when absent.
func OptionalText(r *http.Request, field, fallback string) (string, error) {
	if err := parseForm(r); err != nil {
		return "", err
	}
	if v := r.FormValue(field); v != "" {
		return v, nil
	}
	return fallback, nil
}

// Int reads and coerces the required integer form value named field.
func Int(r *http.Request, field string) (int, error) {
	raw, err := Text(r, field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidParameter(fmt.Sprintf("field %q must be an integer", field))
	}
	return n, nil
}

// PositiveInt reads the required integer form value named field and
// rejects values below one.
func PositiveInt(r *http.Request, field string) (int, error) {
	n, err := Int(r, field)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, domain.InvalidParameter(fmt.Sprintf("field %q must be positive", field))
	}
	return n, nil
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return domain.InvalidParameter("request body exceeds the upload limit")
	}
	return domain.ParseFailure("malformed multipart form", err)
}

func readPart(f multipart.File, hdr *multipart.FileHeader) (*Asset, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, domain.InvalidParameter("request body exceeds the upload limit")
		}
		return nil, domain.ParseFailure("failed to read uploaded file", err)
	}
	return &Asset{
		Data:        data,
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
	}, nil
}
