// Package archive packages transformation outputs for the response: a
// single artifact streams as-is, multiple artifacts become one ZIP.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Artifact is one named output payload with its media type.
type Artifact struct {
	Name      string
	MediaType string
	Data      []byte
}

// Package wraps artifacts for delivery. Exactly one artifact passes
// through untouched; several are zipped under archiveName in production
// order. Zero artifacts yield an empty archive, not an error.
func Package(archiveName string, artifacts []Artifact) (Artifact, error) {
	if len(artifacts) == 1 {
		return artifacts[0], nil
	}
	data, err := Zip(artifacts)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Name:      archiveName,
		MediaType: "application/zip",
		Data:      data,
	}, nil
}

// Zip archives the artifacts preserving order; member names are the
// artifact names, which producers keep collision-free via index
// suffixes.
func Zip(artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range artifacts {
		w, err := zw.Create(a.Name)
		if err != nil {
			return nil, fmt.Errorf("create zip member %s: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("write zip member %s: %w", a.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
