// Package handlers provides the HTTP handlers for the conversion API.
// Each handler follows the same lifecycle: read the upload, validate
// parameters, invoke the transformation, package the result, stream it
// back. Failures are classified by internal/domain and rendered as
// structured error bodies; raw internal error text is logged, never
// echoed to the caller.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/domain"
)

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error errorInfo `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError logs the full error chain and returns only the
// classification code and a safe message to the caller.
func writeError(w http.ResponseWriter, logger zerolog.Logger, operation string, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		de = domain.TransformationFailure("transformation failed", err)
	}

	evt := logger.Error()
	if de.HTTPStatus() < http.StatusInternalServerError {
		evt = logger.Warn()
	}
	evt.Err(err).Str("operation", operation).Msg("request failed")

	writeJSON(w, de.HTTPStatus(), errorBody{Error: errorInfo{
		Code:    string(de.Code),
		Message: de.Message,
	}})
}

// streamArtifact writes a single output payload as a file download.
func streamArtifact(w http.ResponseWriter, a archive.Artifact) {
	w.Header().Set("Content-Type", a.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(a.Data)
}
