package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tooconvert/conversion-api/internal/archive"
	"github.com/tooconvert/conversion-api/internal/domain"
	"github.com/tooconvert/conversion-api/internal/upload"
)

// TextHandler serves the text utility routes: base64 encode/decode and
// JSON formatting.
type TextHandler struct {
	logger zerolog.Logger
}

// NewTextHandler creates a new text handler.
func NewTextHandler(logger zerolog.Logger) *TextHandler {
	return &TextHandler{logger: logger}
}

// Base64Encode handles POST /base64-encode. Exactly one of the file
// part and the text field must be present.
func (h *TextHandler) Base64Encode(w http.ResponseWriter, r *http.Request) {
	asset, err := upload.OptionalFile(r, "file")
	if err != nil {
		writeError(w, h.logger, "base64-encode", err)
		return
	}
	text, err := upload.OptionalText(r, "text", "")
	if err != nil {
		writeError(w, h.logger, "base64-encode", err)
		return
	}

	switch {
	case asset == nil && text == "":
		writeError(w, h.logger, "base64-encode", domain.MissingInput("either file or text is required"))
		return
	case asset != nil && text != "":
		writeError(w, h.logger, "base64-encode", domain.InvalidParameter("provide either file or text, not both"))
		return
	}

	data := []byte(text)
	if asset != nil {
		data = asset.Data
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"base64": base64.StdEncoding.EncodeToString(data),
	})
}

// Base64Decode handles POST /base64-decode. Invalid input is rejected
// before anything is written anywhere.
func (h *TextHandler) Base64Decode(w http.ResponseWriter, r *http.Request) {
	encoded, err := upload.Text(r, "encoded")
	if err != nil {
		writeError(w, h.logger, "base64-decode", err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		writeError(w, h.logger, "base64-decode", domain.ParseFailure("invalid base64 input", err))
		return
	}

	streamArtifact(w, archive.Artifact{
		Name:      "decoded.bin",
		MediaType: "application/octet-stream",
		Data:      data,
	})
}

// FormatJSON handles POST /format-json. Indentation preserves key order
// and numeric literals, so formatting is idempotent.
func (h *TextHandler) FormatJSON(w http.ResponseWriter, r *http.Request) {
	jsonText, err := upload.Text(r, "json_text")
	if err != nil {
		writeError(w, h.logger, "format-json", err)
		return
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(jsonText), "", "    "); err != nil {
		writeError(w, h.logger, "format-json", domain.ParseFailure("invalid JSON", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"formatted": buf.String()})
}
