// Package office wraps the LibreOffice binary as a document conversion
// capability: DOCX/PPT/XLSX to PDF and PDF to DOCX. The binary is an
// external collaborator; this package only builds the invocation,
// bounds it with a deadline, and locates the produced file.
package office

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors returned by Convert.
var (
	// ErrTimeout is returned when LibreOffice exceeds the configured timeout.
	ErrTimeout = errors.New("conversion timed out")

	// ErrNoOutput is returned when LibreOffice exits successfully but
	// produces no output file.
	ErrNoOutput = errors.New("conversion produced no output")

	// ErrConversionFailed is returned when LibreOffice exits non-zero.
	ErrConversionFailed = errors.New("conversion failed")
)

// Target describes a conversion destination for LibreOffice.
type Target struct {
	// Spec is the --convert-to argument, e.g. "pdf" or
	// "docx:MS Word 2007 XML".
	Spec string
	// Ext is the extension of the produced file.
	Ext string
	// InFilter optionally forces an import filter on the input.
	InFilter string
}

// Conversion targets used by the API.
var (
	TargetPDF  = Target{Spec: "pdf", Ext: "pdf"}
	TargetDocx = Target{Spec: "docx:MS Word 2007 XML", Ext: "docx", InFilter: "writer_pdf_import"}
)

// Converter shells out to LibreOffice.
type Converter struct {
	BinaryPath string
	Timeout    time.Duration
}

// New returns a converter using binary, falling back to the
// LIBREOFFICE_PATH environment variable and then to "libreoffice".
func New(binary string, timeout time.Duration) *Converter {
	if binary == "" {
		binary = os.Getenv("LIBREOFFICE_PATH")
	}
	if binary == "" {
		binary = "libreoffice"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Converter{BinaryPath: binary, Timeout: timeout}
}

// Convert converts the file at inputPath to the target format, writing
// into outDir, and returns the absolute path of the produced file.
func (c *Converter) Convert(ctx context.Context, inputPath, outDir string, target Target) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.BinaryPath, c.args(inputPath, outDir, target)...)
	// A private HOME gives each invocation its own LibreOffice profile
	// inside outDir, so concurrent requests cannot fight over lock
	// files. The caller removes outDir afterwards, profile included.
	cmd.Env = append(os.Environ(),
		"HOME="+outDir,
		"UserInstallation=file://"+outDir+"/lo-profile",
	)

	if _, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	outPath := filepath.Join(outDir, OutputName(inputPath, target.Ext))
	info, err := os.Stat(outPath)
	if err != nil || info.Size() == 0 {
		return "", ErrNoOutput
	}
	return outPath, nil
}

func (c *Converter) args(inputPath, outDir string, target Target) []string {
	args := []string{"--headless"}
	if target.InFilter != "" {
		args = append(args, "--infilter="+target.InFilter)
	}
	args = append(args, "--convert-to", target.Spec, "--outdir", outDir, inputPath)
	return args
}

// OutputName is the filename LibreOffice produces: the input base name
// with the target extension.
func OutputName(inputPath, ext string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + ext
}
