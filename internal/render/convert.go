package render

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

var (
	// ErrConverterNotFound means the converter binary is not installed.
	// Non-fatal: the caller keeps the DOCX and records the PDF as absent.
	ErrConverterNotFound = errors.New("PDF converter not installed")

	// ErrConversionFailed means the converter ran but produced no output
	ErrConversionFailed = errors.New("PDF conversion failed")
)

// Converter invokes a headless office binary to rasterize a rendered
// DOCX into a PDF. The boundary is bytes-on-disk in, PDF path out, or a
// reported failure.
type Converter struct {
	Binary  string
	Timeout time.Duration
}

// NewConverter creates a converter with defaults applied
func NewConverter(binary string, timeout time.Duration) *Converter {
	if binary == "" {
		binary = "soffice"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Converter{Binary: binary, Timeout: timeout}
}

// Convert renders docxPath to a sibling PDF in the same directory and
// returns the PDF path. Exceeding the timeout counts as a conversion
// failure.
func (c *Converter) Convert(ctx context.Context, docxPath string) (string, error) {
	bin, err := exec.LookPath(c.Binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrConverterNotFound, c.Binary)
	}

	outDir := filepath.Dir(docxPath)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrConversionFailed, err, strings.TrimSpace(string(out)))
	}

	pdfPath := strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("%w: no output at %s", ErrConversionFailed, pdfPath)
	}
	return pdfPath, nil
}
