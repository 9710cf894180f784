package extract

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("building test PDF: %v", err)
	}
	return buf.Bytes()
}

func TestTextExtractsContent(t *testing.T) {
	data := buildPDF(t,
		"CLIENT NAME: JOHN DOE",
		"REGISTRATION NO: KDA123B",
	)

	text, err := Text(data)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if !strings.Contains(text, "JOHN DOE") {
		t.Errorf("extracted text missing client name: %q", text)
	}
	if !strings.Contains(text, "KDA123B") {
		t.Errorf("extracted text missing registration: %q", text)
	}
}

func TestTextRejectsNonPDF(t *testing.T) {
	_, err := Text([]byte("this is not a PDF"))
	if err == nil {
		t.Fatal("expected error for non-PDF input")
	}
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("expected ErrInvalidPDF, got %v", err)
	}
}

func TestTextRejectsEmptyInput(t *testing.T) {
	_, err := Text(nil)
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("expected ErrInvalidPDF for empty input, got %v", err)
	}
}

func TestTextRejectsTruncatedPDF(t *testing.T) {
	// Valid header, nothing else
	_, err := Text([]byte("%PDF-1.4\n"))
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("expected ErrInvalidPDF for truncated file, got %v", err)
	}
}
