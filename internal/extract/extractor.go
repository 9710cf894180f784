package extract

// Text-layer extraction via github.com/ledongthuc/pdf. Only the embedded
// text layer is read; scanned (image-only) pages yield empty segments.

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrInvalidPDF indicates the uploaded bytes are not a parseable PDF.
// The caller must surface this as an "invalid PDF, re-upload" condition.
var ErrInvalidPDF = errors.New("invalid PDF document")

// Text returns the text of every page, concatenated in page order with a
// line break between pages. A page without extractable text contributes
// an empty segment. Fails only when the bytes are not a valid PDF.
func Text(data []byte) (string, error) {
	// Structural pass first so corrupt uploads fail before any record is
	// written downstream.
	if _, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder

	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			b.WriteString("\n")
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			// Unreadable text layer on one page is not a corrupt file
			text = ""
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
