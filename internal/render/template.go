package render

// Placeholder discovery and substitution for DOCX certificate templates.
// Templates use {{ name }} tokens in the document body.

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// ErrInvalidTemplate indicates the uploaded bytes are not a readable
// DOCX document.
var ErrInvalidTemplate = errors.New("invalid DOCX template")

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Placeholders returns the distinct placeholder names declared in the
// template body, sorted. The engine's body parse is tried first; when it
// fails, a raw regex sweep over the archive's document.xml is used —
// some templates contain constructs the engine cannot parse but which
// are still renderable with empty substitutions.
func Placeholders(templateBytes []byte) ([]string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err == nil {
		content := doc.Editable().GetContent()
		doc.Close()
		return collectNames(content), nil
	}

	names, sweepErr := sweepArchive(templateBytes)
	if sweepErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return names, nil
}

// sweepArchive scans the body markup of every document.xml entry
func sweepArchive(templateBytes []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, err
	}

	found := false
	var all []string
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, "document.xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		found = true
		all = append(all, collectNames(string(body))...)
	}
	if !found {
		return nil, errors.New("no document.xml in archive")
	}
	return dedupeSorted(all), nil
}

func collectNames(content string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	return dedupeSorted(names)
}

func dedupeSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Fill substitutes every placeholder in the template with its mapped
// value and returns the completed document. Placeholders absent from the
// mapping are filled with the empty string, so rendering never fails on
// an unbound name. Pure function of (template bytes, mapping).
func Fill(templateBytes []byte, values map[string]string) ([]byte, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	defer doc.Close()

	edit := doc.Editable()
	content := edit.GetContent()

	for _, name := range collectNames(content) {
		value := values[name] // unmatched placeholders render empty
		re := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(name) + `\s*\}\}`)
		content = re.ReplaceAllLiteralString(content, xmlEscape(value))
	}

	edit.SetContent(content)

	var buf bytes.Buffer
	if err := edit.Write(&buf); err != nil {
		return nil, fmt.Errorf("write rendered document: %w", err)
	}
	return buf.Bytes(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
