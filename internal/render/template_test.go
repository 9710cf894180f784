package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// buildTemplate assembles a minimal DOCX archive whose body contains the
// given paragraph text
func buildTemplate(t *testing.T, bodyText string) []byte {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + bodyText + `</w:t></w:r></w:p></w:body></w:document>`

	entries := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", document},
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("create %s: %v", e.name, err)
		}
		if _, err := f.Write([]byte(e.content)); err != nil {
			t.Fatalf("write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

// documentXML extracts word/document.xml from a rendered archive
func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open rendered archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open document.xml: %v", err)
			}
			defer rc.Close()
			body, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read document.xml: %v", err)
			}
			return string(body)
		}
	}
	t.Fatal("rendered archive has no word/document.xml")
	return ""
}

func TestPlaceholders(t *testing.T) {
	tpl := buildTemplate(t, "No. {{certificate_number}} issued to {{customer_name}} for {{ reg_no }} ({{customer_name}})")

	names, err := Placeholders(tpl)
	if err != nil {
		t.Fatalf("Placeholders failed: %v", err)
	}

	want := []string{"certificate_number", "customer_name", "reg_no"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPlaceholdersRejectsGarbage(t *testing.T) {
	if _, err := Placeholders([]byte("not a zip archive")); err == nil {
		t.Fatal("expected error for non-DOCX input")
	}
}

func TestFillSubstitutesValues(t *testing.T) {
	tpl := buildTemplate(t, "Issued to {{customer_name}}, reg {{ reg_no }}, imei {{imei1}}")

	out, err := Fill(tpl, map[string]string{
		"customer_name": "JOHN DOE",
		"reg_no":        "KDA123B",
	})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}

	body := documentXML(t, out)
	if !strings.Contains(body, "JOHN DOE") {
		t.Errorf("customer name missing from body: %s", body)
	}
	if !strings.Contains(body, "KDA123B") {
		t.Errorf("reg no missing from body: %s", body)
	}
	// imei1 had no mapping entry; it must render as empty, never remain
	if strings.Contains(body, "{{") {
		t.Errorf("unsubstituted placeholder left in body: %s", body)
	}
}

func TestFillEscapesMarkup(t *testing.T) {
	tpl := buildTemplate(t, "Value: {{insurance_value}}")

	out, err := Fill(tpl, map[string]string{"insurance_value": `KSH <1,000> & "more"`})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}

	body := documentXML(t, out)
	if !strings.Contains(body, "KSH &lt;1,000&gt; &amp; &quot;more&quot;") {
		t.Errorf("value not escaped: %s", body)
	}
}

func TestFillDeterministic(t *testing.T) {
	tpl := buildTemplate(t, "No. {{certificate_number}} for {{customer_name}}")
	values := map[string]string{"certificate_number": "42", "customer_name": "JOHN DOE"}

	a, err := Fill(tpl, values)
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	b, err := Fill(tpl, values)
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different bytes")
	}
}

func TestFillRejectsGarbage(t *testing.T) {
	if _, err := Fill([]byte("junk"), nil); err == nil {
		t.Fatal("expected error for non-DOCX input")
	}
}
