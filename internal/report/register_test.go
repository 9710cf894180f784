package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gimbotech/certifier/internal/models"
)

func sampleCert(id uint, number int) models.GeneratedCertificate {
	issue := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return models.GeneratedCertificate{
		ID:                id,
		CertificateNumber: number,
		CustomerName:      "JOHN DOE",
		RegNo:             "KDA123B",
		ChassisNo:         "NCP165-0012345",
		Destination:       "MOMBASA PORT",
		IssueDate:         issue,
		ExpiryDate:        issue.AddDate(0, 0, 365),
	}
}

func TestVerificationURL(t *testing.T) {
	cert := sampleCert(7, 42)
	got := VerificationURL("http://localhost:3310/", &cert)
	want := "http://localhost:3310/certificates/7/verify?n=42"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestQRCodeIsPNG(t *testing.T) {
	cert := sampleCert(1, 1)
	png, err := QRCode("http://localhost:3310", &cert)
	if err != nil {
		t.Fatalf("QRCode failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRegisterPDF(t *testing.T) {
	certs := []models.GeneratedCertificate{sampleCert(1, 1), sampleCert(2, 2)}
	data, err := RegisterPDF("http://localhost:3310", certs)
	if err != nil {
		t.Fatalf("RegisterPDF failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestRegisterPDFEmpty(t *testing.T) {
	data, err := RegisterPDF("http://localhost:3310", nil)
	if err != nil {
		t.Fatalf("RegisterPDF failed on empty register: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestRegisterPDFManyRowsPaginates(t *testing.T) {
	var certs []models.GeneratedCertificate
	for i := 1; i <= 40; i++ {
		certs = append(certs, sampleCert(uint(i), i))
	}
	data, err := RegisterPDF("http://localhost:3310", certs)
	if err != nil {
		t.Fatalf("RegisterPDF failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}
