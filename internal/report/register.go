package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gimbotech/certifier/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// VerificationURL is the link encoded into a certificate's QR code.
// Scanning it opens the public preview page for the record.
func VerificationURL(baseURL string, cert *models.GeneratedCertificate) string {
	return fmt.Sprintf("%s/certificates/%d/verify?n=%d",
		strings.TrimRight(baseURL, "/"), cert.ID, cert.CertificateNumber)
}

// QRCode renders the verification QR for one certificate as a PNG.
func QRCode(baseURL string, cert *models.GeneratedCertificate) ([]byte, error) {
	return qrcode.Encode(VerificationURL(baseURL, cert), qrcode.Medium, 256)
}

var registerColumns = []struct {
	title string
	width float64
}{
	{"No.", 16},
	{"Customer", 55},
	{"Reg No", 28},
	{"Chassis No", 42},
	{"Destination", 44},
	{"Issued", 24},
	{"Expires", 24},
	{"Verify", 18},
}

// RegisterPDF renders the issued-certificate register as a landscape A4
// table, one row per certificate with a verification QR in the last column.
func RegisterPDF(baseURL string, certs []models.GeneratedCertificate) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 14)

	rowH := 16.0

	header := func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, "Certificate Register", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s, %d records",
			time.Now().UTC().Format("2006-01-02 15:04 MST"), len(certs)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range registerColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.AddPage()
	header()
	pdf.SetFont("Arial", "", 9)

	for i := range certs {
		cert := &certs[i]

		if pdf.GetY()+rowH > 195 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 9)
		}

		x, y := pdf.GetXY()
		cells := []string{
			fmt.Sprintf("%d", cert.CertificateNumber),
			cert.CustomerName,
			cert.RegNo,
			cert.ChassisNo,
			cert.Destination,
			cert.IssueDate.Format("2006-01-02"),
			cert.ExpiryDate.Format("2006-01-02"),
		}
		for j, text := range cells {
			pdf.CellFormat(registerColumns[j].width, rowH, text, "1", 0, "L", false, 0, "")
		}

		// Verification QR fills the last column
		qrCol := registerColumns[len(registerColumns)-1]
		qrPng, err := QRCode(baseURL, cert)
		if err != nil {
			return nil, fmt.Errorf("encoding QR for certificate %d: %w", cert.CertificateNumber, err)
		}
		imgName := fmt.Sprintf("qr_%d", cert.ID)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPng))

		qrX := pdf.GetX()
		pdf.CellFormat(qrCol.width, rowH, "", "1", 0, "C", false, 0, "")
		qrSize := rowH - 2
		pdf.ImageOptions(imgName, qrX+(qrCol.width-qrSize)/2, y+1, qrSize, qrSize, false, opts, 0, "")

		pdf.SetXY(x, y+rowH)
	}

	if len(certs) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 10, "No certificates issued yet.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
