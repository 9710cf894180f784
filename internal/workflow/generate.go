package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gimbotech/certifier/internal/extract"
	"github.com/gimbotech/certifier/internal/models"
	"github.com/gimbotech/certifier/internal/numbering"
	"github.com/gimbotech/certifier/internal/render"
	"github.com/gimbotech/certifier/internal/storage"
)

var (
	// ErrInvalidUpload means the uploaded file has the wrong type or
	// extension. Rejected before any record is committed.
	ErrInvalidUpload = errors.New("invalid upload")

	// ErrTemplateRequired means generation was attempted without a DOCX
	// template
	ErrTemplateRequired = errors.New("certificate template is required")
)

// GenerateInput carries one generation request
type GenerateInput struct {
	PDFName      string
	PDFBytes     []byte
	TemplateName string
	TemplateBytes []byte

	// StartNumber overrides sequence allocation when set
	StartNumber *int

	Imei1 string
	Imei2 string
}

// Generate runs the full pipeline: validate, extract, parse, allocate,
// render, convert, persist. Extraction and rendering failures abort
// before a certificate number is committed; conversion failures are
// recovered and leave the certificate without a PDF payload.
func (w *Workflow) Generate(ctx context.Context, in GenerateInput) (*models.GeneratedCertificate, error) {
	if !strings.HasSuffix(strings.ToLower(in.PDFName), ".pdf") {
		return nil, fmt.Errorf("%w: %s is not a PDF", ErrInvalidUpload, in.PDFName)
	}
	if len(in.TemplateBytes) == 0 {
		return nil, ErrTemplateRequired
	}
	if !strings.HasSuffix(strings.ToLower(in.TemplateName), ".docx") {
		return nil, fmt.Errorf("%w: %s is not a DOCX template", ErrInvalidUpload, in.TemplateName)
	}

	// Extract before any database write so a corrupt source rejects the
	// whole request cleanly
	text, err := extract.Text(in.PDFBytes)
	if err != nil {
		return nil, err
	}
	fields := extract.Parse(text)
	fields.Imei1 = strings.ToUpper(in.Imei1)
	fields.Imei2 = strings.ToUpper(in.Imei2)

	placeholders, err := render.Placeholders(in.TemplateBytes)
	if err != nil {
		return nil, err
	}

	// Persist the source document with its extraction result
	rawPath, err := w.blobs.Save(storage.CategoryUploads, in.PDFName, in.PDFBytes)
	if err != nil {
		return nil, err
	}
	parsedJSON, _ := json.Marshal(fields)
	doc := &models.RawDocument{
		OriginalFilename: in.PDFName,
		BlobPath:         rawPath,
		ParsedData:       parsedJSON,
		Processed:        true,
	}
	if err := w.store.CreateRawDocument(ctx, doc); err != nil {
		return nil, err
	}

	// Persist the template for future regeneration
	tplPath, err := w.blobs.Save(storage.CategoryTemplates, in.TemplateName, in.TemplateBytes)
	if err != nil {
		return nil, err
	}
	placeholdersJSON, _ := json.Marshal(placeholders)
	tpl := &models.CertificateTemplate{
		Name:         "Template " + in.TemplateName,
		BlobPath:     tplPath,
		Placeholders: placeholdersJSON,
	}
	if err := w.store.CreateTemplate(ctx, tpl); err != nil {
		return nil, err
	}

	sched := numbering.ScheduleFor(w.now())
	cert := &models.GeneratedCertificate{
		RawDocumentID:   &doc.ID,
		TemplateID:      &tpl.ID,
		IssueDate:       sched.IssueDate,
		CertificateDate: sched.CertificateDate,
		ExpiryDate:      sched.ExpiryDate,
		CustomerName:    strings.ToUpper(fields.CustomerName),
		Destination:     strings.ToUpper(fields.Destination),
		RegNo:           strings.ToUpper(fields.RegNo),
		EngineNo:        strings.ToUpper(fields.EngineNo),
		ChassisNo:       strings.ToUpper(fields.ChassisNo),
		Color:           strings.ToUpper(fields.Color),
		BodyType:        strings.ToUpper(fields.BodyType),
		InsuranceValue:  strings.ToUpper(fields.InsuranceValue),
		Signatory:       fields.Signatory,
		ValuationDate:   fields.ValuationDate,
		Imei1:           fields.Imei1,
		Imei2:           fields.Imei2,
	}

	base := w.baseFilename(cert)
	err = w.store.CreateCertificate(ctx, cert, in.StartNumber, func(number int) error {
		out, err := render.Fill(in.TemplateBytes, renderValues(cert, number))
		if err != nil {
			return err
		}
		path, err := w.blobs.Save(storage.CategoryGenerated, base+".docx", out)
		if err != nil {
			return err
		}
		cert.DocxPath = path
		return nil
	})
	if err != nil {
		// Remove the orphaned payload if the insert rolled back after
		// the blob was written
		_ = w.blobs.Delete(cert.DocxPath)
		return nil, err
	}

	w.convertBestEffort(ctx, cert, base)

	log.Printf("📜 Certificate #%d generated for %s", cert.CertificateNumber, orUnknown(cert.RegNo))
	w.notify("certificate.generated", certEvent(cert))
	return cert, nil
}

// convertBestEffort attempts DOCX→PDF conversion. Failure is logged and
// never invalidates the generated certificate.
func (w *Workflow) convertBestEffort(ctx context.Context, cert *models.GeneratedCertificate, base string) {
	docxBytes, err := w.blobs.Read(cert.DocxPath)
	if err != nil {
		log.Printf("⚠️ Conversion skipped, cannot read payload: %v", err)
		return
	}

	tmpDocx, err := w.blobs.SaveTemp(base+".docx", docxBytes)
	if err != nil {
		log.Printf("⚠️ Conversion skipped, temp write failed: %v", err)
		return
	}
	defer os.Remove(tmpDocx)

	pdfPath, err := w.conv.Convert(ctx, tmpDocx)
	if err != nil {
		log.Printf("⚠️ PDF conversion failed for certificate #%d: %v", cert.CertificateNumber, err)
		w.notify("conversion.failed", certEvent(cert))
		return
	}
	defer os.Remove(pdfPath)

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		log.Printf("⚠️ PDF conversion output unreadable: %v", err)
		w.notify("conversion.failed", certEvent(cert))
		return
	}

	path, err := w.blobs.Save(storage.CategoryGenerated, base+".pdf", pdfBytes)
	if err != nil {
		log.Printf("⚠️ Could not store PDF payload: %v", err)
		return
	}
	cert.PdfPath = path
	if err := w.store.SaveCertificate(context.WithoutCancel(ctx), cert); err != nil {
		log.Printf("⚠️ Could not record PDF payload: %v", err)
	}
}

func (w *Workflow) baseFilename(cert *models.GeneratedCertificate) string {
	return fmt.Sprintf("%s_%s", orUnknown(cert.RegNo), w.now().UTC().Format("20060102_150405"))
}

func orUnknown(regNo string) string {
	if regNo == "" {
		return "CERT"
	}
	return regNo
}

func certEvent(cert *models.GeneratedCertificate) map[string]interface{} {
	return map[string]interface{}{
		"certificateId":     cert.ID,
		"certificateNumber": cert.CertificateNumber,
		"regNo":             cert.RegNo,
		"hasPdf":            cert.HasPdf(),
	}
}
