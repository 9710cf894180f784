package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gimbotech/certifier/internal/models"
	"github.com/gimbotech/certifier/internal/render"
	"github.com/gimbotech/certifier/internal/storage"
)

// ErrRegenerationUnavailable means the certificate's original template
// reference was lost, so its documents cannot be re-rendered
var ErrRegenerationUnavailable = errors.New("original template unavailable for regeneration")

// Regenerate re-renders a certificate's documents from its original
// stored template and its current field values, replacing both payloads.
// The certificate number and dates are never recomputed.
func (w *Workflow) Regenerate(ctx context.Context, cert *models.GeneratedCertificate) error {
	if cert.TemplateID == nil {
		return ErrRegenerationUnavailable
	}

	tpl, err := w.store.TemplateByID(ctx, *cert.TemplateID)
	if err != nil {
		return fmt.Errorf("%w: template %d: %v", ErrRegenerationUnavailable, *cert.TemplateID, err)
	}
	tplBytes, err := w.blobs.Read(tpl.BlobPath)
	if err != nil {
		return fmt.Errorf("%w: template payload: %v", ErrRegenerationUnavailable, err)
	}

	cert.Imei1 = strings.ToUpper(cert.Imei1)
	cert.Imei2 = strings.ToUpper(cert.Imei2)

	out, err := render.Fill(tplBytes, renderValues(cert, cert.CertificateNumber))
	if err != nil {
		return err
	}

	base := w.baseFilename(cert)
	newDocx, err := w.blobs.Save(storage.CategoryGenerated, base+".docx", out)
	if err != nil {
		return err
	}

	oldDocx, oldPdf := cert.DocxPath, cert.PdfPath
	cert.DocxPath = newDocx
	cert.PdfPath = ""

	w.convertBestEffort(ctx, cert, base)

	if err := w.store.SaveCertificate(ctx, cert); err != nil {
		// Keep the old payloads if we could not persist the swap
		_ = w.blobs.Delete(newDocx)
		_ = w.blobs.Delete(cert.PdfPath)
		cert.DocxPath = oldDocx
		cert.PdfPath = oldPdf
		return err
	}

	_ = w.blobs.Delete(oldDocx)
	_ = w.blobs.Delete(oldPdf)

	log.Printf("🔁 Certificate #%d regenerated", cert.CertificateNumber)
	w.notify("certificate.regenerated", certEvent(cert))
	return nil
}
