package workflow

import (
	"context"
	"strconv"
	"time"

	"github.com/gimbotech/certifier/internal/models"
	"github.com/gimbotech/certifier/internal/storage"
)

// Store is the record-store surface the workflow depends on
type Store interface {
	CreateRawDocument(ctx context.Context, doc *models.RawDocument) error
	CreateTemplate(ctx context.Context, tpl *models.CertificateTemplate) error
	TemplateByID(ctx context.Context, id uint) (*models.CertificateTemplate, error)

	// CreateCertificate allocates the next certificate number and
	// inserts the record in one transaction. build runs with the
	// allocated number before the insert so payloads that embed the
	// number can be rendered; if build fails the transaction rolls back
	// and no number is burned.
	CreateCertificate(ctx context.Context, cert *models.GeneratedCertificate, startNumber *int, build func(number int) error) error

	SaveCertificate(ctx context.Context, cert *models.GeneratedCertificate) error
}

// Converter rasterizes a rendered DOCX on disk into a sibling PDF
type Converter interface {
	Convert(ctx context.Context, docxPath string) (string, error)
}

// Notifier receives pipeline lifecycle events. Optional.
type Notifier interface {
	Notify(event string, payload interface{})
}

// Workflow orchestrates extraction, numbering, rendering and conversion
// for certificate generation and regeneration
type Workflow struct {
	store Store
	blobs *storage.Store
	conv  Converter
	hub   Notifier

	now func() time.Time
}

// New creates a workflow. hub may be nil.
func New(store Store, blobs *storage.Store, conv Converter, hub Notifier) *Workflow {
	return &Workflow{
		store: store,
		blobs: blobs,
		conv:  conv,
		hub:   hub,
		now:   time.Now,
	}
}

func (w *Workflow) notify(event string, payload interface{}) {
	if w.hub != nil {
		w.hub.Notify(event, payload)
	}
}

// renderValues builds the substitution mapping from a certificate's
// stored values. Regeneration and generation share it so a re-render is
// a deterministic function of the record.
func renderValues(cert *models.GeneratedCertificate, number int) map[string]string {
	return map[string]string{
		"customer_name":      cert.CustomerName,
		"destination":        cert.Destination,
		"reg_no":             cert.RegNo,
		"engine_no":          cert.EngineNo,
		"chassis_no":         cert.ChassisNo,
		"color":              cert.Color,
		"body_type":          cert.BodyType,
		"insurance_value":    cert.InsuranceValue,
		"signatory":          cert.Signatory,
		"valuation_date":     cert.ValuationDate,
		"imei1":              cert.Imei1,
		"imei2":              cert.Imei2,
		"certificate_number": strconv.Itoa(number),
		"issue_date":         cert.IssueDate.Format("2006-01-02"),
		"certificate_date":   cert.CertificateDate.Format("2006-01-02"),
		"expiry_date":        cert.ExpiryDate.Format("2006-01-02"),
	}
}
