package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// GeneratedCertificate is the rendered output of one generation pass.
// The raw document and template references survive deletion of either
// record (SET NULL); losing the template reference makes the certificate
// impossible to regenerate.
type GeneratedCertificate struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	RawDocumentID *uint `gorm:"index" json:"rawDocumentId,omitempty"`
	TemplateID    *uint `gorm:"index" json:"templateId,omitempty"`

	RawDocument *RawDocument         `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Template    *CertificateTemplate `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	// Rendered payloads, owned by this record. PdfPath is empty when
	// conversion failed or the converter was unavailable.
	DocxPath string `json:"-"`
	PdfPath  string `json:"-"`

	CertificateNumber int       `gorm:"uniqueIndex;not null" json:"certificateNumber"`
	IssueDate         time.Time `gorm:"not null" json:"issueDate"`
	CertificateDate   time.Time `gorm:"not null" json:"certificateDate"`
	ExpiryDate        time.Time `gorm:"not null" json:"expiryDate"`

	// Extracted field values, frozen at generation time
	CustomerName   string `json:"customerName"`
	Destination    string `json:"destination"`
	RegNo          string `gorm:"index" json:"regNo"`
	EngineNo       string `json:"engineNo"`
	ChassisNo      string `json:"chassisNo"`
	Color          string `json:"color"`
	BodyType       string `json:"bodyType"`
	InsuranceValue string `json:"insuranceValue"`
	Signatory      string `json:"signatory"`
	ValuationDate  string `json:"valuationDate"`

	// Tracker identifiers, the only fields editable after issuance
	Imei1 string `json:"imei1"`
	Imei2 string `json:"imei2"`

	CreatedAt time.Time `gorm:"index:,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (GeneratedCertificate) TableName() string {
	return "generated_certificates"
}

// BeforeSave upper-cases identifier fields so normalization happens at
// write time, never at read time.
func (c *GeneratedCertificate) BeforeSave(tx *gorm.DB) error {
	c.CustomerName = strings.ToUpper(c.CustomerName)
	c.Destination = strings.ToUpper(c.Destination)
	c.RegNo = strings.ToUpper(c.RegNo)
	c.EngineNo = strings.ToUpper(c.EngineNo)
	c.ChassisNo = strings.ToUpper(c.ChassisNo)
	c.Color = strings.ToUpper(c.Color)
	c.BodyType = strings.ToUpper(c.BodyType)
	c.InsuranceValue = strings.ToUpper(c.InsuranceValue)
	c.Imei1 = strings.ToUpper(c.Imei1)
	c.Imei2 = strings.ToUpper(c.Imei2)
	return nil
}

// HasPdf reports whether a PDF payload was produced for this certificate
func (c *GeneratedCertificate) HasPdf() bool {
	return c.PdfPath != ""
}
