package models

import (
	"time"

	"gorm.io/datatypes"
)

// CertificateTemplate is an uploaded DOCX certificate template.
// Immutable after upload; certificates keep a reference to it so they
// can be re-rendered later.
type CertificateTemplate struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;default:'Certificate Template'" json:"name"`
	BlobPath     string         `gorm:"not null" json:"-"`
	Placeholders datatypes.JSON `json:"placeholders"` // cached discovery result, e.g. ["customer_name","reg_no"]

	UploadedAt time.Time `gorm:"autoCreateTime;index:,sort:desc" json:"uploadedAt"`
}

// TableName specifies the table name
func (CertificateTemplate) TableName() string {
	return "certificate_templates"
}
