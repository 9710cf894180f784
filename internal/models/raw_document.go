package models

import (
	"time"

	"gorm.io/datatypes"
)

// RawDocument is an uploaded Thamini valuation PDF awaiting or past extraction
type RawDocument struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	OriginalFilename string         `gorm:"not null" json:"originalFilename"`
	BlobPath         string         `gorm:"not null" json:"-"`
	ParsedData       datatypes.JSON `json:"parsedData"` // extraction result, set once after a successful parse
	Processed        bool           `gorm:"default:false;index" json:"processed"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

// TableName specifies the table name
func (RawDocument) TableName() string {
	return "raw_documents"
}
