// internals/features/documents/documents/model/document_version_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentVersionModel is one immutable upload. Versions are appended with
// a monotonically increasing number and never edited in place; scanning by
// (document_id, version_number) replays the full upload history.
type DocumentVersionModel struct {
	DocumentVersionID         uuid.UUID `gorm:"column:document_version_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_version_id"`
	DocumentVersionDocumentID uuid.UUID `gorm:"column:document_version_document_id;type:uuid;not null;index:idx_document_versions_doc_num,unique" json:"document_version_document_id"`
	DocumentVersionNumber     int       `gorm:"column:document_version_number;not null;index:idx_document_versions_doc_num,unique" json:"document_version_number"`

	DocumentVersionObjectKey   string `gorm:"column:document_version_object_key;type:text;not null" json:"document_version_object_key"`
	DocumentVersionChecksum    string `gorm:"column:document_version_checksum;type:varchar(64);not null" json:"document_version_checksum"`
	DocumentVersionSizeBytes   int64  `gorm:"column:document_version_size_bytes;not null" json:"document_version_size_bytes"`
	DocumentVersionContentType string `gorm:"column:document_version_content_type;type:varchar(100)" json:"document_version_content_type"`

	// OCR result payload (raw_text, extracted_data, confidence_scores, …)
	DocumentVersionOCRResult datatypes.JSON `gorm:"column:document_version_ocr_result;type:jsonb" json:"document_version_ocr_result,omitempty"`

	DocumentVersionUploadedBy uuid.UUID `gorm:"column:document_version_uploaded_by;type:uuid;not null" json:"document_version_uploaded_by"`
	DocumentVersionCreatedAt  time.Time `gorm:"column:document_version_created_at;not null;autoCreateTime" json:"document_version_created_at"`
}

func (DocumentVersionModel) TableName() string { return "document_versions" }
