// internals/features/documents/documents/model/document_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStatus is the manual verification state. Independent of OCR:
// staff can verify a document whose OCR never succeeded.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusVerified DocumentStatus = "VERIFIED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
	DocumentStatusDeleted  DocumentStatus = "DELETED"
)

// ValidDecision reports whether a verify() call may carry this status.
func (s DocumentStatus) ValidDecision() bool {
	return s == DocumentStatusVerified || s == DocumentStatusRejected
}

// OCRStatus tracks the extraction pipeline per document.
type OCRStatus string

const (
	OCRStatusPending     OCRStatus = "PENDING"
	OCRStatusProcessing  OCRStatus = "PROCESSING"
	OCRStatusCompleted   OCRStatus = "COMPLETED"
	OCRStatusFailed      OCRStatus = "FAILED"
	OCRStatusNotRequired OCRStatus = "NOT_REQUIRED"
)

// DocumentModel is one logical document slot per application/type. Fresh
// uploads append a DocumentVersionModel and pull status back to PENDING.
type DocumentModel struct {
	DocumentID            uuid.UUID `gorm:"column:document_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_id"`
	DocumentApplicationID uuid.UUID `gorm:"column:document_application_id;type:uuid;not null;index" json:"document_application_id"`
	DocumentTypeID        uuid.UUID `gorm:"column:document_type_id;type:uuid;not null;index" json:"document_type_id"`

	DocumentStatus    DocumentStatus `gorm:"column:document_status;type:varchar(20);not null;default:'PENDING'" json:"document_status"`
	DocumentOCRStatus OCRStatus      `gorm:"column:document_ocr_status;type:varchar(20);not null;default:'PENDING'" json:"document_ocr_status"`

	DocumentVerifiedBy *uuid.UUID `gorm:"column:document_verified_by;type:uuid" json:"document_verified_by,omitempty"`
	DocumentVerifiedAt *time.Time `gorm:"column:document_verified_at" json:"document_verified_at,omitempty"`

	DocumentUploadedBy uuid.UUID `gorm:"column:document_uploaded_by;type:uuid;not null" json:"document_uploaded_by"`
	DocumentUploadedAt time.Time `gorm:"column:document_uploaded_at;not null" json:"document_uploaded_at"`

	DocumentCreatedAt time.Time      `gorm:"column:document_created_at;not null;autoCreateTime" json:"document_created_at"`
	DocumentUpdatedAt time.Time      `gorm:"column:document_updated_at;not null;autoUpdateTime" json:"document_updated_at"`
	DocumentDeletedAt gorm.DeletedAt `gorm:"column:document_deleted_at;index" json:"document_deleted_at,omitempty"`
}

func (DocumentModel) TableName() string { return "documents" }
