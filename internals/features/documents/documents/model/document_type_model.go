// internals/features/documents/documents/model/document_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Well-known document type codes the OCR extractor has dedicated
// heuristics for; anything else falls back to GENERIC.
const (
	DocTypePassport    = "PASSPORT"
	DocTypeTranscript  = "TRANSCRIPT"
	DocTypeEnglishTest = "ENGLISH_TEST"
	DocTypeIDCard      = "ID_CARD"
	DocTypeGeneric     = "GENERIC"
)

// DocumentTypeModel is static reference data: which documents an RTO
// collects, at which stage, and whether they gate approval.
type DocumentTypeModel struct {
	DocumentTypeID    uuid.UUID `gorm:"column:document_type_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_type_id"`
	DocumentTypeRTOID uuid.UUID `gorm:"column:document_type_rto_id;type:uuid;not null;index" json:"document_type_rto_id"`

	DocumentTypeCode string `gorm:"column:document_type_code;type:varchar(40);not null" json:"document_type_code"`
	DocumentTypeName string `gorm:"column:document_type_name;type:varchar(120);not null" json:"document_type_name"`

	DocumentTypeCollectedAtStage string `gorm:"column:document_type_collected_at_stage;type:varchar(30);not null" json:"document_type_collected_at_stage"`
	DocumentTypeIsMandatory      bool   `gorm:"column:document_type_is_mandatory;not null;default:false" json:"document_type_is_mandatory"`

	// extraction hints
	DocumentTypeOCRModelRef *string        `gorm:"column:document_type_ocr_model_ref;type:varchar(120)" json:"document_type_ocr_model_ref,omitempty"`
	DocumentTypeKeywords    pq.StringArray `gorm:"column:document_type_keywords;type:text[]" json:"document_type_keywords,omitempty"`

	DocumentTypeDisplayOrder int `gorm:"column:document_type_display_order;not null;default:0" json:"document_type_display_order"`

	DocumentTypeCreatedAt time.Time `gorm:"column:document_type_created_at;not null;autoCreateTime" json:"document_type_created_at"`
	DocumentTypeUpdatedAt time.Time `gorm:"column:document_type_updated_at;not null;autoUpdateTime" json:"document_type_updated_at"`
}

func (DocumentTypeModel) TableName() string { return "document_types" }
