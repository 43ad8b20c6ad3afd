// file: internals/seeds/documents/document_type_seed.go
package documents

import (
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	m "enrollku_backend/internals/features/documents/documents/model"
)

func strPtr(s string) *string { return &s }

// defaultTypes is the standard intake checklist a fresh RTO starts with.
// RTOs customize rows afterwards; the seed never overwrites existing codes.
func defaultTypes(rtoID uuid.UUID) []m.DocumentTypeModel {
	return []m.DocumentTypeModel{
		{
			DocumentTypeRTOID:            rtoID,
			DocumentTypeCode:             m.DocTypePassport,
			DocumentTypeName:             "Passport",
			DocumentTypeCollectedAtStage: "DRAFT",
			DocumentTypeIsMandatory:      true,
			DocumentTypeOCRModelRef:      strPtr("passport-v2"),
			DocumentTypeKeywords:         pq.StringArray{"passport", "travel document"},
			DocumentTypeDisplayOrder:     1,
		},
		{
			DocumentTypeRTOID:            rtoID,
			DocumentTypeCode:             m.DocTypeTranscript,
			DocumentTypeName:             "Academic Transcript",
			DocumentTypeCollectedAtStage: "DRAFT",
			DocumentTypeIsMandatory:      true,
			DocumentTypeOCRModelRef:      strPtr("transcript-v1"),
			DocumentTypeKeywords:         pq.StringArray{"transcript", "academic record", "statement of results"},
			DocumentTypeDisplayOrder:     2,
		},
		{
			DocumentTypeRTOID:            rtoID,
			DocumentTypeCode:             m.DocTypeEnglishTest,
			DocumentTypeName:             "English Test Result",
			DocumentTypeCollectedAtStage: "DRAFT",
			DocumentTypeIsMandatory:      true,
			DocumentTypeOCRModelRef:      strPtr("english-test-v1"),
			DocumentTypeKeywords:         pq.StringArray{"ielts", "pte", "toefl"},
			DocumentTypeDisplayOrder:     3,
		},
		{
			DocumentTypeRTOID:            rtoID,
			DocumentTypeCode:             m.DocTypeIDCard,
			DocumentTypeName:             "National ID Card",
			DocumentTypeCollectedAtStage: "STAFF_REVIEW",
			DocumentTypeIsMandatory:      false,
			DocumentTypeOCRModelRef:      strPtr("id-card-v1"),
			DocumentTypeKeywords:         pq.StringArray{"id card", "identity card"},
			DocumentTypeDisplayOrder:     4,
		},
		{
			DocumentTypeRTOID:            rtoID,
			DocumentTypeCode:             m.DocTypeGeneric,
			DocumentTypeName:             "Supporting Document",
			DocumentTypeCollectedAtStage: "STAFF_REVIEW",
			DocumentTypeIsMandatory:      false,
			DocumentTypeKeywords:         pq.StringArray{},
			DocumentTypeDisplayOrder:     99,
		},
	}
}

// SeedDocumentTypes inserts the default checklist for one RTO, skipping
// codes that already exist.
func SeedDocumentTypes(db *gorm.DB, rtoID uuid.UUID) error {
	for _, t := range defaultTypes(rtoID) {
		var count int64
		if err := db.Model(&m.DocumentTypeModel{}).
			Where("document_type_rto_id = ? AND document_type_code = ?", rtoID, t.DocumentTypeCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			return err
		}
		log.Printf("[SEED] document type %s created for RTO %s", t.DocumentTypeCode, rtoID)
	}
	return nil
}
