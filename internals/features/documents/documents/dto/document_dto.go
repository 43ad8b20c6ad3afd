// internals/features/documents/documents/dto/document_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "enrollku_backend/internals/features/documents/documents/model"
	ocrDTO "enrollku_backend/internals/features/documents/ocr/dto"
)

type VerifyDocumentRequest struct {
	Decision string  `json:"decision" validate:"required"`
	Notes    *string `json:"notes"`
}

// VerificationResult is the shape handed back after every verify call.
type VerificationResult struct {
	DocumentID uuid.UUID        `json:"document_id"`
	Status     m.DocumentStatus `json:"status"`
	VerifiedAt *time.Time       `json:"verified_at,omitempty"`
	Message    string           `json:"message"`
}

type DocumentResponse struct {
	DocumentID    uuid.UUID        `json:"document_id"`
	ApplicationID uuid.UUID        `json:"application_id"`
	TypeID        uuid.UUID        `json:"document_type_id"`
	TypeCode      string           `json:"document_type_code,omitempty"`
	TypeName      string           `json:"document_type_name,omitempty"`
	Status        m.DocumentStatus `json:"status"`
	OCRStatus     m.OCRStatus      `json:"ocr_status"`
	UploadedBy    uuid.UUID        `json:"uploaded_by"`
	UploadedAt    time.Time        `json:"uploaded_at"`
	VerifiedAt    *time.Time       `json:"verified_at,omitempty"`
	LatestVersion *DocumentVersionResponse `json:"latest_version,omitempty"`
}

type DocumentVersionResponse struct {
	VersionID     uuid.UUID `json:"version_id"`
	VersionNumber int       `json:"version_number"`
	ObjectKey     string    `json:"object_key"`
	Checksum      string    `json:"checksum"`
	SizeBytes     int64     `json:"size_bytes"`
	ContentType   string    `json:"content_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type UploadResult struct {
	Document  DocumentResponse   `json:"document"`
	OCRResult *ocrDTO.OCRResult  `json:"ocr_result,omitempty"`
}

func FromDocumentModel(doc m.DocumentModel) DocumentResponse {
	return DocumentResponse{
		DocumentID:    doc.DocumentID,
		ApplicationID: doc.DocumentApplicationID,
		TypeID:        doc.DocumentTypeID,
		Status:        doc.DocumentStatus,
		OCRStatus:     doc.DocumentOCRStatus,
		UploadedBy:    doc.DocumentUploadedBy,
		UploadedAt:    doc.DocumentUploadedAt,
		VerifiedAt:    doc.DocumentVerifiedAt,
	}
}

func FromVersionModel(v m.DocumentVersionModel) DocumentVersionResponse {
	return DocumentVersionResponse{
		VersionID:     v.DocumentVersionID,
		VersionNumber: v.DocumentVersionNumber,
		ObjectKey:     v.DocumentVersionObjectKey,
		Checksum:      v.DocumentVersionChecksum,
		SizeBytes:     v.DocumentVersionSizeBytes,
		ContentType:   v.DocumentVersionContentType,
		CreatedAt:     v.DocumentVersionCreatedAt,
	}
}
