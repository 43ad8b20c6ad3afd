// internals/features/documents/documents/service/upload_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "enrollku_backend/internals/features/applications/applications/model"
	"enrollku_backend/internals/features/documents/documents/dto"
	m "enrollku_backend/internals/features/documents/documents/model"
	ocrService "enrollku_backend/internals/features/documents/ocr/service"
	"enrollku_backend/internals/helpers/auth"
	"enrollku_backend/internals/helpers/storage"
)

// UploadService handles document intake: store the file, append an
// immutable version, pull verification back to PENDING, run OCR inline.
type UploadService struct {
	DB      *gorm.DB
	Storage *storage.OSSService
	OCR     *ocrService.OCRService
}

func NewUploadService(db *gorm.DB, store *storage.OSSService, ocr *ocrService.OCRService) *UploadService {
	return &UploadService{DB: db, Storage: store, OCR: ocr}
}

// Upload stores one file against the application's slot for the given
// type. A fresh upload always creates a new version and resets the slot to
// PENDING — earlier verification decisions apply to earlier versions only.
func (s *UploadService) Upload(ctx context.Context, applicationID uuid.UUID, typeCode string, fh *multipart.FileHeader, actor auth.Actor) (*dto.UploadResult, error) {
	var app appModel.ApplicationModel
	if err := s.DB.First(&app, "application_id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load application")
	}
	if !actor.CanUpload(&app) {
		return nil, fiber.NewError(fiber.StatusForbidden, "actor may not upload documents for this application")
	}

	var docType m.DocumentTypeModel
	if err := s.DB.First(&docType,
		"document_type_rto_id = ? AND document_type_code = ?", app.ApplicationRTOID, typeCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown document type %q", typeCode))
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load document type")
	}

	// storage I/O happens outside the DB transaction
	stored, err := s.Storage.UploadDocument(ctx, fh, applicationID, docType.DocumentTypeCode)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ocrStatus := m.OCRStatusPending
	if docType.DocumentTypeOCRModelRef == nil {
		ocrStatus = m.OCRStatusNotRequired
	}

	var (
		doc     m.DocumentModel
		version m.DocumentVersionModel
	)
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// one logical slot per application/type; DELETED slots stay dead
		err := tx.Where("document_application_id = ? AND document_type_id = ? AND document_status <> ?",
			applicationID, docType.DocumentTypeID, m.DocumentStatusDeleted).
			First(&doc).Error
		now := time.Now()
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			doc = m.DocumentModel{
				DocumentApplicationID: applicationID,
				DocumentTypeID:        docType.DocumentTypeID,
				DocumentStatus:        m.DocumentStatusPending,
				DocumentOCRStatus:     ocrStatus,
				DocumentUploadedBy:    actor.ID(),
				DocumentUploadedAt:    now,
			}
			if err := tx.Create(&doc).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to create document")
			}
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load document slot")
		default:
			// re-upload resets the slot toward PENDING
			if err := tx.Model(&doc).Updates(map[string]any{
				"document_status":      m.DocumentStatusPending,
				"document_ocr_status":  ocrStatus,
				"document_verified_by": nil,
				"document_verified_at": nil,
				"document_uploaded_by": actor.ID(),
				"document_uploaded_at": now,
			}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to reset document slot")
			}
			doc.DocumentStatus = m.DocumentStatusPending
			doc.DocumentOCRStatus = ocrStatus
		}

		var maxVersion int
		if err := tx.Model(&m.DocumentVersionModel{}).
			Where("document_version_document_id = ?", doc.DocumentID).
			Select("COALESCE(MAX(document_version_number), 0)").
			Scan(&maxVersion).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to number version")
		}

		version = m.DocumentVersionModel{
			DocumentVersionDocumentID:  doc.DocumentID,
			DocumentVersionNumber:      maxVersion + 1,
			DocumentVersionObjectKey:   stored.Key,
			DocumentVersionChecksum:    stored.Checksum,
			DocumentVersionSizeBytes:   stored.SizeBytes,
			DocumentVersionContentType: stored.ContentType,
			DocumentVersionUploadedBy:  actor.ID(),
		}
		if err := tx.Create(&version).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to append document version")
		}

		return tx.Create(&m.DocumentTimelineModel{
			DocumentTimelineDocumentID: doc.DocumentID,
			DocumentTimelineEvent:      m.TimelineEventUploaded,
			DocumentTimelineActor:      actor.ID(),
		}).Error
	})
	if txErr != nil {
		// best effort: do not leave an orphan object behind
		_ = s.Storage.DeleteObject(stored.Key)
		return nil, txErr
	}

	result := &dto.UploadResult{Document: dto.FromDocumentModel(doc)}
	result.Document.TypeCode = docType.DocumentTypeCode
	result.Document.TypeName = docType.DocumentTypeName
	v := dto.FromVersionModel(version)
	result.Document.LatestVersion = &v

	// OCR runs inline with upload; a failure degrades this document only
	if ocrStatus == m.OCRStatusPending {
		result.OCRResult = s.OCR.Process(ctx, doc.DocumentID, version.DocumentVersionID,
			docType.DocumentTypeCode, docType.DocumentTypeOCRModelRef, actor.ID())
		if result.OCRResult != nil {
			result.Document.OCRStatus = m.OCRStatusCompleted
		} else {
			result.Document.OCRStatus = m.OCRStatusFailed
		}
	}
	return result, nil
}

// ListByApplication returns the (non-deleted) document slots with their
// latest version, for the staff review screen.
func (s *UploadService) ListByApplication(applicationID uuid.UUID, actor auth.Actor) ([]dto.DocumentResponse, error) {
	var app appModel.ApplicationModel
	if err := s.DB.First(&app, "application_id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load application")
	}
	if !actor.CanView(&app) {
		return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
	}

	var docs []m.DocumentModel
	if err := s.DB.Where("document_application_id = ? AND document_status <> ?",
		applicationID, m.DocumentStatusDeleted).
		Order("document_created_at").
		Find(&docs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list documents")
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp := dto.FromDocumentModel(doc)

		var docType m.DocumentTypeModel
		if err := s.DB.First(&docType, "document_type_id = ?", doc.DocumentTypeID).Error; err == nil {
			resp.TypeCode = docType.DocumentTypeCode
			resp.TypeName = docType.DocumentTypeName
		}

		var version m.DocumentVersionModel
		if err := s.DB.Where("document_version_document_id = ?", doc.DocumentID).
			Order("document_version_number DESC").
			First(&version).Error; err == nil {
			v := dto.FromVersionModel(version)
			resp.LatestVersion = &v
		}
		out = append(out, resp)
	}
	return out, nil
}
