// internals/features/documents/ocr/service/ocr_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	docModel "enrollku_backend/internals/features/documents/documents/model"
	"enrollku_backend/internals/features/documents/ocr/dto"
)

// OCRService drives recognition for one document version: status flips,
// provider call (with explicit fallback), extraction, result persistence.
// Runs inline with upload — no queue — and is re-runnable via Reprocess.
type OCRService struct {
	DB        *gorm.DB
	Providers Providers
}

func NewOCRService(db *gorm.DB, providers Providers) *OCRService {
	return &OCRService{DB: db, Providers: providers}
}

// Process recognizes and extracts one version. An OCR failure marks the
// document FAILED and is swallowed: it is fatal for this document only,
// never for the surrounding request.
func (s *OCRService) Process(ctx context.Context, documentID, versionID uuid.UUID, typeCode string, modelRef *string, actorID uuid.UUID) *dto.OCRResult {
	s.setStatus(documentID, docModel.OCRStatusProcessing, docModel.TimelineEventOCRStarted, actorID, nil)

	var version docModel.DocumentVersionModel
	if err := s.DB.First(&version, "document_version_id = ?", versionID).Error; err != nil {
		log.Printf("[OCR] version %s load failed: %v", versionID, err)
		s.setStatus(documentID, docModel.OCRStatusFailed, docModel.TimelineEventOCRFailed, actorID, strPtr("version not found"))
		return nil
	}

	req := RecognitionRequest{
		ObjectKey: version.DocumentVersionObjectKey,
		TypeCode:  typeCode,
	}
	if modelRef != nil {
		req.ModelRef = *modelRef
	}

	start := time.Now()
	rawText, engine, err := s.recognize(ctx, req)
	if err != nil {
		log.Printf("[OCR] document %s recognition failed: %v", documentID, err)
		s.setStatus(documentID, docModel.OCRStatusFailed, docModel.TimelineEventOCRFailed, actorID, strPtr(err.Error()))
		return nil
	}

	result := ExtractFields(rawText, typeCode)
	result.Engine = engine
	result.ProcessingTimeMS = time.Since(start).Milliseconds()

	payload, err := json.Marshal(result)
	if err != nil {
		s.setStatus(documentID, docModel.OCRStatusFailed, docModel.TimelineEventOCRFailed, actorID, strPtr("result marshal failed"))
		return nil
	}
	if err := s.DB.Model(&docModel.DocumentVersionModel{}).
		Where("document_version_id = ?", versionID).
		Update("document_version_ocr_result", datatypes.JSON(payload)).Error; err != nil {
		log.Printf("[OCR] document %s result save failed: %v", documentID, err)
		s.setStatus(documentID, docModel.OCRStatusFailed, docModel.TimelineEventOCRFailed, actorID, strPtr("result save failed"))
		return nil
	}

	s.setStatus(documentID, docModel.OCRStatusCompleted, docModel.TimelineEventOCRDone, actorID, nil)
	return &result
}

// recognize runs the primary strategy, then the configured fallback. The
// fallback hop is logged and reported through the engine identifier, never
// silent.
func (s *OCRService) recognize(ctx context.Context, req RecognitionRequest) (string, string, error) {
	text, err := s.Providers.Primary.Recognize(ctx, req)
	if err == nil {
		return text, s.Providers.Primary.Name(), nil
	}
	if s.Providers.Fallback == nil {
		return "", "", err
	}
	log.Printf("[OCR] primary provider failed (%v), degrading to %s", err, s.Providers.Fallback.Name())
	text, ferr := s.Providers.Fallback.Recognize(ctx, req)
	if ferr != nil {
		return "", "", &OCRProcessingError{Reason: "fallback exhausted: " + ferr.Error()}
	}
	return text, s.Providers.Fallback.Name() + "-fallback", nil
}

// Reprocess re-runs extraction for the latest version of a document.
func (s *OCRService) Reprocess(ctx context.Context, documentID uuid.UUID, actorID uuid.UUID) (*dto.OCRResult, error) {
	var doc docModel.DocumentModel
	if err := s.DB.First(&doc, "document_id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "document not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load document")
	}
	if doc.DocumentStatus == docModel.DocumentStatusDeleted {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "cannot reprocess a deleted document")
	}

	var version docModel.DocumentVersionModel
	if err := s.DB.Where("document_version_document_id = ?", documentID).
		Order("document_version_number DESC").
		First(&version).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "document has no versions to reprocess")
	}

	var docType docModel.DocumentTypeModel
	typeCode := docModel.DocTypeGeneric
	var modelRef *string
	if err := s.DB.First(&docType, "document_type_id = ?", doc.DocumentTypeID).Error; err == nil {
		typeCode = docType.DocumentTypeCode
		modelRef = docType.DocumentTypeOCRModelRef
	}

	result := s.Process(ctx, documentID, version.DocumentVersionID, typeCode, modelRef, actorID)
	if result == nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "ocr processing failed after fallback")
	}
	return result, nil
}

// Suggestions replays the stored extraction of a document's latest
// version into auto-fill candidates. No provider call happens here.
func (s *OCRService) Suggestions(documentID uuid.UUID) ([]dto.FieldSuggestion, error) {
	var doc docModel.DocumentModel
	if err := s.DB.First(&doc, "document_id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "document not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load document")
	}
	if doc.DocumentOCRStatus != docModel.OCRStatusCompleted {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("document ocr status is %s; suggestions require %s",
				doc.DocumentOCRStatus, docModel.OCRStatusCompleted))
	}

	var version docModel.DocumentVersionModel
	if err := s.DB.Where("document_version_document_id = ? AND document_version_ocr_result IS NOT NULL", documentID).
		Order("document_version_number DESC").
		First(&version).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "document has no extraction result")
	}

	var result dto.OCRResult
	if err := json.Unmarshal(version.DocumentVersionOCRResult, &result); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "stored extraction result is unreadable")
	}

	typeCode := docModel.DocTypeGeneric
	var docType docModel.DocumentTypeModel
	if err := s.DB.First(&docType, "document_type_id = ?", doc.DocumentTypeID).Error; err == nil {
		typeCode = docType.DocumentTypeCode
	}

	return BuildSuggestions(result, typeCode, documentID), nil
}

// SuggestionsForApplication merges suggestions from every OCR-completed
// document on the application, still ordered by confidence.
func (s *OCRService) SuggestionsForApplication(applicationID uuid.UUID) ([]dto.FieldSuggestion, error) {
	var docs []docModel.DocumentModel
	if err := s.DB.Where("document_application_id = ? AND document_ocr_status = ? AND document_status <> ?",
		applicationID, docModel.OCRStatusCompleted, docModel.DocumentStatusDeleted).
		Find(&docs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list documents")
	}

	all := make([]dto.FieldSuggestion, 0)
	for _, doc := range docs {
		sugg, err := s.Suggestions(doc.DocumentID)
		if err != nil {
			// one unreadable result never sinks the whole list
			log.Printf("[OCR] suggestions for document %s skipped: %v", doc.DocumentID, err)
			continue
		}
		all = append(all, sugg...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Confidence != all[j].Confidence {
			return all[i].Confidence > all[j].Confidence
		}
		return all[i].FieldPath < all[j].FieldPath
	})
	return all, nil
}

func (s *OCRService) setStatus(documentID uuid.UUID, status docModel.OCRStatus, event string, actorID uuid.UUID, notes *string) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&docModel.DocumentModel{}).
			Where("document_id = ?", documentID).
			Update("document_ocr_status", status).Error; err != nil {
			return err
		}
		return tx.Create(&docModel.DocumentTimelineModel{
			DocumentTimelineDocumentID: documentID,
			DocumentTimelineEvent:      event,
			DocumentTimelineNotes:      notes,
			DocumentTimelineActor:      actorID,
		}).Error
	})
	if err != nil {
		log.Printf("[OCR] status update for %s failed: %v", documentID, err)
	}
}

func strPtr(s string) *string { return &s }
