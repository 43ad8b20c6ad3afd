// internals/features/documents/documents/service/verification_service.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"enrollku_backend/internals/features/documents/documents/dto"
	m "enrollku_backend/internals/features/documents/documents/model"
)

// VerificationService owns the manual document decision flow and the
// approval gate. Verification never touches OCR status — the two state
// machines are independent by contract.
type VerificationService struct {
	DB *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{DB: db}
}

// Verify applies a staff decision. Each call appends its own timeline
// event; verifying an already-verified document is a fresh event, not an
// error (calls are events, not deduplicated).
func (s *VerificationService) Verify(documentID uuid.UUID, actorID uuid.UUID, decision m.DocumentStatus, notes *string) (*dto.VerificationResult, error) {
	if !decision.ValidDecision() {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("invalid decision %q: must be %s or %s", decision, m.DocumentStatusVerified, m.DocumentStatusRejected))
	}

	var result *dto.VerificationResult
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var doc m.DocumentModel
		if err := tx.First(&doc, "document_id = ?", documentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "document not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load document")
		}
		if doc.DocumentStatus == m.DocumentStatusDeleted {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "cannot verify a deleted document")
		}

		now := time.Now()
		updates := map[string]any{
			"document_status":      decision,
			"document_verified_by": actorID,
			"document_verified_at": now,
		}
		if err := tx.Model(&doc).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update document status")
		}

		event := m.TimelineEventVerified
		if decision == m.DocumentStatusRejected {
			event = m.TimelineEventRejected
		}
		if err := tx.Create(&m.DocumentTimelineModel{
			DocumentTimelineDocumentID: documentID,
			DocumentTimelineEvent:      event,
			DocumentTimelineNotes:      notes,
			DocumentTimelineActor:      actorID,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to append document timeline")
		}

		result = &dto.VerificationResult{
			DocumentID: documentID,
			Status:     decision,
			VerifiedAt: &now,
			Message:    fmt.Sprintf("document marked %s", decision),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// SoftDelete moves a document to DELETED (terminal, reachable from any
// state) and appends the timeline event.
func (s *VerificationService) SoftDelete(documentID uuid.UUID, actorID uuid.UUID, notes *string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&m.DocumentModel{}).
			Where("document_id = ?", documentID).
			Update("document_status", m.DocumentStatusDeleted)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete document")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "document not found")
		}
		if err := tx.Create(&m.DocumentTimelineModel{
			DocumentTimelineDocumentID: documentID,
			DocumentTimelineEvent:      m.TimelineEventDeleted,
			DocumentTimelineNotes:      notes,
			DocumentTimelineActor:      actorID,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to append document timeline")
		}
		return nil
	})
}

/* =========================================================
   Approval gate
   ========================================================= */

// UnverifiedSummary counts attached documents not yet VERIFIED (soft-
// deleted slots excluded) and samples their type names for the error
// message.
func (s *VerificationService) UnverifiedSummary(tx *gorm.DB, applicationID uuid.UUID) (int64, []string, error) {
	base := tx.Model(&m.DocumentModel{}).
		Where("document_application_id = ?", applicationID).
		Where("document_status NOT IN ?", []m.DocumentStatus{m.DocumentStatusVerified, m.DocumentStatusDeleted})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return 0, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to count unverified documents")
	}
	if count == 0 {
		return 0, nil, nil
	}

	var names []string
	if err := tx.Model(&m.DocumentModel{}).
		Select("document_types.document_type_name").
		Joins("JOIN document_types ON document_types.document_type_id = documents.document_type_id").
		Where("documents.document_application_id = ?", applicationID).
		Where("documents.document_status NOT IN ?", []m.DocumentStatus{m.DocumentStatusVerified, m.DocumentStatusDeleted}).
		Order("document_types.document_type_display_order").
		Limit(3).
		Scan(&names).Error; err != nil {
		// the count is what matters; missing names degrade the message only
		names = nil
	}
	return count, names, nil
}

// BuildUnverifiedMessage formats the approval-gate error: the true total
// count plus at most the first 3 offending type names.
func BuildUnverifiedMessage(count int64, sampleNames []string) string {
	msg := fmt.Sprintf("%d document(s) are not verified", count)
	if len(sampleNames) > 0 {
		if len(sampleNames) > 3 {
			sampleNames = sampleNames[:3]
		}
		msg += ": " + strings.Join(sampleNames, ", ")
		if count > int64(len(sampleNames)) {
			msg += ", …"
		}
	}
	return msg
}

// RequireAllVerified is the OFFER_GENERATED gate.
func (s *VerificationService) RequireAllVerified(tx *gorm.DB, applicationID uuid.UUID) error {
	count, names, err := s.UnverifiedSummary(tx, applicationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, BuildUnverifiedMessage(count, names))
	}
	return nil
}
