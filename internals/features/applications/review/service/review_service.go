// internals/features/applications/review/service/review_service.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appDTO "enrollku_backend/internals/features/applications/applications/dto"
	appModel "enrollku_backend/internals/features/applications/applications/model"
	appService "enrollku_backend/internals/features/applications/applications/service"
	payService "enrollku_backend/internals/features/applications/payments/service"
	docModel "enrollku_backend/internals/features/documents/documents/model"
	docService "enrollku_backend/internals/features/documents/documents/service"
	"enrollku_backend/internals/helpers/auth"
)

// ReviewService is the staff workflow on top of the transition engine:
// assignment, document chasing, GS assessment, approval, enrollment.
type ReviewService struct {
	DB       *gorm.DB
	Stages   *appService.StageService
	Docs     *docService.VerificationService
	Payments *payService.PaymentService
}

func NewReviewService(db *gorm.DB, stages *appService.StageService, docs *docService.VerificationService, payments *payService.PaymentService) *ReviewService {
	return &ReviewService{DB: db, Stages: stages, Docs: docs, Payments: payments}
}

func (s *ReviewService) load(tx *gorm.DB, applicationID uuid.UUID, actor auth.Actor) (*appModel.ApplicationModel, error) {
	var app appModel.ApplicationModel
	if err := tx.First(&app, "application_id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load application")
	}
	if !actor.CanView(&app) {
		return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
	}
	return &app, nil
}

func result(app *appModel.ApplicationModel, message string) *appDTO.StageTransitionResult {
	return &appDTO.StageTransitionResult{
		ApplicationID: app.ApplicationID,
		CurrentStage:  app.ApplicationCurrentStage,
		Message:       message,
		UpdatedAt:     app.ApplicationUpdatedAt,
	}
}

// StartReview pulls a submitted application into review and self-assigns
// the reviewer when the slot is empty.
func (s *ReviewService) StartReview(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if app.ApplicationAssignedStaffID == nil {
			staffID := actor.ID()
			if err := tx.Model(app).Update("application_assigned_staff_id", staffID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to assign reviewer")
			}
			app.ApplicationAssignedStaffID = &staffID
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageStaffReview, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "application moved to staff review")
		return nil
	})
	return out, err
}

// Assign hands the application to a named staff member.
func (s *ReviewService) Assign(applicationID, staffID uuid.UUID, actor auth.Actor) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if app.ApplicationCurrentStage.IsTerminal() {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("cannot assign staff: application is in terminal stage %s", app.ApplicationCurrentStage))
		}
		if err := tx.Model(app).Update("application_assigned_staff_id", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to assign staff")
		}
		out = result(app, "application assigned")
		return nil
	})
	return out, err
}

// RequestDocuments moves to AWAITING_DOCUMENTS, naming the mandatory
// types still missing so the agent knows what to chase.
func (s *ReviewService) RequestDocuments(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}

		missing, err := s.missingMandatoryTypes(tx, app)
		if err != nil {
			return err
		}
		note := "documents requested"
		if len(missing) > 0 {
			note = "missing mandatory documents: " + strings.Join(missing, ", ")
		}
		if notes != nil && *notes != "" {
			note = note + " — " + *notes
		}

		if _, err := s.Stages.Transition(tx, app, appModel.StageAwaitingDocuments, actor.ID(), &note); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, note)
		return nil
	})
	return out, err
}

// MarkDocumentsReceived returns a chased application to review.
func (s *ReviewService) MarkDocumentsReceived(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageStaffReview, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "application returned to staff review")
		return nil
	})
	return out, err
}

// StartGSAssessment opens the Genuine Student interview stage.
func (s *ReviewService) StartGSAssessment(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageGSAssessment, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "GS assessment started")
		return nil
	})
	return out, err
}

// RecordGSAssessment saves the interview outcome and returns the
// application to review in the same transaction.
func (s *ReviewService) RecordGSAssessment(applicationID uuid.UUID, assessment []byte, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if err := tx.Model(app).Update("application_gs_assessment", datatypes.JSON(assessment)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save GS assessment")
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageStaffReview, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "GS assessment recorded")
		return nil
	})
	return out, err
}

// Approve generates the offer. Gate: every attached document must be
// VERIFIED; the error names the true count plus a sample of offenders.
func (s *ReviewService) Approve(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if err := s.Docs.RequireAllVerified(tx, applicationID); err != nil {
			return err
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageOfferGenerated, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "offer generated")
		return nil
	})
	return out, err
}

// Reject is valid from several stages; the transition table decides.
func (s *ReviewService) Reject(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageRejected, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "application rejected")
		return nil
	})
	return out, err
}

// AcceptOffer records the student's acceptance and raises the enrollment
// fee in the same transaction.
func (s *ReviewService) AcceptOffer(applicationID uuid.UUID, actor auth.Actor, payerName, payerEmail string, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageOfferAccepted, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		payment, err := s.Payments.CreateEnrollmentFee(tx, applicationID, payerName, payerEmail)
		if err != nil {
			return err
		}
		msg := "offer accepted, enrollment fee raised"
		if payment.PaymentSnapToken != nil {
			msg = fmt.Sprintf("offer accepted, enrollment fee raised (order %s)", payment.PaymentOrderID)
		}
		out = result(app, msg)
		return nil
	})
	return out, err
}

// Enroll completes the pipeline: requires the fee cleared, links the
// student, stamps the enrollment data.
func (s *ReviewService) Enroll(applicationID, studentID uuid.UUID, actor auth.Actor, enrollmentData []byte, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}

		cleared, err := s.Payments.IsCleared(tx, applicationID)
		if err != nil {
			return err
		}
		if !cleared {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"enrollment fee is not settled or waived")
		}

		updates := map[string]any{
			"application_student_id": studentID,
		}
		if len(enrollmentData) > 0 {
			updates["application_enrollment_data"] = datatypes.JSON(enrollmentData)
		}
		if err := tx.Model(app).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to link student")
		}

		if _, err := s.Stages.Transition(tx, app, appModel.StageEnrolled, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "student enrolled")
		return nil
	})
	return out, err
}

// Withdraw closes an offered application on the applicant's request.
func (s *ReviewService) Withdraw(applicationID uuid.UUID, actor auth.Actor, notes *string) (*appDTO.StageTransitionResult, error) {
	var out *appDTO.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.load(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if _, err := s.Stages.Transition(tx, app, appModel.StageWithdrawn, actor.ID(), notes); err != nil {
			return appService.ToFiberError(err)
		}
		out = result(app, "application withdrawn")
		return nil
	})
	return out, err
}

// missingMandatoryTypes lists mandatory type names with no live document
// slot on this application.
func (s *ReviewService) missingMandatoryTypes(tx *gorm.DB, app *appModel.ApplicationModel) ([]string, error) {
	var types []docModel.DocumentTypeModel
	if err := tx.Where("document_type_rto_id = ? AND document_type_is_mandatory", app.ApplicationRTOID).
		Order("document_type_display_order").
		Find(&types).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load document types")
	}

	var docs []docModel.DocumentModel
	if err := tx.Where("document_application_id = ? AND document_status <> ?",
		app.ApplicationID, docModel.DocumentStatusDeleted).
		Find(&docs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load documents")
	}
	present := make(map[uuid.UUID]bool, len(docs))
	for _, d := range docs {
		present[d.DocumentTypeID] = true
	}

	var missing []string
	for _, t := range types {
		if !present[t.DocumentTypeID] {
			missing = append(missing, t.DocumentTypeName)
		}
	}
	return missing, nil
}

// ListQueue returns the staff work queue for one stage, newest submissions
// first.
func (s *ReviewService) ListQueue(rtoID uuid.UUID, stage appModel.Stage, offset, limit int) ([]appModel.ApplicationModel, int64, error) {
	if !stage.Valid() {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown stage %q", stage))
	}
	q := s.DB.Model(&appModel.ApplicationModel{}).
		Where("application_rto_id = ? AND application_current_stage = ?", rtoID, stage)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "failed to count queue")
	}

	var apps []appModel.ApplicationModel
	if err := q.Order("application_submitted_at DESC NULLS LAST").
		Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "failed to list queue")
	}
	return apps, total, nil
}
