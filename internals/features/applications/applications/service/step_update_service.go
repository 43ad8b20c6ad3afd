// internals/features/applications/applications/service/step_update_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"enrollku_backend/internals/features/applications/applications/dto"
	m "enrollku_backend/internals/features/applications/applications/model"
	"enrollku_backend/internals/helpers/auth"
)

// StepUpdateService owns the 12 per-step save operations and submission.
type StepUpdateService struct {
	DB     *gorm.DB
	Stages *StageService
}

func NewStepUpdateService(db *gorm.DB, stages *StageService) *StepUpdateService {
	return &StepUpdateService{DB: db, Stages: stages}
}

// LoadApplication fetches the aggregate and enforces visibility.
func (s *StepUpdateService) LoadApplication(db *gorm.DB, applicationID uuid.UUID, actor auth.Actor) (*m.ApplicationModel, error) {
	var app m.ApplicationModel
	if err := db.First(&app, "application_id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load application")
	}
	if !actor.CanView(&app) {
		// hidden rather than forbidden: do not leak existence across tenants
		return nil, fiber.NewError(fiber.StatusNotFound, "application not found")
	}
	return &app, nil
}

// UpdateStep validates and saves one step payload, then merges the
// progress metadata. Step column + metadata move in one transaction.
func (s *StepUpdateService) UpdateStep(applicationID uuid.UUID, stepName string, raw []byte, actor auth.Actor) (*dto.ApplicationResponse, error) {
	step, err := FindStep(stepName)
	if err != nil {
		return nil, err
	}
	if err := step.Parse(raw); err != nil {
		return nil, err
	}

	var resp *dto.ApplicationResponse
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.LoadApplication(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if !actor.CanEdit(app) {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("actor with role %s may not edit this application in stage %s",
					actor.Role(), app.ApplicationCurrentStage))
		}

		now := time.Now()
		meta, err := MergeFormMetadata(app.ApplicationFormMetadata, step.Name, now)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update form metadata")
		}

		payload := datatypes.JSON(raw)
		updates := map[string]any{
			step.Column:                 payload,
			"application_form_metadata": meta,
			"application_updated_at":    now,
		}
		if err := tx.Model(app).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save step data")
		}

		step.Assign(app, payload)
		app.ApplicationFormMetadata = meta
		app.ApplicationUpdatedAt = now

		r := dto.FromApplicationModel(*app, CompletedSections(meta), ProgressPercent(meta), false)
		resp = &r
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// Submit runs the DRAFT → SUBMITTED transition. Submission requires 100%
// progress by section count; per-field required-ness is not re-validated
// here.
func (s *StepUpdateService) Submit(applicationID uuid.UUID, actor auth.Actor, notes *string) (*dto.StageTransitionResult, error) {
	var result *dto.StageTransitionResult
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := s.LoadApplication(tx, applicationID, actor)
		if err != nil {
			return err
		}
		if !actor.CanEdit(app) {
			return fiber.NewError(fiber.StatusForbidden, "actor may not submit this application")
		}

		progress := ProgressPercent(app.ApplicationFormMetadata)
		if progress < 100 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("application form is %d%% complete; submission requires 100%%", progress))
		}

		if _, err := s.Stages.Transition(tx, app, m.StageSubmitted, actor.ID(), notes); err != nil {
			return ToFiberError(err)
		}
		result = &dto.StageTransitionResult{
			ApplicationID: app.ApplicationID,
			CurrentStage:  app.ApplicationCurrentStage,
			Message:       "application submitted",
			UpdatedAt:     app.ApplicationUpdatedAt,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}
