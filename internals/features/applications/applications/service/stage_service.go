// internals/features/applications/applications/service/stage_service.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"enrollku_backend/internals/features/applications/applications/dto"
	m "enrollku_backend/internals/features/applications/applications/model"
)

// InvalidTransitionError reports a stage move outside the transition table.
// The message names the current stage and the permitted next stages — that
// wording is part of the API contract, callers act on it without another
// round trip.
type InvalidTransitionError struct {
	From    m.Stage
	To      m.Stage
	Allowed []m.Stage
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot move to %s: application is in terminal stage %s", e.To, e.From)
	}
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("cannot move to %s: application is in stage %s, allowed next stages: %s",
		e.To, e.From, strings.Join(names, ", "))
}

// ValidateTransition checks from → to against the table without touching
// any state.
func ValidateTransition(from, to m.Stage) error {
	if !to.Valid() {
		return &InvalidTransitionError{From: from, To: to, Allowed: from.AllowedNext()}
	}
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{From: from, To: to, Allowed: from.AllowedNext()}
	}
	return nil
}

// StageService executes stage changes. Every successful call mutates the
// stage column and appends exactly one history row inside one transaction;
// a failed call leaves both untouched.
type StageService struct {
	DB *gorm.DB
}

func NewStageService(db *gorm.DB) *StageService {
	return &StageService{DB: db}
}

// Transition runs the stage change inside the caller's transaction so the
// caller can bundle it with its own writes (assignment, gate checks).
func (s *StageService) Transition(tx *gorm.DB, app *m.ApplicationModel, to m.Stage, changedBy uuid.UUID, notes *string) (*m.ApplicationStageHistoryModel, error) {
	from := app.ApplicationCurrentStage
	if err := ValidateTransition(from, to); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{
		"application_current_stage": to,
		"application_updated_at":    now,
	}
	if from == m.StageDraft && to == m.StageSubmitted {
		updates["application_submitted_at"] = now
	}
	if to.IsDecision() {
		updates["application_decision_at"] = now
	}

	if err := tx.Model(app).Updates(updates).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to update application stage")
	}

	history := m.ApplicationStageHistoryModel{
		ApplicationStageHistoryApplicationID: app.ApplicationID,
		ApplicationStageHistoryFromStage:     from,
		ApplicationStageHistoryToStage:       to,
		ApplicationStageHistoryNotes:         notes,
		ApplicationStageHistoryChangedBy:     changedBy,
	}
	if err := tx.Create(&history).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to append stage history")
	}

	app.ApplicationCurrentStage = to
	app.ApplicationUpdatedAt = now
	if from == m.StageDraft && to == m.StageSubmitted {
		app.ApplicationSubmittedAt = &now
	}
	if to.IsDecision() {
		app.ApplicationDecisionAt = &now
	}
	return &history, nil
}

// TransitionByID is the standalone operation: load, validate, execute — one
// transaction end to end.
func (s *StageService) TransitionByID(applicationID uuid.UUID, to m.Stage, changedBy uuid.UUID, notes *string) (*dto.StageTransitionResult, error) {
	var result *dto.StageTransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var app m.ApplicationModel
		if err := tx.First(&app, "application_id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "application not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load application")
		}
		if _, err := s.Transition(tx, &app, to, changedBy, notes); err != nil {
			return err
		}
		result = &dto.StageTransitionResult{
			ApplicationID: app.ApplicationID,
			CurrentStage:  app.ApplicationCurrentStage,
			Message:       fmt.Sprintf("application moved to %s", to),
			UpdatedAt:     app.ApplicationUpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToFiberError maps typed stage errors onto the HTTP taxonomy.
func ToFiberError(err error) error {
	var ite *InvalidTransitionError
	if errors.As(err, &ite) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, ite.Error())
	}
	return err
}
