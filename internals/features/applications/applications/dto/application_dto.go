// internals/features/applications/applications/dto/application_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "enrollku_backend/internals/features/applications/applications/model"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateApplicationRequest struct {
	CourseOfferingID uuid.UUID `json:"application_course_offering_id" validate:"required"`
}

func (r CreateApplicationRequest) ToModel(rtoID, agentID uuid.UUID) m.ApplicationModel {
	return m.ApplicationModel{
		ApplicationRTOID:            rtoID,
		ApplicationAgentID:          agentID,
		ApplicationCourseOfferingID: r.CourseOfferingID,
		ApplicationCurrentStage:     m.StageDraft,
	}
}

/* =========================================================
   RESPONSES
   ========================================================= */

type ApplicationResponse struct {
	ApplicationID    uuid.UUID `json:"application_id"`
	RTOID            uuid.UUID `json:"application_rto_id"`
	AgentID          uuid.UUID `json:"application_agent_id"`
	StudentID        *uuid.UUID `json:"application_student_id,omitempty"`
	AssignedStaffID  *uuid.UUID `json:"application_assigned_staff_id,omitempty"`
	CourseOfferingID uuid.UUID `json:"application_course_offering_id"`

	CurrentStage    m.Stage  `json:"application_current_stage"`
	ProgressPercent int      `json:"application_progress_percent"`
	CompletedSteps  []string `json:"application_completed_steps"`

	StepData     map[string]datatypes.JSON `json:"application_step_data,omitempty"`
	FormMetadata datatypes.JSON            `json:"application_form_metadata,omitempty"`
	GSAssessment datatypes.JSON            `json:"application_gs_assessment,omitempty"`

	SubmittedAt *time.Time `json:"application_submitted_at,omitempty"`
	DecisionAt  *time.Time `json:"application_decision_at,omitempty"`
	CreatedAt   time.Time  `json:"application_created_at"`
	UpdatedAt   time.Time  `json:"application_updated_at"`
}

// StageTransitionResult is the shape handed back after every successful
// stage change.
type StageTransitionResult struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CurrentStage  m.Stage   `json:"current_stage"`
	Message       string    `json:"message"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StageHistoryResponse struct {
	HistoryID uuid.UUID `json:"history_id"`
	FromStage m.Stage   `json:"from_stage"`
	ToStage   m.Stage   `json:"to_stage"`
	Notes     *string   `json:"notes,omitempty"`
	ChangedBy uuid.UUID `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

func FromStageHistoryModel(h m.ApplicationStageHistoryModel) StageHistoryResponse {
	return StageHistoryResponse{
		HistoryID: h.ApplicationStageHistoryID,
		FromStage: h.ApplicationStageHistoryFromStage,
		ToStage:   h.ApplicationStageHistoryToStage,
		Notes:     h.ApplicationStageHistoryNotes,
		ChangedBy: h.ApplicationStageHistoryChangedBy,
		ChangedAt: h.ApplicationStageHistoryCreatedAt,
	}
}

// FromApplicationModel builds the detail response. Progress comes from the
// form metadata, never from a stored column.
func FromApplicationModel(app m.ApplicationModel, completed []string, progress int, includeSteps bool) ApplicationResponse {
	resp := ApplicationResponse{
		ApplicationID:    app.ApplicationID,
		RTOID:            app.ApplicationRTOID,
		AgentID:          app.ApplicationAgentID,
		StudentID:        app.ApplicationStudentID,
		AssignedStaffID:  app.ApplicationAssignedStaffID,
		CourseOfferingID: app.ApplicationCourseOfferingID,
		CurrentStage:     app.ApplicationCurrentStage,
		ProgressPercent:  progress,
		CompletedSteps:   completed,
		FormMetadata:     app.ApplicationFormMetadata,
		GSAssessment:     app.ApplicationGSAssessment,
		SubmittedAt:      app.ApplicationSubmittedAt,
		DecisionAt:       app.ApplicationDecisionAt,
		CreatedAt:        app.ApplicationCreatedAt,
		UpdatedAt:        app.ApplicationUpdatedAt,
	}
	if includeSteps {
		resp.StepData = map[string]datatypes.JSON{
			"personal_details":    app.ApplicationPersonalDetails,
			"emergency_contacts":  app.ApplicationEmergencyContacts,
			"health_cover":        app.ApplicationHealthCover,
			"language_cultural":   app.ApplicationLanguageCultural,
			"disability_support":  app.ApplicationDisabilitySupport,
			"schooling_history":   app.ApplicationSchoolingHistory,
			"qualifications":      app.ApplicationQualifications,
			"employment_history":  app.ApplicationEmploymentHistory,
			"usi":                 app.ApplicationUSI,
			"additional_services": app.ApplicationAdditionalServices,
			"survey":              app.ApplicationSurvey,
			"declarations":        app.ApplicationDeclarations,
		}
		for k, v := range resp.StepData {
			if len(v) == 0 {
				delete(resp.StepData, k)
			}
		}
	}
	return resp
}
