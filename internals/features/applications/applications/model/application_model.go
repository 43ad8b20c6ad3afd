// internals/features/applications/applications/model/application_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NOTE:
// - the 12 step columns are JSONB; each one is written only by its own
//   step-update operation (last-write-wins per column, never cross-column)
// - application_student_id stays NULL until enrollment links the student
// - agents may write step columns only while DRAFT; staff corrections are
//   allowed in any non-terminal stage (see helpers/auth)
type ApplicationModel struct {
	ApplicationID    uuid.UUID `gorm:"column:application_id;type:uuid;default:gen_random_uuid();primaryKey" json:"application_id"`
	ApplicationRTOID uuid.UUID `gorm:"column:application_rto_id;type:uuid;not null;index" json:"application_rto_id"`

	ApplicationAgentID          uuid.UUID  `gorm:"column:application_agent_id;type:uuid;not null;index" json:"application_agent_id"`
	ApplicationStudentID        *uuid.UUID `gorm:"column:application_student_id;type:uuid;index" json:"application_student_id,omitempty"`
	ApplicationAssignedStaffID  *uuid.UUID `gorm:"column:application_assigned_staff_id;type:uuid;index" json:"application_assigned_staff_id,omitempty"`
	ApplicationCourseOfferingID uuid.UUID  `gorm:"column:application_course_offering_id;type:uuid;not null;index" json:"application_course_offering_id"`

	ApplicationCurrentStage Stage `gorm:"column:application_current_stage;type:varchar(30);not null;default:'DRAFT';index" json:"application_current_stage"`

	// Step data (JSONB, one column per form step)
	ApplicationPersonalDetails    datatypes.JSON `gorm:"column:application_personal_details;type:jsonb" json:"application_personal_details,omitempty"`
	ApplicationEmergencyContacts  datatypes.JSON `gorm:"column:application_emergency_contacts;type:jsonb" json:"application_emergency_contacts,omitempty"`
	ApplicationHealthCover        datatypes.JSON `gorm:"column:application_health_cover;type:jsonb" json:"application_health_cover,omitempty"`
	ApplicationLanguageCultural   datatypes.JSON `gorm:"column:application_language_cultural;type:jsonb" json:"application_language_cultural,omitempty"`
	ApplicationDisabilitySupport  datatypes.JSON `gorm:"column:application_disability_support;type:jsonb" json:"application_disability_support,omitempty"`
	ApplicationSchoolingHistory   datatypes.JSON `gorm:"column:application_schooling_history;type:jsonb" json:"application_schooling_history,omitempty"`
	ApplicationQualifications     datatypes.JSON `gorm:"column:application_qualifications;type:jsonb" json:"application_qualifications,omitempty"`
	ApplicationEmploymentHistory  datatypes.JSON `gorm:"column:application_employment_history;type:jsonb" json:"application_employment_history,omitempty"`
	ApplicationUSI                datatypes.JSON `gorm:"column:application_usi;type:jsonb" json:"application_usi,omitempty"`
	ApplicationAdditionalServices datatypes.JSON `gorm:"column:application_additional_services;type:jsonb" json:"application_additional_services,omitempty"`
	ApplicationSurvey             datatypes.JSON `gorm:"column:application_survey;type:jsonb" json:"application_survey,omitempty"`
	ApplicationDeclarations       datatypes.JSON `gorm:"column:application_declarations;type:jsonb" json:"application_declarations,omitempty"`

	// Free-form payloads outside the step set
	ApplicationEnrollmentData datatypes.JSON `gorm:"column:application_enrollment_data;type:jsonb" json:"application_enrollment_data,omitempty"`
	ApplicationGSAssessment   datatypes.JSON `gorm:"column:application_gs_assessment;type:jsonb" json:"application_gs_assessment,omitempty"`

	// Progress bookkeeping, not business data
	ApplicationFormMetadata datatypes.JSON `gorm:"column:application_form_metadata;type:jsonb" json:"application_form_metadata,omitempty"`

	ApplicationSubmittedAt *time.Time `gorm:"column:application_submitted_at" json:"application_submitted_at,omitempty"`
	ApplicationDecisionAt  *time.Time `gorm:"column:application_decision_at" json:"application_decision_at,omitempty"`

	ApplicationCreatedAt time.Time      `gorm:"column:application_created_at;not null;autoCreateTime" json:"application_created_at"`
	ApplicationUpdatedAt time.Time      `gorm:"column:application_updated_at;not null;autoUpdateTime" json:"application_updated_at"`
	ApplicationDeletedAt gorm.DeletedAt `gorm:"column:application_deleted_at;index" json:"application_deleted_at,omitempty"`
}

func (ApplicationModel) TableName() string { return "applications" }

// IsDraft reports whether step mutation is still allowed.
func (m *ApplicationModel) IsDraft() bool {
	return m.ApplicationCurrentStage == StageDraft
}
