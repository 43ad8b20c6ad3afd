// internals/features/applications/review/dto/review_dto.go
package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// NotesRequest carries the optional reviewer note most workflow actions
// accept.
type NotesRequest struct {
	Notes *string `json:"notes"`
}

type AssignRequest struct {
	StaffID uuid.UUID `json:"staff_id" validate:"required"`
}

// GSAssessmentRequest records a Genuine Student interview outcome. The
// assessment body is free-form JSON owned by the RTO's template.
type GSAssessmentRequest struct {
	Assessment json.RawMessage `json:"assessment" validate:"required"`
	Notes      *string         `json:"notes"`
}

type AcceptOfferRequest struct {
	PayerName  string  `json:"payer_name" validate:"required"`
	PayerEmail string  `json:"payer_email" validate:"required,email"`
	Notes      *string `json:"notes"`
}

type EnrollRequest struct {
	StudentID      uuid.UUID       `json:"student_id" validate:"required"`
	EnrollmentData json.RawMessage `json:"enrollment_data"`
	Notes          *string         `json:"notes"`
}
