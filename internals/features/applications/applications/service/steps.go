// internals/features/applications/applications/service/steps.go
package service

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"enrollku_backend/internals/features/applications/applications/dto"
	m "enrollku_backend/internals/features/applications/applications/model"
)

var validate = validator.New()

// StepDef binds a form-step name to its column and payload schema.
type StepDef struct {
	Name   string
	Column string
	// Parse unmarshals + validates the raw payload; returns a 422 fiber
	// error naming the violated rule.
	Parse func(raw []byte) error
	// Assign writes the raw payload into the step's dedicated column.
	Assign func(app *m.ApplicationModel, raw datatypes.JSON)
}

// FormSteps is the canonical ordered list of the 12 form steps.
var FormSteps = []StepDef{
	{
		Name:   "personal_details",
		Column: "application_personal_details",
		Parse:  parseInto[dto.PersonalDetailsPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationPersonalDetails = r },
	},
	{
		Name:   "emergency_contacts",
		Column: "application_emergency_contacts",
		Parse:  parseEmergencyContacts,
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationEmergencyContacts = r },
	},
	{
		Name:   "health_cover",
		Column: "application_health_cover",
		Parse:  parseInto[dto.HealthCoverPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationHealthCover = r },
	},
	{
		Name:   "language_cultural",
		Column: "application_language_cultural",
		Parse:  parseInto[dto.LanguageCulturalPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationLanguageCultural = r },
	},
	{
		Name:   "disability_support",
		Column: "application_disability_support",
		Parse:  parseInto[dto.DisabilitySupportPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationDisabilitySupport = r },
	},
	{
		Name:   "schooling_history",
		Column: "application_schooling_history",
		Parse:  parseInto[dto.SchoolingHistoryPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationSchoolingHistory = r },
	},
	{
		Name:   "qualifications",
		Column: "application_qualifications",
		Parse:  parseInto[dto.QualificationsPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationQualifications = r },
	},
	{
		Name:   "employment_history",
		Column: "application_employment_history",
		Parse:  parseInto[dto.EmploymentHistoryPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationEmploymentHistory = r },
	},
	{
		Name:   "usi",
		Column: "application_usi",
		Parse:  parseInto[dto.USIPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationUSI = r },
	},
	{
		Name:   "additional_services",
		Column: "application_additional_services",
		Parse:  parseInto[dto.AdditionalServicesPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationAdditionalServices = r },
	},
	{
		Name:   "survey",
		Column: "application_survey",
		Parse:  parseInto[dto.SurveyPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationSurvey = r },
	},
	{
		Name:   "declarations",
		Column: "application_declarations",
		Parse:  parseInto[dto.DeclarationsPayload](),
		Assign: func(a *m.ApplicationModel, r datatypes.JSON) { a.ApplicationDeclarations = r },
	},
}

// FindStep resolves a step by name.
func FindStep(name string) (*StepDef, error) {
	for i := range FormSteps {
		if FormSteps[i].Name == name {
			return &FormSteps[i], nil
		}
	}
	return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown form step %q", name))
}

// StepNames returns the canonical step names in form order.
func StepNames() []string {
	names := make([]string, len(FormSteps))
	for i, s := range FormSteps {
		names[i] = s.Name
	}
	return names
}

func parseInto[T any]() func(raw []byte) error {
	return func(raw []byte) error {
		var payload T
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed step payload")
		}
		if err := validate.Struct(payload); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return nil
	}
}

// emergency contacts carry an extra invariant beyond struct tags: at least
// one contact must be flagged primary.
func parseEmergencyContacts(raw []byte) error {
	var payload dto.EmergencyContactsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed step payload")
	}
	if err := validate.Struct(payload); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	if !payload.HasPrimary() {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			"emergency contacts must include at least one contact flagged primary")
	}
	return nil
}
