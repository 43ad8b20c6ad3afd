// internals/features/applications/applications/dto/step_payloads.go
package dto

/* =========================================================
   Typed step payloads — one struct per form step. Parsing
   into these at the boundary is what keeps the JSONB
   columns from degenerating into an open bag of fields.
   ========================================================= */

type PersonalDetailsPayload struct {
	Title          string `json:"title" validate:"omitempty,max=10"`
	GivenName      string `json:"given_name" validate:"required,max=100"`
	MiddleName     string `json:"middle_name" validate:"omitempty,max=100"`
	FamilyName     string `json:"family_name" validate:"required,max=100"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female other"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	PassportNumber string `json:"passport_number" validate:"omitempty,max=20"`
	Nationality    string `json:"nationality" validate:"omitempty,max=60"`
	AddressLine1   string `json:"address_line1" validate:"omitempty,max=200"`
	AddressLine2   string `json:"address_line2" validate:"omitempty,max=200"`
	Suburb         string `json:"suburb" validate:"omitempty,max=100"`
	State          string `json:"state" validate:"omitempty,max=100"`
	Postcode       string `json:"postcode" validate:"omitempty,max=10"`
	Country        string `json:"country" validate:"omitempty,max=60"`
}

type EmergencyContact struct {
	Name         string `json:"name" validate:"required,max=120"`
	Relationship string `json:"relationship" validate:"required,max=60"`
	Phone        string `json:"phone" validate:"required,max=30"`
	Email        string `json:"email" validate:"omitempty,email"`
	IsPrimary    bool   `json:"is_primary"`
}

type EmergencyContactsPayload struct {
	Contacts []EmergencyContact `json:"contacts" validate:"required,min=1,dive"`
}

// HasPrimary reports whether at least one contact is flagged primary.
func (p EmergencyContactsPayload) HasPrimary() bool {
	for _, c := range p.Contacts {
		if c.IsPrimary {
			return true
		}
	}
	return false
}

type HealthCoverPayload struct {
	OSHCRequired bool   `json:"oshc_required"`
	Provider     string `json:"provider" validate:"omitempty,max=120"`
	PolicyNumber string `json:"policy_number" validate:"omitempty,max=60"`
	CoverType    string `json:"cover_type" validate:"omitempty,oneof=single couple family"`
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type LanguageCulturalPayload struct {
	CountryOfBirth       string `json:"country_of_birth" validate:"omitempty,max=60"`
	MainLanguage         string `json:"main_language" validate:"omitempty,max=60"`
	EnglishProficiency   string `json:"english_proficiency" validate:"omitempty,oneof=very_well well not_well not_at_all"`
	IndigenousStatus     string `json:"indigenous_status" validate:"omitempty,max=60"`
	InterpreterRequired  bool   `json:"interpreter_required"`
	EnglishTestType      string `json:"english_test_type" validate:"omitempty,max=30"`
	EnglishTestScore     string `json:"english_test_score" validate:"omitempty,max=20"`
	EnglishTestDate      string `json:"english_test_date" validate:"omitempty,datetime=2006-01-02"`
}

type DisabilitySupportPayload struct {
	HasDisability   bool     `json:"has_disability"`
	Conditions      []string `json:"conditions" validate:"omitempty,dive,max=100"`
	SupportRequired string   `json:"support_required" validate:"omitempty,max=500"`
	ConsentToShare  bool     `json:"consent_to_share"`
}

type SchoolingHistoryPayload struct {
	HighestSchoolLevel string `json:"highest_school_level" validate:"required,max=60"`
	YearCompleted      int    `json:"year_completed" validate:"omitempty,min=1950,max=2100"`
	StillAtSchool      bool   `json:"still_at_school"`
	SchoolName         string `json:"school_name" validate:"omitempty,max=200"`
	SchoolCountry      string `json:"school_country" validate:"omitempty,max=60"`
}

type QualificationEntry struct {
	Level       string `json:"level" validate:"required,max=100"`
	Name        string `json:"name" validate:"required,max=200"`
	Institution string `json:"institution" validate:"omitempty,max=200"`
	YearAwarded int    `json:"year_awarded" validate:"omitempty,min=1950,max=2100"`
	Country     string `json:"country" validate:"omitempty,max=60"`
}

type QualificationsPayload struct {
	HasPriorQualifications bool                 `json:"has_prior_qualifications"`
	Entries                []QualificationEntry `json:"entries" validate:"omitempty,dive"`
}

type EmploymentEntry struct {
	Employer  string `json:"employer" validate:"required,max=200"`
	Position  string `json:"position" validate:"omitempty,max=120"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Current   bool   `json:"current"`
}

type EmploymentHistoryPayload struct {
	EmploymentStatus string            `json:"employment_status" validate:"omitempty,max=60"`
	Entries          []EmploymentEntry `json:"entries" validate:"omitempty,dive"`
}

type USIPayload struct {
	USI                string `json:"usi" validate:"omitempty,len=10,alphanum"`
	NoUSIReason        string `json:"no_usi_reason" validate:"omitempty,max=200"`
	PermissionToVerify bool   `json:"permission_to_verify"`
}

type AdditionalServicesPayload struct {
	AirportPickup      bool   `json:"airport_pickup"`
	AccommodationHelp  bool   `json:"accommodation_help"`
	GuardianshipNeeded bool   `json:"guardianship_needed"`
	Notes              string `json:"notes" validate:"omitempty,max=500"`
}

type SurveyPayload struct {
	HowDidYouHear string            `json:"how_did_you_hear" validate:"required,max=120"`
	Responses     map[string]string `json:"responses" validate:"omitempty,dive,max=500"`
}

type DeclarationsPayload struct {
	AcceptedTerms      bool   `json:"accepted_terms" validate:"required,eq=true"`
	PrivacyConsent     bool   `json:"privacy_consent" validate:"required,eq=true"`
	InformationCorrect bool   `json:"information_correct" validate:"required,eq=true"`
	SignatureName      string `json:"signature_name" validate:"required,max=200"`
	SignedAt           string `json:"signed_at" validate:"omitempty,datetime=2006-01-02"`
}
