package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

func TestStepNamesCoverAllTwelve(t *testing.T) {
	names := StepNames()
	assert.Len(t, names, TotalFormSteps)
	assert.Equal(t, []string{
		"personal_details", "emergency_contacts", "health_cover",
		"language_cultural", "disability_support", "schooling_history",
		"qualifications", "employment_history", "usi",
		"additional_services", "survey", "declarations",
	}, names)
}

func TestFindStepUnknownIs404(t *testing.T) {
	_, err := FindStep("visa_details")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	assert.Contains(t, err.Error(), "visa_details")
}

func TestStepParseMalformedJSONIs400(t *testing.T) {
	step, err := FindStep("personal_details")
	require.NoError(t, err)

	err = step.Parse([]byte(`{"given_name": `))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestStepParseValidationFailureIs422(t *testing.T) {
	step, err := FindStep("personal_details")
	require.NoError(t, err)

	// missing family_name, bad email, bad date
	err = step.Parse([]byte(`{"given_name":"Anh","email":"not-an-email","date_of_birth":"12/03/2001"}`))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
}

func TestStepParseValidPersonalDetails(t *testing.T) {
	step, err := FindStep("personal_details")
	require.NoError(t, err)

	err = step.Parse([]byte(`{
		"given_name": "Anh",
		"family_name": "Nguyen",
		"date_of_birth": "2001-03-12",
		"email": "anh.nguyen@example.com"
	}`))
	assert.NoError(t, err)
}

func TestEmergencyContactsRequirePrimary(t *testing.T) {
	step, err := FindStep("emergency_contacts")
	require.NoError(t, err)

	noPrimary := []byte(`{"contacts":[
		{"name":"Bao Nguyen","relationship":"father","phone":"+84 90 123 4567","is_primary":false}
	]}`)
	err = step.Parse(noPrimary)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
	assert.Contains(t, err.Error(), "primary")

	withPrimary := []byte(`{"contacts":[
		{"name":"Bao Nguyen","relationship":"father","phone":"+84 90 123 4567","is_primary":false},
		{"name":"Lan Nguyen","relationship":"mother","phone":"+84 90 765 4321","is_primary":true}
	]}`)
	assert.NoError(t, step.Parse(withPrimary))
}

func TestEmergencyContactsEmptyListFailsValidation(t *testing.T) {
	step, err := FindStep("emergency_contacts")
	require.NoError(t, err)

	err = step.Parse([]byte(`{"contacts":[]}`))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
}

func TestDeclarationsRejectUnacceptedTerms(t *testing.T) {
	step, err := FindStep("declarations")
	require.NoError(t, err)

	err = step.Parse([]byte(`{
		"accepted_terms": false,
		"privacy_consent": true,
		"information_correct": true,
		"signature_name": "Anh Nguyen"
	}`))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
}

func TestUSIPayloadLength(t *testing.T) {
	step, err := FindStep("usi")
	require.NoError(t, err)

	assert.NoError(t, step.Parse([]byte(`{"usi":"ABC1234567","permission_to_verify":true}`)))

	err = step.Parse([]byte(`{"usi":"SHORT"}`))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
}
