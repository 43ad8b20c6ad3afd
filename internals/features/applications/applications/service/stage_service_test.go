package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "enrollku_backend/internals/features/applications/applications/model"
)

func TestValidateTransitionLegalMoves(t *testing.T) {
	assert.NoError(t, ValidateTransition(m.StageDraft, m.StageSubmitted))
	assert.NoError(t, ValidateTransition(m.StageSubmitted, m.StageStaffReview))
	assert.NoError(t, ValidateTransition(m.StageStaffReview, m.StageOfferGenerated))
	assert.NoError(t, ValidateTransition(m.StageOfferAccepted, m.StageEnrolled))
}

func TestValidateTransitionErrorNamesAllowedStages(t *testing.T) {
	err := ValidateTransition(m.StageStaffReview, m.StageEnrolled)
	require.Error(t, err)

	ite, ok := err.(*InvalidTransitionError)
	require.True(t, ok)
	assert.Equal(t, m.StageStaffReview, ite.From)
	assert.Equal(t, m.StageEnrolled, ite.To)

	msg := err.Error()
	assert.Contains(t, msg, "STAFF_REVIEW")
	assert.Contains(t, msg, "ENROLLED")
	// the full allowed set, so the caller needs no second round trip
	assert.Contains(t, msg, "AWAITING_DOCUMENTS")
	assert.Contains(t, msg, "GS_ASSESSMENT")
	assert.Contains(t, msg, "OFFER_GENERATED")
	assert.Contains(t, msg, "REJECTED")
}

func TestValidateTransitionTerminalMessage(t *testing.T) {
	err := ValidateTransition(m.StageRejected, m.StageSubmitted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal stage REJECTED")
}

func TestValidateTransitionUnknownTarget(t *testing.T) {
	err := ValidateTransition(m.StageDraft, m.Stage("APPROVED"))
	require.Error(t, err)
}

func TestToFiberErrorMapsInvalidTransitionTo422(t *testing.T) {
	err := ToFiberError(ValidateTransition(m.StageDraft, m.StageEnrolled))
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestToFiberErrorPassesThroughOtherErrors(t *testing.T) {
	original := fiber.NewError(fiber.StatusNotFound, "application not found")
	assert.Equal(t, original, ToFiberError(original))
}
