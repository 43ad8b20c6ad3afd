package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageTransitionTable(t *testing.T) {
	cases := []struct {
		name string
		from Stage
		to   Stage
		ok   bool
	}{
		{"draft submits", StageDraft, StageSubmitted, true},
		{"draft cannot skip to review", StageDraft, StageStaffReview, false},
		{"draft cannot jump to enrolled", StageDraft, StageEnrolled, false},
		{"submitted to review", StageSubmitted, StageStaffReview, true},
		{"submitted straight to awaiting docs", StageSubmitted, StageAwaitingDocuments, true},
		{"submitted rejected early", StageSubmitted, StageRejected, true},
		{"review requests documents", StageStaffReview, StageAwaitingDocuments, true},
		{"review opens gs assessment", StageStaffReview, StageGSAssessment, true},
		{"review approves", StageStaffReview, StageOfferGenerated, true},
		{"review rejects", StageStaffReview, StageRejected, true},
		{"review cannot enroll directly", StageStaffReview, StageEnrolled, false},
		{"awaiting docs returns to review", StageAwaitingDocuments, StageStaffReview, true},
		{"gs returns to review", StageGSAssessment, StageStaffReview, true},
		{"gs cannot approve directly", StageGSAssessment, StageOfferGenerated, false},
		{"offer accepted", StageOfferGenerated, StageOfferAccepted, true},
		{"offer withdrawn", StageOfferGenerated, StageWithdrawn, true},
		{"offer cannot be rejected", StageOfferGenerated, StageRejected, false},
		{"accepted offer enrolls", StageOfferAccepted, StageEnrolled, true},
		{"enrolled is final", StageEnrolled, StageStaffReview, false},
		{"rejected is final", StageRejected, StageSubmitted, false},
		{"withdrawn is final", StageWithdrawn, StageOfferGenerated, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestTerminalStages(t *testing.T) {
	for _, s := range []Stage{StageEnrolled, StageRejected, StageWithdrawn} {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
		assert.Empty(t, s.AllowedNext())
	}
	for _, s := range []Stage{StageDraft, StageSubmitted, StageStaffReview,
		StageAwaitingDocuments, StageGSAssessment, StageOfferGenerated, StageOfferAccepted} {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestDecisionStages(t *testing.T) {
	decisions := []Stage{StageOfferGenerated, StageEnrolled, StageRejected, StageWithdrawn}
	for _, s := range decisions {
		assert.True(t, s.IsDecision(), "%s should stamp a decision", s)
	}
	for _, s := range []Stage{StageDraft, StageSubmitted, StageStaffReview,
		StageAwaitingDocuments, StageGSAssessment, StageOfferAccepted} {
		assert.False(t, s.IsDecision(), "%s should not stamp a decision", s)
	}
}

func TestStageValid(t *testing.T) {
	assert.True(t, StageDraft.Valid())
	assert.True(t, StageWithdrawn.Valid())
	assert.False(t, Stage("APPROVED").Valid())
	assert.False(t, Stage("").Valid())
}

func TestAllowedNextReturnsCopy(t *testing.T) {
	next := StageSubmitted.AllowedNext()
	next[0] = StageEnrolled
	assert.Equal(t, StageStaffReview, StageSubmitted.AllowedNext()[0])
}
