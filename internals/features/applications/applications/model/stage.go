package model

// Stage is the application's position in the fixed lifecycle pipeline.
type Stage string

const (
	StageDraft             Stage = "DRAFT"
	StageSubmitted         Stage = "SUBMITTED"
	StageStaffReview       Stage = "STAFF_REVIEW"
	StageAwaitingDocuments Stage = "AWAITING_DOCUMENTS"
	StageGSAssessment      Stage = "GS_ASSESSMENT"
	StageOfferGenerated    Stage = "OFFER_GENERATED"
	StageOfferAccepted     Stage = "OFFER_ACCEPTED"
	StageEnrolled          Stage = "ENROLLED"
	StageRejected          Stage = "REJECTED"
	StageWithdrawn         Stage = "WITHDRAWN"
)

// stageTransitions is the single source of truth for which moves are legal.
// Terminal stages (ENROLLED, REJECTED, WITHDRAWN) have no outgoing entries.
var stageTransitions = map[Stage][]Stage{
	StageDraft:             {StageSubmitted},
	StageSubmitted:         {StageStaffReview, StageAwaitingDocuments, StageRejected},
	StageStaffReview:       {StageAwaitingDocuments, StageGSAssessment, StageOfferGenerated, StageRejected},
	StageAwaitingDocuments: {StageStaffReview, StageRejected},
	StageGSAssessment:      {StageStaffReview, StageRejected},
	StageOfferGenerated:    {StageOfferAccepted, StageWithdrawn},
	StageOfferAccepted:     {StageEnrolled},
}

// decisionStages are stamped with a decision timestamp on entry.
var decisionStages = map[Stage]bool{
	StageOfferGenerated: true,
	StageEnrolled:       true,
	StageRejected:       true,
	StageWithdrawn:      true,
}

// AllowedNext returns the permitted target stages, in table order.
func (s Stage) AllowedNext() []Stage {
	next := stageTransitions[s]
	out := make([]Stage, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether s → to is in the transition table.
func (s Stage) CanTransitionTo(to Stage) bool {
	for _, n := range stageTransitions[s] {
		if n == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the stage has no outgoing transitions.
func (s Stage) IsTerminal() bool {
	return len(stageTransitions[s]) == 0
}

// IsDecision reports whether entering the stage stamps a decision timestamp.
func (s Stage) IsDecision() bool {
	return decisionStages[s]
}

// Valid reports whether s is a member of the stage set at all.
func (s Stage) Valid() bool {
	switch s {
	case StageDraft, StageSubmitted, StageStaffReview, StageAwaitingDocuments,
		StageGSAssessment, StageOfferGenerated, StageOfferAccepted,
		StageEnrolled, StageRejected, StageWithdrawn:
		return true
	}
	return false
}
