package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"enrollku_backend/internals/constants"
	appModel "enrollku_backend/internals/features/applications/applications/model"
)

func appIn(stage appModel.Stage, rtoID, agentID uuid.UUID) *appModel.ApplicationModel {
	return &appModel.ApplicationModel{
		ApplicationRTOID:        rtoID,
		ApplicationAgentID:      agentID,
		ApplicationCurrentStage: stage,
	}
}

func TestAgentCapabilities(t *testing.T) {
	rtoID := uuid.New()
	agentID := uuid.New()
	agent := New(constants.RoleAgent, agentID, rtoID)

	own := appIn(appModel.StageDraft, rtoID, agentID)
	assert.True(t, agent.CanView(own))
	assert.True(t, agent.CanEdit(own))
	assert.True(t, agent.CanUpload(own))
	assert.False(t, agent.CanReview())

	// editing stops once the draft is submitted; uploads continue
	submitted := appIn(appModel.StageSubmitted, rtoID, agentID)
	assert.False(t, agent.CanEdit(submitted))
	assert.True(t, agent.CanUpload(submitted))

	// terminal stages freeze uploads too
	rejected := appIn(appModel.StageRejected, rtoID, agentID)
	assert.False(t, agent.CanUpload(rejected))
	assert.True(t, agent.CanView(rejected))

	// someone else's application is invisible
	other := appIn(appModel.StageDraft, rtoID, uuid.New())
	assert.False(t, agent.CanView(other))
	assert.False(t, agent.CanEdit(other))
	assert.False(t, agent.CanUpload(other))
}

func TestStaffCapabilities(t *testing.T) {
	rtoID := uuid.New()
	staff := New(constants.RoleStaff, uuid.New(), rtoID)

	inReview := appIn(appModel.StageStaffReview, rtoID, uuid.New())
	assert.True(t, staff.CanView(inReview))
	assert.True(t, staff.CanEdit(inReview))
	assert.True(t, staff.CanUpload(inReview))
	assert.True(t, staff.CanReview())

	// staff edit rights end at terminal stages
	enrolled := appIn(appModel.StageEnrolled, rtoID, uuid.New())
	assert.True(t, staff.CanView(enrolled))
	assert.False(t, staff.CanEdit(enrolled))

	// tenancy boundary: another RTO's application is invisible
	foreign := appIn(appModel.StageStaffReview, uuid.New(), uuid.New())
	assert.False(t, staff.CanView(foreign))
	assert.False(t, staff.CanEdit(foreign))
}

func TestAdminSharesStaffCapabilities(t *testing.T) {
	rtoID := uuid.New()
	admin := New(constants.RoleAdmin, uuid.New(), rtoID)
	assert.True(t, admin.CanReview())
	assert.Equal(t, constants.RoleAdmin, admin.Role())
	assert.True(t, admin.CanEdit(appIn(appModel.StageSubmitted, rtoID, uuid.New())))
}

func TestStudentCapabilities(t *testing.T) {
	rtoID := uuid.New()
	studentID := uuid.New()
	student := New(constants.RoleStudent, studentID, rtoID)

	enrolls := appIn(appModel.StageEnrolled, rtoID, uuid.New())
	enrolls.ApplicationStudentID = &studentID
	assert.True(t, student.CanView(enrolls))
	assert.False(t, student.CanEdit(enrolls))
	assert.False(t, student.CanUpload(enrolls))
	assert.False(t, student.CanReview())

	// no linked student yet: nothing visible
	pending := appIn(appModel.StageStaffReview, rtoID, uuid.New())
	assert.False(t, student.CanView(pending))
}

func TestUnknownRoleFallsBackToStudent(t *testing.T) {
	actor := New("visitor", uuid.New(), uuid.New())
	assert.False(t, actor.CanReview())
	assert.False(t, actor.CanEdit(appIn(appModel.StageDraft, uuid.New(), uuid.New())))
}
