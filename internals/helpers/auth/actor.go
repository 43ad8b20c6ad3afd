// internals/helpers/auth/actor.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"enrollku_backend/internals/constants"
	appModel "enrollku_backend/internals/features/applications/applications/model"
)

// Actor is the capability view of the authenticated caller. Permission
// rules live here, once, instead of role-string checks scattered through
// controllers and services.
type Actor interface {
	ID() uuid.UUID
	Role() string
	RTOID() uuid.UUID

	// CanEdit: may the actor mutate step data of this application?
	CanEdit(app *appModel.ApplicationModel) bool
	// CanView: may the actor read this application?
	CanView(app *appModel.ApplicationModel) bool
	// CanUpload: may the actor attach documents to this application?
	CanUpload(app *appModel.ApplicationModel) bool
	// CanReview: may the actor run staff workflow operations?
	CanReview() bool
}

type base struct {
	userID uuid.UUID
	rtoID  uuid.UUID
}

func (b base) ID() uuid.UUID    { return b.userID }
func (b base) RTOID() uuid.UUID { return b.rtoID }

/* ===== staff / admin ===== */

type StaffActor struct {
	base
	role string
}

func (a StaffActor) Role() string    { return a.role }
func (a StaffActor) CanReview() bool { return true }

func (a StaffActor) CanView(app *appModel.ApplicationModel) bool {
	return app.ApplicationRTOID == a.rtoID
}

// Staff may correct step data in any non-terminal stage.
func (a StaffActor) CanEdit(app *appModel.ApplicationModel) bool {
	return a.CanView(app) && !app.ApplicationCurrentStage.IsTerminal()
}

func (a StaffActor) CanUpload(app *appModel.ApplicationModel) bool {
	return a.CanView(app)
}

/* ===== agent ===== */

type AgentActor struct {
	base
}

func (a AgentActor) Role() string    { return constants.RoleAgent }
func (a AgentActor) CanReview() bool { return false }

func (a AgentActor) CanView(app *appModel.ApplicationModel) bool {
	return app.ApplicationAgentID == a.userID
}

// Agents edit only their own applications, and only while still DRAFT.
func (a AgentActor) CanEdit(app *appModel.ApplicationModel) bool {
	return a.CanView(app) && app.IsDraft()
}

func (a AgentActor) CanUpload(app *appModel.ApplicationModel) bool {
	return a.CanView(app) && !app.ApplicationCurrentStage.IsTerminal()
}

/* ===== student ===== */

// StudentActor can look at the application that enrolls them but never
// mutates it directly.
type StudentActor struct {
	base
}

func (a StudentActor) Role() string    { return constants.RoleStudent }
func (a StudentActor) CanReview() bool { return false }

func (a StudentActor) CanView(app *appModel.ApplicationModel) bool {
	return app.ApplicationStudentID != nil && *app.ApplicationStudentID == a.userID
}

func (a StudentActor) CanEdit(*appModel.ApplicationModel) bool   { return false }
func (a StudentActor) CanUpload(*appModel.ApplicationModel) bool { return false }

/* ===== construction ===== */

// New builds the Actor variant for a role claim.
func New(role string, userID, rtoID uuid.UUID) Actor {
	b := base{userID: userID, rtoID: rtoID}
	switch role {
	case constants.RoleAdmin, constants.RoleStaff:
		return StaffActor{base: b, role: role}
	case constants.RoleAgent:
		return AgentActor{base: b}
	default:
		return StudentActor{base: b}
	}
}

// FromContext reads the locals filled by the auth middleware.
func FromContext(c *fiber.Ctx) (Actor, error) {
	userID, ok1 := c.Locals("user_id").(uuid.UUID)
	role, ok2 := c.Locals("role").(string)
	rtoID, ok3 := c.Locals("rto_id").(uuid.UUID)
	if !ok1 || !ok2 || !ok3 {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing auth context")
	}
	return New(role, userID, rtoID), nil
}
