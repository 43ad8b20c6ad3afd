// internals/features/applications/review/controller/review_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	appDTO "enrollku_backend/internals/features/applications/applications/dto"
	appModel "enrollku_backend/internals/features/applications/applications/model"
	appService "enrollku_backend/internals/features/applications/applications/service"
	"enrollku_backend/internals/features/applications/review/dto"
	"enrollku_backend/internals/features/applications/review/service"
	helper "enrollku_backend/internals/helpers"
	"enrollku_backend/internals/helpers/auth"
)

// ReviewController exposes the staff workflow. Route guards already
// restrict these to staff roles; the controller still resolves the actor
// for tenancy and audit attribution.
type ReviewController struct {
	Service  *service.ReviewService
	validate *validator.Validate
}

func NewReviewController(svc *service.ReviewService) *ReviewController {
	return &ReviewController{Service: svc, validate: validator.New()}
}

func (ctrl *ReviewController) actorAndID(c *fiber.Ctx) (auth.Actor, uuid.UUID, error) {
	actor, err := auth.FromContext(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return actor, id, nil
}

func notesBody(c *fiber.Ctx) *string {
	var body dto.NotesRequest
	_ = c.BodyParser(&body)
	return body.Notes
}

func jsonResult(c *fiber.Ctx, result *appDTO.StageTransitionResult, err error) error {
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, result.Message, result)
}

// POST /api/staff/applications/:id/review
func (ctrl *ReviewController) StartReview(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.StartReview(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/assign
func (ctrl *ReviewController) Assign(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}
	result, err := ctrl.Service.Assign(id, req.StaffID, actor)
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/request-documents
func (ctrl *ReviewController) RequestDocuments(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.RequestDocuments(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/documents-received
func (ctrl *ReviewController) DocumentsReceived(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.MarkDocumentsReceived(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/gs-assessment
func (ctrl *ReviewController) StartGSAssessment(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.StartGSAssessment(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// PUT /api/staff/applications/:id/gs-assessment
func (ctrl *ReviewController) RecordGSAssessment(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.GSAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}
	result, err := ctrl.Service.RecordGSAssessment(id, req.Assessment, actor, req.Notes)
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/approve
func (ctrl *ReviewController) Approve(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.Approve(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/reject
func (ctrl *ReviewController) Reject(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.Reject(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// POST /api/agent/applications/:id/accept-offer
// The agent accepts on the student's behalf, so this one is not staff-only.
func (ctrl *ReviewController) AcceptOffer(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AcceptOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}
	result, err := ctrl.Service.AcceptOffer(id, actor, req.PayerName, req.PayerEmail, req.Notes)
	return jsonResult(c, result, err)
}

// POST /api/staff/applications/:id/enroll
func (ctrl *ReviewController) Enroll(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}
	result, err := ctrl.Service.Enroll(id, req.StudentID, actor, req.EnrollmentData, req.Notes)
	return jsonResult(c, result, err)
}

// POST /api/agent/applications/:id/withdraw
func (ctrl *ReviewController) Withdraw(c *fiber.Ctx) error {
	actor, id, err := ctrl.actorAndID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	result, err := ctrl.Service.Withdraw(id, actor, notesBody(c))
	return jsonResult(c, result, err)
}

// GET /api/staff/applications/queue?stage=STAFF_REVIEW
func (ctrl *ReviewController) Queue(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	stage := appModel.Stage(c.Query("stage", string(appModel.StageSubmitted)))
	apps, total, err := ctrl.Service.ListQueue(actor.RTOID(), stage, paging.Offset, paging.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]appDTO.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		meta := app.ApplicationFormMetadata
		items = append(items, appDTO.FromApplicationModel(app,
			appService.CompletedSections(meta), appService.ProgressPercent(meta), false))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, paging))
}
