// internals/features/applications/applications/controller/application_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"enrollku_backend/internals/constants"
	"enrollku_backend/internals/features/applications/applications/dto"
	m "enrollku_backend/internals/features/applications/applications/model"
	"enrollku_backend/internals/features/applications/applications/service"
	helper "enrollku_backend/internals/helpers"
	"enrollku_backend/internals/helpers/auth"
)

type ApplicationController struct {
	DB       *gorm.DB
	Steps    *service.StepUpdateService
	validate *validator.Validate
}

func NewApplicationController(db *gorm.DB, steps *service.StepUpdateService) *ApplicationController {
	return &ApplicationController{DB: db, Steps: steps, validate: validator.New()}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

/* =========================================================
   CREATE & READ
   ========================================================= */

// Create opens a DRAFT application owned by the calling agent.
// POST /api/agent/applications
func (ctrl *ApplicationController) Create(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	app := req.ToModel(actor.RTOID(), actor.ID())
	if err := ctrl.DB.Create(&app).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create application")
	}

	resp := dto.FromApplicationModel(app, nil, 0, false)
	return helper.JsonCreated(c, "application created", resp)
}

// GetByID returns the full aggregate including step data.
// GET /api/agent/applications/:id
func (ctrl *ApplicationController) GetByID(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	app, err := ctrl.Steps.LoadApplication(ctrl.DB, id, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	meta := app.ApplicationFormMetadata
	resp := dto.FromApplicationModel(*app,
		service.CompletedSections(meta), service.ProgressPercent(meta), true)
	return helper.JsonOK(c, "ok", resp)
}

// List pages the caller's applications: agents see their own book, staff
// see the whole RTO. ?stage= filters.
// GET /api/agent/applications
func (ctrl *ApplicationController) List(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&m.ApplicationModel{})
	switch actor.Role() {
	case constants.RoleAdmin, constants.RoleStaff:
		q = q.Where("application_rto_id = ?", actor.RTOID())
	default:
		q = q.Where("application_agent_id = ?", actor.ID())
	}
	if stage := m.Stage(c.Query("stage")); stage != "" {
		if !stage.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown stage filter")
		}
		q = q.Where("application_current_stage = ?", stage)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count applications")
	}

	var apps []m.ApplicationModel
	if err := q.Order("application_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&apps).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list applications")
	}

	items := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		meta := app.ApplicationFormMetadata
		items = append(items, dto.FromApplicationModel(app,
			service.CompletedSections(meta), service.ProgressPercent(meta), false))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, paging))
}

/* =========================================================
   STEP MUTATION & SUBMISSION
   ========================================================= */

// UpdateStep saves one named form section.
// PUT /api/agent/applications/:id/steps/:step
func (ctrl *ApplicationController) UpdateStep(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctrl.Steps.UpdateStep(id, c.Params("step"), c.Body(), actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "step saved", resp)
}

// Submit runs DRAFT → SUBMITTED once all 12 sections are complete.
// POST /api/agent/applications/:id/submit
func (ctrl *ApplicationController) Submit(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	_ = c.BodyParser(&body) // empty body is fine

	result, err := ctrl.Steps.Submit(id, actor, body.Notes)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, result.Message, result)
}

// History lists the stage ledger, oldest first.
// GET /api/agent/applications/:id/history
func (ctrl *ApplicationController) History(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if _, err := ctrl.Steps.LoadApplication(ctrl.DB, id, actor); err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []m.ApplicationStageHistoryModel
	if err := ctrl.DB.Where("application_stage_history_application_id = ?", id).
		Order("application_stage_history_created_at").
		Find(&rows).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load stage history")
		}
	}

	items := make([]dto.StageHistoryResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.FromStageHistoryModel(row))
	}
	return helper.JsonOK(c, "ok", items)
}

// ListSteps names the valid form sections, for client discovery.
// GET /api/agent/applications/steps
func (ctrl *ApplicationController) ListSteps(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", service.StepNames())
}
