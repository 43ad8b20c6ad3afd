// internals/features/documents/documents/controller/document_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"enrollku_backend/internals/features/documents/documents/dto"
	m "enrollku_backend/internals/features/documents/documents/model"
	"enrollku_backend/internals/features/documents/documents/service"
	ocrService "enrollku_backend/internals/features/documents/ocr/service"
	helper "enrollku_backend/internals/helpers"
	"enrollku_backend/internals/helpers/auth"
)

type DocumentController struct {
	DB           *gorm.DB
	Uploads      *service.UploadService
	Verification *service.VerificationService
	OCR          *ocrService.OCRService
	validate     *validator.Validate
}

func NewDocumentController(db *gorm.DB, uploads *service.UploadService, verification *service.VerificationService, ocr *ocrService.OCRService) *DocumentController {
	return &DocumentController{
		DB:           db,
		Uploads:      uploads,
		Verification: verification,
		OCR:          ocr,
		validate:     validator.New(),
	}
}

/* =========================================================
   UPLOAD & LIST (agent side)
   ========================================================= */

// Upload takes one multipart file plus a type_code form field. OCR runs
// inline; the response carries the extraction outcome when available.
// POST /api/agent/applications/:id/documents
func (ctrl *DocumentController) Upload(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	typeCode := c.FormValue("type_code")
	if typeCode == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "type_code is required")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}

	result, err := ctrl.Uploads.Upload(c.UserContext(), applicationID, typeCode, fh, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "document uploaded", result)
}

// List returns the application's live document slots with latest versions.
// GET /api/agent/applications/:id/documents
func (ctrl *DocumentController) List(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	docs, err := ctrl.Uploads.ListByApplication(applicationID, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", docs)
}

/* =========================================================
   VERIFICATION (staff side)
   ========================================================= */

// Verify applies a VERIFIED/REJECTED decision.
// POST /api/staff/documents/:id/verify
func (ctrl *DocumentController) Verify(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.VerifyDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationErrorFrom(c, err)
	}

	result, err := ctrl.Verification.Verify(documentID, actor.ID(), m.DocumentStatus(req.Decision), req.Notes)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, result.Message, result)
}

// Delete soft-deletes a document slot.
// DELETE /api/staff/documents/:id
func (ctrl *DocumentController) Delete(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	_ = c.BodyParser(&body)

	if err := ctrl.Verification.SoftDelete(documentID, actor.ID(), body.Notes); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "document deleted", fiber.Map{"document_id": documentID})
}

/* =========================================================
   OCR
   ========================================================= */

// Reprocess re-runs extraction on the latest version.
// POST /api/staff/documents/:id/reprocess
func (ctrl *DocumentController) Reprocess(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	result, err := ctrl.OCR.Reprocess(c.UserContext(), documentID, actor.ID())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "extraction completed", result)
}

// Suggestions returns the auto-fill candidates from one document.
// GET /api/agent/documents/:id/suggestions
func (ctrl *DocumentController) Suggestions(c *fiber.Ctx) error {
	if _, err := auth.FromContext(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	suggestions, err := ctrl.OCR.Suggestions(documentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", suggestions)
}

// ApplicationSuggestions merges candidates from every extracted document.
// GET /api/agent/applications/:id/suggestions
func (ctrl *DocumentController) ApplicationSuggestions(c *fiber.Ctx) error {
	if _, err := auth.FromContext(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	suggestions, err := ctrl.OCR.SuggestionsForApplication(applicationID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", suggestions)
}

/* =========================================================
   DOCUMENT TYPES
   ========================================================= */

// ListTypes returns the RTO's document checklist in display order.
// GET /api/agent/document-types
func (ctrl *DocumentController) ListTypes(c *fiber.Ctx) error {
	actor, err := auth.FromContext(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var types []m.DocumentTypeModel
	if err := ctrl.DB.Where("document_type_rto_id = ?", actor.RTOID()).
		Order("document_type_display_order").
		Find(&types).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list document types")
	}
	return helper.JsonOK(c, "ok", types)
}
