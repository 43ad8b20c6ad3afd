// internals/features/applications/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	m "enrollku_backend/internals/features/applications/payments/model"
	"enrollku_backend/internals/features/applications/payments/service"
	helper "enrollku_backend/internals/helpers"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *service.PaymentService
}

func NewPaymentController(db *gorm.DB, svc *service.PaymentService) *PaymentController {
	return &PaymentController{DB: db, Service: svc}
}

// Notification is the Midtrans webhook. Unauthenticated by design (the
// auth middleware skips this path); always answers 200 on handled input so
// the gateway stops retrying.
// POST /api/payments/notification
func (ctrl *PaymentController) Notification(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notification body")
	}
	if err := ctrl.Service.HandleNotification(body); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "notification processed", nil)
}

// Waive clears the pending fee by staff decision.
// POST /api/staff/applications/:id/waive-fee
func (ctrl *PaymentController) Waive(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := ctrl.Service.Waive(applicationID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "enrollment fee waived", fiber.Map{"application_id": applicationID})
}

// Status returns the latest payment row for an application.
// GET /api/staff/applications/:id/payment
func (ctrl *PaymentController) Status(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payment m.PaymentModel
	err = ctrl.DB.Where("payment_application_id = ?", applicationID).
		Order("payment_created_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "no payment raised for this application")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	return helper.JsonOK(c, "ok", payment)
}
