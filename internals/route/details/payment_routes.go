// file: internals/route/details/payment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	payController "enrollku_backend/internals/features/applications/payments/controller"
)

// WebhookRoutes: unauthenticated gateway callbacks.
func WebhookRoutes(r fiber.Router, deps Deps) {
	ctrl := payController.NewPaymentController(deps.DB, deps.Payments)
	r.Post("/notification", ctrl.Notification)
}

// PaymentRoutes: staff-side fee handling.
func PaymentRoutes(r fiber.Router, deps Deps) {
	ctrl := payController.NewPaymentController(deps.DB, deps.Payments)

	apps := r.Group("/applications")
	apps.Get("/:id/payment", ctrl.Status)
	apps.Post("/:id/waive-fee", ctrl.Waive)
}
