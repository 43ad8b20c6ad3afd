// file: internals/route/details/review_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	reviewController "enrollku_backend/internals/features/applications/review/controller"
)

// ReviewRoutes: the staff workflow over submitted applications.
func ReviewRoutes(r fiber.Router, deps Deps) {
	ctrl := reviewController.NewReviewController(deps.Review)

	apps := r.Group("/applications")
	apps.Get("/queue", ctrl.Queue)
	apps.Post("/:id/review", ctrl.StartReview)
	apps.Post("/:id/assign", ctrl.Assign)
	apps.Post("/:id/request-documents", ctrl.RequestDocuments)
	apps.Post("/:id/documents-received", ctrl.DocumentsReceived)
	apps.Post("/:id/gs-assessment", ctrl.StartGSAssessment)
	apps.Put("/:id/gs-assessment", ctrl.RecordGSAssessment)
	apps.Post("/:id/approve", ctrl.Approve)
	apps.Post("/:id/reject", ctrl.Reject)
	apps.Post("/:id/enroll", ctrl.Enroll)
}
