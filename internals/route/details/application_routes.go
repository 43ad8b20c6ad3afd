// file: internals/route/details/application_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appController "enrollku_backend/internals/features/applications/applications/controller"
	appService "enrollku_backend/internals/features/applications/applications/service"
	payService "enrollku_backend/internals/features/applications/payments/service"
	reviewController "enrollku_backend/internals/features/applications/review/controller"
	reviewService "enrollku_backend/internals/features/applications/review/service"
	docService "enrollku_backend/internals/features/documents/documents/service"
	ocrService "enrollku_backend/internals/features/documents/ocr/service"
	"enrollku_backend/internals/middlewares"
)

// Deps is the wired service graph handed to every route block.
type Deps struct {
	DB           *gorm.DB
	Steps        *appService.StepUpdateService
	Uploads      *docService.UploadService
	Verification *docService.VerificationService
	OCR          *ocrService.OCRService
	Payments     *payService.PaymentService
	Review       *reviewService.ReviewService
}

// ApplicationRoutes: the agent-facing application lifecycle.
func ApplicationRoutes(r fiber.Router, deps Deps) {
	ctrl := appController.NewApplicationController(deps.DB, deps.Steps)
	review := reviewController.NewReviewController(deps.Review)

	apps := r.Group("/applications")
	apps.Get("/steps", ctrl.ListSteps)
	apps.Post("/", ctrl.Create)
	apps.Get("/", ctrl.List)
	apps.Get("/:id", ctrl.GetByID)
	apps.Put("/:id/steps/:step", ctrl.UpdateStep)
	apps.Post("/:id/submit", ctrl.Submit)
	apps.Get("/:id/history", ctrl.History)

	// post-offer actions the agent takes on the student's behalf
	apps.Post("/:id/accept-offer", review.AcceptOffer)
	apps.Post("/:id/withdraw", review.Withdraw)
}

// DocumentRoutes: upload / list / suggestions on the agent surface.
// Uploads carry their own tighter rate limit.
func DocumentRoutes(r fiber.Router, deps Deps) {
	ctrl := docControllerFor(deps)

	r.Get("/document-types", ctrl.ListTypes)

	apps := r.Group("/applications")
	apps.Post("/:id/documents", middlewares.UploadRateLimiter(), ctrl.Upload)
	apps.Get("/:id/documents", ctrl.List)
	apps.Get("/:id/suggestions", ctrl.ApplicationSuggestions)

	docs := r.Group("/documents")
	docs.Get("/:id/suggestions", ctrl.Suggestions)
}
