// file: internals/route/index.go
package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"enrollku_backend/internals/configs"
	"enrollku_backend/internals/constants"
	appService "enrollku_backend/internals/features/applications/applications/service"
	payService "enrollku_backend/internals/features/applications/payments/service"
	reviewService "enrollku_backend/internals/features/applications/review/service"
	docService "enrollku_backend/internals/features/documents/documents/service"
	ocrService "enrollku_backend/internals/features/documents/ocr/service"
	"enrollku_backend/internals/helpers/storage"
	"enrollku_backend/internals/middlewares"
	routeDetails "enrollku_backend/internals/route/details"
)

// SetupRoutes wires the service graph once and mounts the role groups.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.Config) {
	// ===================== SERVICE GRAPH =====================
	stages := appService.NewStageService(db)
	steps := appService.NewStepUpdateService(db, stages)

	oss, err := storage.NewOSSService(cfg)
	if err != nil {
		log.Printf("[WARN] ⚠️ object storage unavailable: %v (uploads will fail)", err)
	}
	ocr := ocrService.NewOCRService(db, ocrService.NewProviders(cfg))
	verification := docService.NewVerificationService(db)
	uploads := docService.NewUploadService(db, oss, ocr)

	payments := payService.NewPaymentService(db, cfg)
	review := reviewService.NewReviewService(db, stages, verification, payments)

	deps := routeDetails.Deps{
		DB:           db,
		Steps:        steps,
		Uploads:      uploads,
		Verification: verification,
		OCR:          ocr,
		Payments:     payments,
		Review:       review,
	}

	// ===================== WEBHOOKS (no auth) =====================
	log.Println("[INFO] Setting up WebhookRoutes...")
	routeDetails.WebhookRoutes(app.Group("/api/payments"), deps)

	// ===================== AGENT =====================
	log.Println("[INFO] Setting up AGENT group...")
	agent := app.Group("/api/agent",
		middlewares.RequireRoles(constants.RoleAgent, constants.RoleStaff, constants.RoleAdmin),
	)
	routeDetails.ApplicationRoutes(agent, deps)
	routeDetails.DocumentRoutes(agent, deps)

	// ===================== STAFF =====================
	log.Println("[INFO] Setting up STAFF group...")
	staff := app.Group("/api/staff",
		middlewares.RequireRoles(constants.StaffRoles...),
	)
	routeDetails.ReviewRoutes(staff, deps)
	routeDetails.StaffDocumentRoutes(staff, deps)
	routeDetails.PaymentRoutes(staff, deps)
}
