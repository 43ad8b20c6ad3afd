// file: internals/route/details/document_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	docController "enrollku_backend/internals/features/documents/documents/controller"
)

func docControllerFor(deps Deps) *docController.DocumentController {
	return docController.NewDocumentController(deps.DB, deps.Uploads, deps.Verification, deps.OCR)
}

// StaffDocumentRoutes: verification decisions and OCR reruns.
func StaffDocumentRoutes(r fiber.Router, deps Deps) {
	ctrl := docControllerFor(deps)

	docs := r.Group("/documents")
	docs.Post("/:id/verify", ctrl.Verify)
	docs.Post("/:id/reprocess", ctrl.Reprocess)
	docs.Delete("/:id", ctrl.Delete)
}
