// file: internals/seeds/runner.go
package seeds

import (
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	documents "enrollku_backend/internals/seeds/documents"
)

// RunAllSeeds seeds reference data. SEED_RTO_ID selects the tenant; with
// no value set, seeding is a no-op (production default).
func RunAllSeeds(db *gorm.DB) {
	raw := os.Getenv("SEED_RTO_ID")
	if raw == "" {
		return
	}
	rtoID, err := uuid.Parse(raw)
	if err != nil {
		log.Printf("[SEED] invalid SEED_RTO_ID %q: %v", raw, err)
		return
	}

	if err := documents.SeedDocumentTypes(db, rtoID); err != nil {
		log.Printf("[SEED] document types failed: %v", err)
	}
}
