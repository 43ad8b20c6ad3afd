// internals/features/documents/documents/model/document_timeline_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Timeline event kinds.
const (
	TimelineEventUploaded   = "UPLOADED"
	TimelineEventVerified   = "VERIFIED"
	TimelineEventRejected   = "REJECTED"
	TimelineEventDeleted    = "DELETED"
	TimelineEventOCRStarted = "OCR_STARTED"
	TimelineEventOCRDone    = "OCR_COMPLETED"
	TimelineEventOCRFailed  = "OCR_FAILED"
)

// DocumentTimelineModel is the append-only audit trail per document. One
// row per event; repeated verify calls each append their own row.
type DocumentTimelineModel struct {
	DocumentTimelineID         uuid.UUID `gorm:"column:document_timeline_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_timeline_id"`
	DocumentTimelineDocumentID uuid.UUID `gorm:"column:document_timeline_document_id;type:uuid;not null;index" json:"document_timeline_document_id"`

	DocumentTimelineEvent string  `gorm:"column:document_timeline_event;type:varchar(30);not null" json:"document_timeline_event"`
	DocumentTimelineNotes *string `gorm:"column:document_timeline_notes;type:text" json:"document_timeline_notes,omitempty"`

	DocumentTimelineActor     uuid.UUID `gorm:"column:document_timeline_actor;type:uuid;not null" json:"document_timeline_actor"`
	DocumentTimelineCreatedAt time.Time `gorm:"column:document_timeline_created_at;not null;autoCreateTime" json:"document_timeline_created_at"`
}

func (DocumentTimelineModel) TableName() string { return "document_timeline" }
