// internals/features/applications/applications/model/application_stage_history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStageHistoryModel is the append-only transition ledger. Rows
// are created exactly once per successful transition and never touched
// again; replay in application_stage_history_created_at order reconstructs
// the full lifecycle.
type ApplicationStageHistoryModel struct {
	ApplicationStageHistoryID            uuid.UUID `gorm:"column:application_stage_history_id;type:uuid;default:gen_random_uuid();primaryKey" json:"application_stage_history_id"`
	ApplicationStageHistoryApplicationID uuid.UUID `gorm:"column:application_stage_history_application_id;type:uuid;not null;index" json:"application_stage_history_application_id"`

	ApplicationStageHistoryFromStage Stage   `gorm:"column:application_stage_history_from_stage;type:varchar(30);not null" json:"application_stage_history_from_stage"`
	ApplicationStageHistoryToStage   Stage   `gorm:"column:application_stage_history_to_stage;type:varchar(30);not null" json:"application_stage_history_to_stage"`
	ApplicationStageHistoryNotes     *string `gorm:"column:application_stage_history_notes;type:text" json:"application_stage_history_notes,omitempty"`

	ApplicationStageHistoryChangedBy uuid.UUID `gorm:"column:application_stage_history_changed_by;type:uuid;not null" json:"application_stage_history_changed_by"`
	ApplicationStageHistoryCreatedAt time.Time `gorm:"column:application_stage_history_created_at;not null;autoCreateTime" json:"application_stage_history_created_at"`
}

func (ApplicationStageHistoryModel) TableName() string { return "application_stage_history" }
