// internals/features/applications/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSettled PaymentStatus = "SETTLED"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
	// WAIVED: staff cleared the fee manually (scholarship, agent bulk deal)
	PaymentStatusWaived PaymentStatus = "WAIVED"
)

// Cleared reports whether the fee no longer blocks enrollment.
func (s PaymentStatus) Cleared() bool {
	return s == PaymentStatusSettled || s == PaymentStatusWaived
}

// PaymentModel tracks the enrollment fee raised when an offer is accepted.
type PaymentModel struct {
	PaymentID            uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentApplicationID uuid.UUID `gorm:"column:payment_application_id;type:uuid;not null;index" json:"payment_application_id"`

	PaymentOrderID   string        `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex" json:"payment_order_id"`
	PaymentAmountIDR int64         `gorm:"column:payment_amount_idr;not null" json:"payment_amount_idr"`
	PaymentStatus    PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'PENDING'" json:"payment_status"`

	PaymentSnapToken *string    `gorm:"column:payment_snap_token;type:text" json:"payment_snap_token,omitempty"`
	PaymentPaidAt    *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;not null;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "application_payments" }
