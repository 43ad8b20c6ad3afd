// internals/features/applications/payments/service/payment_service.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"enrollku_backend/internals/configs"
	m "enrollku_backend/internals/features/applications/payments/model"
)

// PaymentService raises and settles the enrollment fee via Midtrans Snap.
// The client is held on the struct, not in a package global.
type PaymentService struct {
	DB   *gorm.DB
	Snap snap.Client
	Fee  int64
}

func NewPaymentService(db *gorm.DB, cfg configs.Config) *PaymentService {
	s := &PaymentService{DB: db, Fee: cfg.EnrollmentFeeIDR}
	s.Snap.New(cfg.MidtransServerKey, midtrans.Sandbox)
	return s
}

// CreateEnrollmentFee raises the fee when an offer is accepted. Runs in
// the caller's transaction; the Snap call happens first so a vendor
// failure aborts before any row exists.
func (s *PaymentService) CreateEnrollmentFee(tx *gorm.DB, applicationID uuid.UUID, payerName, payerEmail string) (*m.PaymentModel, error) {
	orderID := fmt.Sprintf("ENR-%s-%d", applicationID.String()[:8], time.Now().Unix())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: s.Fee,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Email: payerEmail,
		},
	}
	resp, err := s.Snap.CreateTransaction(req)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "failed to create payment transaction")
	}

	payment := m.PaymentModel{
		PaymentApplicationID: applicationID,
		PaymentOrderID:       orderID,
		PaymentAmountIDR:     s.Fee,
		PaymentStatus:        m.PaymentStatusPending,
		PaymentSnapToken:     &resp.Token,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to record payment")
	}
	return &payment, nil
}

// HandleNotification processes the Midtrans webhook body.
func (s *PaymentService) HandleNotification(body map[string]any) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		return fiber.NewError(fiber.StatusBadRequest, "incomplete webhook payload")
	}

	var payment m.PaymentModel
	if err := s.DB.First(&payment, "payment_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("payment with order_id %s not found", orderID))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load payment")
	}

	updates := map[string]any{}
	switch status {
	case "capture", "settlement":
		now := time.Now()
		updates["payment_status"] = m.PaymentStatusSettled
		updates["payment_paid_at"] = now
	case "expire":
		updates["payment_status"] = m.PaymentStatusExpired
	case "deny", "cancel", "failure":
		updates["payment_status"] = m.PaymentStatusFailed
	default:
		log.Printf("[PAYMENT] order %s: ignoring transaction_status %q", orderID, status)
		return nil
	}

	if err := s.DB.Model(&payment).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update payment status")
	}
	return nil
}

// Waive clears the fee manually (staff decision).
func (s *PaymentService) Waive(applicationID uuid.UUID) error {
	res := s.DB.Model(&m.PaymentModel{}).
		Where("payment_application_id = ? AND payment_status = ?", applicationID, m.PaymentStatusPending).
		Update("payment_status", m.PaymentStatusWaived)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to waive payment")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no pending payment to waive")
	}
	return nil
}

// IsCleared reports whether the enrollment fee is settled or waived.
func (s *PaymentService) IsCleared(tx *gorm.DB, applicationID uuid.UUID) (bool, error) {
	var payment m.PaymentModel
	err := tx.Where("payment_application_id = ?", applicationID).
		Order("payment_created_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "failed to load payment")
	}
	return payment.PaymentStatus.Cleared(), nil
}
