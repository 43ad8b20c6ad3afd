package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusCleared(t *testing.T) {
	assert.True(t, PaymentStatusSettled.Cleared())
	assert.True(t, PaymentStatusWaived.Cleared())
	assert.False(t, PaymentStatusPending.Cleared())
	assert.False(t, PaymentStatusFailed.Cleared())
	assert.False(t, PaymentStatusExpired.Cleared())
}
