package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDecision(t *testing.T) {
	assert.True(t, DocumentStatusVerified.ValidDecision())
	assert.True(t, DocumentStatusRejected.ValidDecision())
	assert.False(t, DocumentStatusPending.ValidDecision())
	assert.False(t, DocumentStatusDeleted.ValidDecision())
	assert.False(t, DocumentStatus("APPROVED").ValidDecision())
}
