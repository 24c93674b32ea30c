package contract

import (
	"testing"

	"github.com/alexanderramin/parley/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewTurnRequest_NoHistoryNoPending(t *testing.T) {
	req := NewTurnRequest("add buy milk")

	assert.Equal(t, "add buy milk", req.Message)
	assert.Nil(t, req.History)
	assert.Nil(t, req.Pending)
}

func TestAccountChanges_IsEmpty(t *testing.T) {
	assert.True(t, AccountChanges{}.IsEmpty())

	role := domain.RoleAdmin
	assert.False(t, AccountChanges{Role: &role}.IsEmpty())

	active := false
	assert.False(t, AccountChanges{IsActive: &active}.IsEmpty(), "explicit false is a change")
}
