package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    SaleStatus
		to      SaleStatus
		allowed bool
	}{
		{SaleStatusQuote, SaleStatusPendingApproval, true},
		{SaleStatusQuote, SaleStatusCanceled, true},
		{SaleStatusQuote, SaleStatusConfirmed, false},
		{SaleStatusQuote, SaleStatusApproved, false},
		{SaleStatusPendingApproval, SaleStatusApproved, true},
		{SaleStatusPendingApproval, SaleStatusRejected, true},
		{SaleStatusPendingApproval, SaleStatusCanceled, true},
		{SaleStatusPendingApproval, SaleStatusConfirmed, false},
		{SaleStatusApproved, SaleStatusConfirmed, true},
		{SaleStatusApproved, SaleStatusCanceled, true},
		{SaleStatusApproved, SaleStatusShipped, false},
		{SaleStatusConfirmed, SaleStatusInProduction, true},
		{SaleStatusConfirmed, SaleStatusCanceled, true},
		{SaleStatusConfirmed, SaleStatusQuote, false},
		{SaleStatusInProduction, SaleStatusReadyToShip, true},
		{SaleStatusInProduction, SaleStatusCanceled, true},
		{SaleStatusReadyToShip, SaleStatusShipped, true},
		{SaleStatusReadyToShip, SaleStatusCanceled, false},
		{SaleStatusShipped, SaleStatusDelivered, true},
		{SaleStatusShipped, SaleStatusCompleted, false},
		{SaleStatusDelivered, SaleStatusCompleted, true},
		{SaleStatusDelivered, SaleStatusShipped, false},
		{SaleStatusCompleted, SaleStatusCanceled, false},
		{SaleStatusCanceled, SaleStatusQuote, false},
		{SaleStatusRejected, SaleStatusPendingApproval, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSaleStatus_IsTerminal(t *testing.T) {
	terminal := []SaleStatus{SaleStatusCompleted, SaleStatusCanceled, SaleStatusRejected}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
		assert.Empty(t, s.AllowedTargets())
	}

	for _, s := range AllStatuses() {
		if s == SaleStatusCompleted || s == SaleStatusCanceled || s == SaleStatusRejected {
			continue
		}
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
		assert.NotEmpty(t, s.AllowedTargets())
	}
}

func TestSaleStatus_IsEditable(t *testing.T) {
	assert.True(t, SaleStatusQuote.IsEditable())
	assert.True(t, SaleStatusPendingApproval.IsEditable())
	assert.False(t, SaleStatusApproved.IsEditable())
	assert.False(t, SaleStatusConfirmed.IsEditable())
	assert.False(t, SaleStatusCanceled.IsEditable())
}

func TestSaleStatus_HoldsStock(t *testing.T) {
	holding := []SaleStatus{SaleStatusConfirmed, SaleStatusInProduction, SaleStatusReadyToShip, SaleStatusShipped}
	for _, s := range holding {
		assert.True(t, s.HoldsStock(), "%s should hold stock", s)
	}
	notHolding := []SaleStatus{SaleStatusQuote, SaleStatusPendingApproval, SaleStatusApproved, SaleStatusDelivered, SaleStatusCompleted, SaleStatusCanceled, SaleStatusRejected}
	for _, s := range notHolding {
		assert.False(t, s.HoldsStock(), "%s should not hold stock", s)
	}
}

func TestSaleStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, SaleStatus("DRAFT").IsValid())
	assert.False(t, SaleStatus("").IsValid())
}
