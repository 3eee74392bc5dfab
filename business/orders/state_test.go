package orders_test

import (
	"testing"

	"dinesmart/business/orders"
	"dinesmart/domain"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{domain.OrderPending, domain.OrderConfirmed, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderReady, false},
		{domain.OrderConfirmed, domain.OrderPreparing, true},
		{domain.OrderConfirmed, domain.OrderCancelled, true},
		{domain.OrderConfirmed, domain.OrderCompleted, false},
		{domain.OrderPreparing, domain.OrderReady, true},
		{domain.OrderPreparing, domain.OrderCancelled, true},
		{domain.OrderPreparing, domain.OrderConfirmed, false},
		{domain.OrderReady, domain.OrderCompleted, true},
		{domain.OrderReady, domain.OrderCancelled, false},
		{domain.OrderCompleted, domain.OrderCancelled, false},
		{domain.OrderCancelled, domain.OrderPending, false},
		{domain.OrderPending, domain.OrderPending, false},
	}

	for _, tc := range tests {
		err := orders.CanTransition(tc.from, tc.to)
		if tc.allowed {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range orders.ValidStatuses() {
		assert.True(t, orders.IsValidStatus(status), status)
	}
	assert.False(t, orders.IsValidStatus("SHIPPED"))
	assert.False(t, orders.IsValidStatus("pending"))
}
