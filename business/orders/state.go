package orders

import (
	"fmt"

	"dinesmart/domain"
)

// validTransitions is the authoritative order lifecycle. Orders only move
// forward; COMPLETED and CANCELLED are terminal.
var validTransitions = map[string][]string{
	domain.OrderPending:   {domain.OrderConfirmed, domain.OrderCancelled},
	domain.OrderConfirmed: {domain.OrderPreparing, domain.OrderCancelled},
	domain.OrderPreparing: {domain.OrderReady, domain.OrderCancelled},
	domain.OrderReady:     {domain.OrderCompleted},
}

// CanTransition reports whether from -> to is a permitted lifecycle step.
func CanTransition(from, to string) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}

	return fmt.Errorf("%w: cannot move order from %s to %s", domain.ErrConflict, from, to)
}

// ValidStatuses lists every status an order can carry, for input validation.
func ValidStatuses() []string {
	return []string{
		domain.OrderPending,
		domain.OrderConfirmed,
		domain.OrderPreparing,
		domain.OrderReady,
		domain.OrderCompleted,
		domain.OrderCancelled,
	}
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses() {
		if v == s {
			return true
		}
	}
	return false
}
