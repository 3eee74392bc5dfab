package domain

import "errors"

// Sentinel errors shared by every workflow. Handlers translate these to HTTP
// statuses with errors.Is, so services never reach for status codes directly.
var (
	ErrUnauthenticated = errors.New("missing or invalid credentials")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")

	// ErrItemUnavailable covers every way an order line can fail: the menu
	// item does not exist on that restaurant, is flagged unavailable, or has
	// less stock than requested. One line failing fails the whole cart.
	ErrItemUnavailable = errors.New("menu item unavailable")
)
