package services

import "errors"

var (
	ErrCatalogUnavailable   = errors.New("venue catalogue not loaded")
	ErrMatchesUnavailable   = errors.New("open matches not loaded")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrInvalidDate          = errors.New("invalid date")
	ErrDateInPast           = errors.New("date is in the past")
	ErrSlotUnavailable      = errors.New("time slot is not available")
	ErrUnknownResource      = errors.New("unknown resource")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrUnknownField         = errors.New("unknown booking field")
	ErrStepOutOfOrder       = errors.New("previous booking step not completed")
	ErrIncomplete           = errors.New("booking selection incomplete")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrSessionNotFound      = errors.New("booking session not found")
)
