package booking

import "time"

// Session is one open booking wizard for a venue.
type Session struct {
	SessionID string    `json:"session_id"`
	VenueID   string    `json:"venue_id"`
	Selection Selection `json:"selection"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ConfirmationID is assigned on the first confirm attempt and reused as
	// the payment idempotency key until the selection changes.
	ConfirmationID string `json:"confirmation_id,omitempty"`
}

// Confirmation records a completed booking.
type Confirmation struct {
	ConfirmationID  string    `json:"confirmation_id"`
	VenueID         string    `json:"venue_id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	ResourceID      string    `json:"resource_id"`
	PaymentMethodID string    `json:"payment_method_id"`
	TotalPrice      int64     `json:"total_price"`
	PaymentRef      string    `json:"payment_ref,omitempty"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}
