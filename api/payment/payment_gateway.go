package payment

import (
	"context"
	"time"
)

// Charge is what a gateway needs to take payment for one booking.
type Charge struct {
	BookingID       string `json:"booking_id"`
	VenueID         string `json:"venue_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	ResourceID      string `json:"resource_id"`
	PaymentMethodID string `json:"payment_method_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// Receipt acknowledges a successful charge.
type Receipt struct {
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	ChargedAt time.Time `json:"charged_at"`
}

// Gateway defines the interface for settling a booking payment.
type Gateway interface {
	Charge(ctx context.Context, c Charge) (*Receipt, error)
}
