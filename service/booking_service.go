package services

import (
	"context"
	"errors"
	"fmt"

	"xnova-server/api/payment"
	"xnova-server/config"
	"xnova-server/dao/redis"
	"xnova-server/metrics"
	"xnova-server/models"
	"xnova-server/models/booking"
	"xnova-server/models/venue"
	"xnova-server/util"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const CURRENCY_VND = "VND"

// BookingOption is one choice offered for the current wizard step. Label is a
// resource name or a translation key, depending on the step.
type BookingOption struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
	Price *int64 `json:"price,omitempty"`
}

// BookingView is what a client needs to render the wizard.
type BookingView struct {
	SessionID   string              `json:"session_id"`
	VenueID     string              `json:"venue_id"`
	VenueName   string              `json:"venue_name"`
	Selection   booking.Selection   `json:"selection"`
	CurrentStep booking.Step        `json:"current_step"`
	Steps       []booking.StepState `json:"steps"`
	Options     []BookingOption     `json:"options"`
	TotalPrice  *int64              `json:"total_price,omitempty"`
}

// BookingService drives booking wizard sessions from opening to confirmation.
type BookingService struct {
	sessionDao *redis.RedisBookingSessionDAO
	venues     *VenueService
	gateway    payment.Gateway
	clock      util.Clock
	cfg        config.BookingConfig
	metrics    *metrics.Metrics
	log        logrus.FieldLogger
}

func NewBookingService(
	sessionDao *redis.RedisBookingSessionDAO,
	venues *VenueService,
	gateway payment.Gateway,
	clock util.Clock,
	cfg config.BookingConfig,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) *BookingService {
	return &BookingService{
		sessionDao: sessionDao,
		venues:     venues,
		gateway:    gateway,
		clock:      clock,
		cfg:        cfg,
		metrics:    m,
		log:        log.WithField("component", "BookingService"),
	}
}

// Open starts a wizard for venueID. A preselected date is validated and
// applied. A preselected time is applied only when it is an exact "HH:MM"
// that is open on that date; anything else is ignored.
func (bs *BookingService) Open(venueID, preDate, preTime string) (*BookingView, error) {
	v, err := bs.venues.GetVenue(venueID)
	if err != nil {
		return nil, err
	}

	now := bs.clock.Now()
	s := &booking.Session{
		SessionID: uuid.NewString(),
		VenueID:   v.VenueID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if preDate != "" {
		if err := bs.apply(v, &s.Selection, booking.FieldDate, preDate); err != nil {
			return nil, err
		}
		if models.IsExactTime(preTime) {
			if err := bs.apply(v, &s.Selection, booking.FieldTime, preTime); err != nil {
				bs.log.WithError(err).Debugf("Ignoring preselected time %s", preTime)
			}
		}
	}

	if err := bs.sessionDao.SaveSession(s, bs.cfg.SessionTTL); err != nil {
		return nil, err
	}
	bs.metrics.SessionEvent("opened")
	bs.log.WithFields(logrus.Fields{
		"session_id": s.SessionID,
		"venue_id":   s.VenueID,
		"step":       s.Selection.CurrentStep(),
	}).Info("Booking session opened")

	return bs.view(v, s), nil
}

// Get returns the current state of a session.
func (bs *BookingService) Get(sessionID string) (*BookingView, error) {
	s, v, err := bs.load(sessionID)
	if err != nil {
		return nil, err
	}
	return bs.view(v, s), nil
}

// Set chooses a value for one wizard field. Every later field is cleared,
// even when the value did not change.
func (bs *BookingService) Set(sessionID string, field booking.Field, value string) (*BookingView, error) {
	s, v, err := bs.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := bs.apply(v, &s.Selection, field, value); err != nil {
		return nil, err
	}
	// a changed selection is a different charge
	s.ConfirmationID = ""

	s.UpdatedAt = bs.clock.Now()
	if err := bs.sessionDao.SaveSession(s, bs.cfg.SessionTTL); err != nil {
		return nil, err
	}
	return bs.view(v, s), nil
}

// Confirm settles a complete selection through the payment gateway and ends
// the session.
func (bs *BookingService) Confirm(ctx context.Context, sessionID string) (*booking.Confirmation, error) {
	s, v, err := bs.load(sessionID)
	if err != nil {
		return nil, err
	}
	sel := s.Selection
	if !sel.Complete() {
		return nil, fmt.Errorf("%w: step %d of %d", ErrIncomplete, sel.CurrentStep(), booking.StepConfirm)
	}

	// the catalogue may have been refreshed since the time was chosen
	slot, ok := v.SlotAt(sel.Date, sel.Time)
	if !ok || !slot.IsAvailable {
		return nil, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, sel.Date, sel.Time)
	}

	// the id doubles as the idempotency key, so it is stored before charging
	// and a retry after a failed or timed out payment reuses it
	if s.ConfirmationID == "" {
		s.ConfirmationID = uuid.NewString()
		s.UpdatedAt = bs.clock.Now()
		if err := bs.sessionDao.SaveSession(s, bs.cfg.SessionTTL); err != nil {
			return nil, err
		}
	}

	c := &booking.Confirmation{
		ConfirmationID:  s.ConfirmationID,
		VenueID:         v.VenueID,
		Date:            sel.Date,
		Time:            sel.Time,
		ResourceID:      sel.ResourceID,
		PaymentMethodID: sel.PaymentMethodID,
		TotalPrice:      v.EffectivePrice(slot),
	}

	receipt, err := bs.gateway.Charge(ctx, payment.Charge{
		BookingID:       c.ConfirmationID,
		VenueID:         c.VenueID,
		Date:            c.Date,
		Time:            c.Time,
		ResourceID:      c.ResourceID,
		PaymentMethodID: c.PaymentMethodID,
		Amount:          c.TotalPrice,
		Currency:        CURRENCY_VND,
	})
	if err != nil {
		bs.log.WithError(err).WithField("session_id", sessionID).Warn("Payment failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	c.PaymentRef = receipt.Reference
	c.ConfirmedAt = bs.clock.Now()

	bs.log.WithFields(logrus.Fields{
		"confirmation_id": c.ConfirmationID,
		"venue_id":        c.VenueID,
		"date":            c.Date,
		"time":            c.Time,
		"resource_id":     c.ResourceID,
		"payment_method":  c.PaymentMethodID,
		"total_price":     c.TotalPrice,
		"payment_ref":     c.PaymentRef,
	}).Info("Booking confirmed")
	bs.metrics.BookingConfirmed(c.PaymentMethodID)
	bs.metrics.SessionEvent("confirmed")

	if err := bs.sessionDao.DeleteSession(sessionID); err != nil {
		bs.log.WithError(err).Warnf("Failed to delete confirmed session %s", sessionID)
	}
	return c, nil
}

// Close discards a session.
func (bs *BookingService) Close(sessionID string) error {
	if _, err := bs.getSession(sessionID); err != nil {
		return err
	}
	if err := bs.sessionDao.DeleteSession(sessionID); err != nil {
		return err
	}
	bs.metrics.SessionEvent("closed")
	bs.log.WithField("session_id", sessionID).Info("Booking session closed")
	return nil
}

func (bs *BookingService) getSession(sessionID string) (*booking.Session, error) {
	s, err := bs.sessionDao.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	return s, nil
}

func (bs *BookingService) load(sessionID string) (*booking.Session, *venue.Venue, error) {
	s, err := bs.getSession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	v, err := bs.venues.GetVenue(s.VenueID)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

// apply validates value for field against the venue and updates sel.
func (bs *BookingService) apply(v *venue.Venue, sel *booking.Selection, field booking.Field, value string) error {
	step := field.Step()
	if step == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if step > sel.CurrentStep() {
		return fmt.Errorf("%w: %s needs step %d first", ErrStepOutOfOrder, field, sel.CurrentStep())
	}

	switch field {
	case booking.FieldDate:
		past, err := util.IsPast(bs.clock, value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		if past {
			return fmt.Errorf("%w: %s", ErrDateInPast, value)
		}
		if v.AvailabilityFor(value) == nil {
			return fmt.Errorf("%w: no schedule for %s", ErrInvalidDate, value)
		}
	case booking.FieldTime:
		slot, ok := v.SlotAt(sel.Date, value)
		if !ok || !slot.IsAvailable {
			return fmt.Errorf("%w: %s %s", ErrSlotUnavailable, sel.Date, value)
		}
	case booking.FieldResource:
		if _, ok := v.Resource(value); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownResource, value)
		}
	case booking.FieldPayment:
		if _, ok := booking.LookupPaymentMethod(value); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, value)
		}
	}

	sel.Set(field, value)
	if field == booking.FieldTime && bs.cfg.AutoSelectResource && len(v.Resources) > 0 {
		sel.SetResource(v.Resources[0].ResourceID)
	}
	return nil
}

func (bs *BookingService) view(v *venue.Venue, s *booking.Session) *BookingView {
	sel := s.Selection
	view := &BookingView{
		SessionID:   s.SessionID,
		VenueID:     v.VenueID,
		VenueName:   v.VenueName,
		Selection:   sel,
		CurrentStep: sel.CurrentStep(),
		Steps:       sel.Steps(),
		Options:     bs.options(v, sel),
	}
	if sel.Time != "" {
		if slot, ok := v.SlotAt(sel.Date, sel.Time); ok {
			total := v.EffectivePrice(slot)
			view.TotalPrice = &total
		}
	}
	return view
}

func (bs *BookingService) options(v *venue.Venue, sel booking.Selection) []BookingOption {
	opts := []BookingOption{}
	switch sel.CurrentStep() {
	case booking.StepDate:
		for _, date := range v.Dates() {
			if util.IsDateAvailable(bs.clock, date) && len(v.AvailableSlots(date)) > 0 {
				opts = append(opts, BookingOption{Value: date})
			}
		}
	case booking.StepTime:
		for _, slot := range v.AvailableSlots(sel.Date) {
			p := v.EffectivePrice(slot)
			opts = append(opts, BookingOption{Value: slot.Time, Price: &p})
		}
	case booking.StepResource:
		for _, r := range v.Resources {
			opts = append(opts, BookingOption{Value: r.ResourceID, Label: r.Name})
		}
	case booking.StepPayment:
		for _, m := range booking.PaymentMethods() {
			opts = append(opts, BookingOption{Value: m.ID, Label: m.NameKey})
		}
	}
	return opts
}
