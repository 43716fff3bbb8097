package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"xnova-server/i18n"
	"xnova-server/models/booking"
	services "xnova-server/service"
	"xnova-server/util"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	SESSION_ID_PATH_VAR = "sessionId"
	FIELD_PATH_VAR      = "field"
)

// BookingWizard runs booking sessions.
type BookingWizard interface {
	Open(venueID, preDate, preTime string) (*services.BookingView, error)
	Get(sessionID string) (*services.BookingView, error)
	Set(sessionID string, field booking.Field, value string) (*services.BookingView, error)
	Confirm(ctx context.Context, sessionID string) (*booking.Confirmation, error)
	Close(sessionID string) error
}

type OpenSessionRequest struct {
	VenueID string `json:"venue_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type SetFieldRequest struct {
	Value string `json:"value"`
}

// StepResponse is a wizard step with its translated title.
type StepResponse struct {
	Step      booking.Step `json:"step"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
}

// SessionResponse is the wizard view with labels in the caller's language.
type SessionResponse struct {
	SessionID   string                   `json:"session_id"`
	VenueID     string                   `json:"venue_id"`
	VenueName   string                   `json:"venue_name"`
	Selection   booking.Selection        `json:"selection"`
	CurrentStep booking.Step             `json:"current_step"`
	Title       string                   `json:"title"`
	Steps       []StepResponse           `json:"steps"`
	Options     []services.BookingOption `json:"options"`
	TotalPrice  *int64                   `json:"total_price,omitempty"`
}

type BookingHandler struct {
	wizard BookingWizard
	clock  util.Clock
	log    logrus.FieldLogger
}

func NewBookingHandler(wizard BookingWizard, clock util.Clock, log logrus.FieldLogger) *BookingHandler {
	return &BookingHandler{
		wizard: wizard,
		clock:  clock,
		log:    log.WithField("component", "BookingHandler"),
	}
}

// OpenSession handles POST /v1/bookings/sessions
func (h *BookingHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VenueID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.wizard.Open(req.VenueID, req.Date, req.Time)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, h.present(translatorFor(r), view))
}

// GetSession handles GET /v1/bookings/sessions/{sessionId}
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.wizard.Get(mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, h.present(translatorFor(r), view))
}

// SetField handles PUT /v1/bookings/sessions/{sessionId}/{field}
func (h *BookingHandler) SetField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.wizard.Set(vars[SESSION_ID_PATH_VAR], booking.Field(vars[FIELD_PATH_VAR]), req.Value)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, h.present(translatorFor(r), view))
}

// ConfirmSession handles POST /v1/bookings/sessions/{sessionId}/confirm
func (h *BookingHandler) ConfirmSession(w http.ResponseWriter, r *http.Request) {
	c, err := h.wizard.Confirm(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, c)
}

// CloseSession handles DELETE /v1/bookings/sessions/{sessionId}
func (h *BookingHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.wizard.Close(mux.Vars(r)[SESSION_ID_PATH_VAR]); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) present(tr *i18n.Translator, view *services.BookingView) SessionResponse {
	resp := SessionResponse{
		SessionID:   view.SessionID,
		VenueID:     view.VenueID,
		VenueName:   view.VenueName,
		Selection:   view.Selection,
		CurrentStep: view.CurrentStep,
		Title:       tr.T(view.CurrentStep.TitleKey()),
		Steps:       make([]StepResponse, 0, len(view.Steps)),
		Options:     make([]services.BookingOption, 0, len(view.Options)),
		TotalPrice:  view.TotalPrice,
	}
	for _, s := range view.Steps {
		resp.Steps = append(resp.Steps, StepResponse{Step: s.Step, Title: tr.T(s.Step.TitleKey()), Completed: s.Completed})
	}
	for _, o := range view.Options {
		switch view.CurrentStep {
		case booking.StepDate:
			if label, err := util.FormatDisplayDate(h.clock, tr, o.Value); err == nil {
				o.Label = label
			}
		case booking.StepPayment:
			o.Label = tr.T(o.Label)
		}
		resp.Options = append(resp.Options, o)
	}
	return resp
}
