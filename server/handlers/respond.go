package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"xnova-server/i18n"
	"xnova-server/models"
	"xnova-server/models/match"
	services "xnova-server/service"

	"github.com/sirupsen/logrus"
)

const LANG_QUERY_ARG = "lang"

// statusFor maps service and model errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidFilter),
		errors.Is(err, models.ErrInvalidTimeSelector),
		errors.Is(err, match.ErrInvalidSkill),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrDateInPast),
		errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrUnknownResource),
		errors.Is(err, services.ErrUnknownPaymentMethod),
		errors.Is(err, services.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrVenueNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrStepOutOfOrder),
		errors.Is(err, services.ErrIncomplete):
		return http.StatusConflict
	case errors.Is(err, services.ErrPaymentFailed):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrCatalogUnavailable),
		errors.Is(err, services.ErrMatchesUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Internal errors are logged and
// hidden from the client.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
		http.Error(w, "Internal server error", status)
		return
	}
	log.WithError(err).Debugf("Request rejected with %d", status)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

// translatorFor picks the response language from ?lang= or Accept-Language.
func translatorFor(r *http.Request) *i18n.Translator {
	raw := r.URL.Query().Get(LANG_QUERY_ARG)
	if raw == "" {
		raw = r.Header.Get("Accept-Language")
	}
	return i18n.New(i18n.ParseLanguage(raw))
}

func parseArgFloat64(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}
