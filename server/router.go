package server

import (
	"net/http"

	"xnova-server/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// VenueRoutes serves the catalogue endpoints.
type VenueRoutes interface {
	SearchVenues(w http.ResponseWriter, r *http.Request)
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	GetVenue(w http.ResponseWriter, r *http.Request)
	GetAvailability(w http.ResponseWriter, r *http.Request)
	GetAvailabilityChart(w http.ResponseWriter, r *http.Request)
	GetTimeSlots(w http.ResponseWriter, r *http.Request)
	GetDates(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// BookingRoutes serves the booking wizard endpoints.
type BookingRoutes interface {
	OpenSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	SetField(w http.ResponseWriter, r *http.Request)
	ConfirmSession(w http.ResponseWriter, r *http.Request)
	CloseSession(w http.ResponseWriter, r *http.Request)
}

// MatchRoutes serves the player-matching endpoints.
type MatchRoutes interface {
	SearchMatches(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler   VenueRoutes
	bookingHandler BookingRoutes
	matchHandler   MatchRoutes
	metrics        *metrics.Metrics
	log            logrus.FieldLogger
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler VenueRoutes,
	bookingHandler BookingRoutes,
	matchHandler MatchRoutes,
	m *metrics.Metrics,
	log logrus.FieldLogger,
	router *mux.Router) *Router {
	return &Router{
		venueHandler:   venueHandler,
		bookingHandler: bookingHandler,
		matchHandler:   matchHandler,
		metrics:        m,
		log:            log.WithField("component", "Router"),
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.metrics.Middleware, accessLog(r.log))

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
	if r.metrics != nil {
		r.router.Handle("/metrics", r.metrics.Handler()).Methods("GET")
	}

	// expects ?date=&search=&type=&location=&amenities=&min_rating=&max_price=&time=&sort=&lang=
	r.router.HandleFunc("/v1/venues", r.venueHandler.SearchVenues).Methods("GET")
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius km(float)}
	// nearby is registered before {venueId} so it is not taken for an id
	r.router.HandleFunc("/v1/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")
	r.router.HandleFunc("/v1/venues/{venueId}", r.venueHandler.GetVenue).Methods("GET")
	r.router.HandleFunc("/v1/venues/{venueId}/availability", r.venueHandler.GetAvailability).Methods("GET")
	r.router.HandleFunc("/v1/venues/{venueId}/availability/chart", r.venueHandler.GetAvailabilityChart).Methods("GET")
	r.router.HandleFunc("/v1/timeslots", r.venueHandler.GetTimeSlots).Methods("GET")
	r.router.HandleFunc("/v1/dates", r.venueHandler.GetDates).Methods("GET")

	// expects ?search=&skill={all|beginner|intermediate|advanced}&lang=
	r.router.HandleFunc("/v1/matches", r.matchHandler.SearchMatches).Methods("GET")

	r.router.HandleFunc("/v1/bookings/sessions", r.bookingHandler.OpenSession).Methods("POST")
	r.router.HandleFunc("/v1/bookings/sessions/{sessionId}", r.bookingHandler.GetSession).Methods("GET")
	r.router.HandleFunc("/v1/bookings/sessions/{sessionId}", r.bookingHandler.CloseSession).Methods("DELETE")
	r.router.HandleFunc("/v1/bookings/sessions/{sessionId}/confirm", r.bookingHandler.ConfirmSession).Methods("POST")
	r.router.HandleFunc("/v1/bookings/sessions/{sessionId}/{field}", r.bookingHandler.SetField).Methods("PUT")
}
