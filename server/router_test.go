package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"xnova-server/metrics"
	"xnova-server/util"

	"github.com/gorilla/mux"
)

// MockVenueHandler answers every route with its own name.
type MockVenueHandler struct{}

func reply(name string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(name + ":" + mux.Vars(r)["venueId"] + mux.Vars(r)["sessionId"] + mux.Vars(r)["field"]))
	}
}

func (h *MockVenueHandler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	reply("search")(w, r)
}
func (h *MockVenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	reply("nearby")(w, r)
}
func (h *MockVenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) { reply("venue")(w, r) }
func (h *MockVenueHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	reply("availability")(w, r)
}
func (h *MockVenueHandler) GetAvailabilityChart(w http.ResponseWriter, r *http.Request) {
	reply("chart")(w, r)
}
func (h *MockVenueHandler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	reply("timeslots")(w, r)
}
func (h *MockVenueHandler) GetDates(w http.ResponseWriter, r *http.Request) { reply("dates")(w, r) }
func (h *MockVenueHandler) Ping(w http.ResponseWriter, r *http.Request)     { reply("ping")(w, r) }

// MockBookingHandler is a mock implementation of BookingHandler.
type MockBookingHandler struct{}

func (h *MockBookingHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	reply("open")(w, r)
}
func (h *MockBookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	reply("get")(w, r)
}
func (h *MockBookingHandler) SetField(w http.ResponseWriter, r *http.Request) { reply("set")(w, r) }
func (h *MockBookingHandler) ConfirmSession(w http.ResponseWriter, r *http.Request) {
	reply("confirm")(w, r)
}
func (h *MockBookingHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	reply("close")(w, r)
}

// MockMatchHandler is a mock implementation of MatchHandler.
type MockMatchHandler struct{}

func (h *MockMatchHandler) SearchMatches(w http.ResponseWriter, r *http.Request) {
	reply("matches")(w, r)
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	router := mux.NewRouter()
	appRouter := NewRouter(&MockVenueHandler{}, &MockBookingHandler{}, &MockMatchHandler{}, metrics.New(), util.NopLogger(), router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{name: "Ping Route", method: "GET", path: "/ping", statusCode: http.StatusOK, response: "ping:"},
		{name: "Search Venues", method: "GET", path: "/v1/venues?date=2026-10-16", statusCode: http.StatusOK, response: "search:"},
		{name: "Get Venues Nearby", method: "GET", path: "/v1/venues/nearby", statusCode: http.StatusOK, response: "nearby:"},
		{name: "Get Venue", method: "GET", path: "/v1/venues/3", statusCode: http.StatusOK, response: "venue:3"},
		{name: "Get Availability", method: "GET", path: "/v1/venues/3/availability", statusCode: http.StatusOK, response: "availability:3"},
		{name: "Get Chart", method: "GET", path: "/v1/venues/3/availability/chart", statusCode: http.StatusOK, response: "chart:3"},
		{name: "Get Time Slots", method: "GET", path: "/v1/timeslots", statusCode: http.StatusOK, response: "timeslots:"},
		{name: "Get Dates", method: "GET", path: "/v1/dates", statusCode: http.StatusOK, response: "dates:"},
		{name: "Search Matches", method: "GET", path: "/v1/matches?skill=advanced", statusCode: http.StatusOK, response: "matches:"},
		{name: "Open Session", method: "POST", path: "/v1/bookings/sessions", statusCode: http.StatusOK, response: "open:"},
		{name: "Get Session", method: "GET", path: "/v1/bookings/sessions/abc", statusCode: http.StatusOK, response: "get:abc"},
		{name: "Set Field", method: "PUT", path: "/v1/bookings/sessions/abc/time", statusCode: http.StatusOK, response: "set:abctime"},
		{name: "Confirm", method: "POST", path: "/v1/bookings/sessions/abc/confirm", statusCode: http.StatusOK, response: "confirm:abc"},
		{name: "Close Session", method: "DELETE", path: "/v1/bookings/sessions/abc", statusCode: http.StatusOK, response: "close:abc"},
		{name: "Wrong Method", method: "POST", path: "/v1/venues", statusCode: http.StatusMethodNotAllowed},
		{name: "Invalid Route", method: "GET", path: "/invalid", statusCode: http.StatusNotFound},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := mux.NewRouter()
	NewRouter(&MockVenueHandler{}, &MockBookingHandler{}, &MockMatchHandler{}, metrics.New(), util.NopLogger(), router).RegisterRoutes()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/v1/venues/3", nil))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `route="/v1/venues/{venueId}"`) {
		t.Errorf("Expected request counter labelled by route template, got %s", rr.Body.String())
	}
}
