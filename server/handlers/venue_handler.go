package handlers

import (
    "bytes"
    "fmt"
    "net/http"
    "net/url"
    "strconv"

    "xnova-server/i18n"
    "xnova-server/models"
    "xnova-server/models/venue"
    "xnova-server/util"

    "github.com/gorilla/mux"
    "github.com/sirupsen/logrus"
)

const (
    LAT_QUERY_ARG     = "lat"
    LON_QUERY_ARG     = "lon"
    RADIUS_QUERY_ARG  = "radius"
    VERBOSE_QUERY_ARG = "verbose"
    DAYS_QUERY_ARG    = "days"

    VENUE_ID_PATH_VAR = "venueId"

    DEFAULT_DISPLAY_DAYS = 7
)

// VenueFinder is the read side of the venue catalogue.
type VenueFinder interface {
    Search(c models.FilterCriteria) ([]models.VenueMatch, error)
    GetVenue(venueId string) (*venue.Venue, error)
    GetVenuesNearby(lat, lon, radius float64) ([]venue.Venue, error)
    AvailableTimes(date string) ([]string, error)
}

// VenueCard is one search result as the listing shows it.
type VenueCard struct {
    VenueID        string   `json:"venue_id"`
    VenueName      string   `json:"venue_name"`
    VenueLocation  string   `json:"venue_location"`
    VenueDistance  string   `json:"venue_distance"`
    VenueImage     string   `json:"venue_image,omitempty"`
    VenueType      string   `json:"venue_type"`
    Rating         float64  `json:"rating"`
    Reviews        int      `json:"reviews"`
    Amenities      []string `json:"amenities"`
    PriceMin       int64    `json:"price_min"`
    PriceMax       int64    `json:"price_max"`
    AvailableTimes []string `json:"available_times"`
}

type SearchResponse struct {
    Date          string      `json:"date"`
    DisplayDate   string      `json:"display_date"`
    Filters       url.Values  `json:"filters"`
    ActiveFilters int         `json:"active_filters"`
    Count         int         `json:"count"`
    Empty         bool        `json:"empty"`
    Message       string      `json:"message,omitempty"`
    Results       []VenueCard `json:"results"`
}

type SlotPrice struct {
    Time        string `json:"time"`
    IsAvailable bool   `json:"is_available"`
    Price       int64  `json:"price"`
}

type AvailabilityResponse struct {
    VenueID     string      `json:"venue_id"`
    Date        string      `json:"date"`
    DisplayDate string      `json:"display_date"`
    Slots       []SlotPrice `json:"slots"`
}

type TimeSlotsResponse struct {
    Date  string   `json:"date"`
    Times []string `json:"times"`
}

type DateOption struct {
    Date  string `json:"date"`
    Label string `json:"label"`
}

type VenueHandler struct {
    venues  VenueFinder
    clock   util.Clock
    maxDays int
    log     logrus.FieldLogger
}

// NewVenueHandler builds the handler. maxDays bounds /v1/dates to the window
// the catalogue covers.
func NewVenueHandler(venues VenueFinder, clock util.Clock, maxDays int, log logrus.FieldLogger) *VenueHandler {
    return &VenueHandler{
        venues:  venues,
        clock:   clock,
        maxDays: maxDays,
        log:     log.WithField("component", "VenueHandler"),
    }
}

// SearchVenues handles GET /v1/venues
func (h *VenueHandler) SearchVenues(w http.ResponseWriter, r *http.Request) {
    // 1) Parse query args
    c, err := models.FromValues(r.URL.Query())
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    date, ok := h.dateArg(w, c.SelectedDate)
    if !ok {
        return
    }
    c.SelectedDate = date
    tr := translatorFor(r)

    // 2) Filter the current catalogue
    matches, err := h.venues.Search(c)
    if err != nil {
        writeError(w, h.log, err)
        return
    }

    // 3) Transform into cards
    resp := SearchResponse{
        Date:          date,
        DisplayDate:   h.displayDate(tr, date),
        Filters:       c.ToValues(),
        ActiveFilters: c.ActiveCount(),
        Count:         len(matches),
        Empty:         len(matches) == 0,
        Results:       make([]VenueCard, 0, len(matches)),
    }
    if resp.Empty {
        resp.Message = tr.T("venues.empty")
    }
    for _, m := range matches {
        resp.Results = append(resp.Results, toCard(m))
    }

    // 4) Write JSON
    writeJSON(w, h.log, http.StatusOK, resp)
}

func toCard(m models.VenueMatch) VenueCard {
    pr, _ := m.PriceRange()
    v := m.Venue
    return VenueCard{
        VenueID:        v.VenueID,
        VenueName:      v.VenueName,
        VenueLocation:  v.VenueLocation,
        VenueDistance:  v.VenueDistance,
        VenueImage:     v.VenueImage,
        VenueType:      v.VenueType,
        Rating:         v.Rating,
        Reviews:        v.Reviews,
        Amenities:      v.Amenities,
        PriceMin:       pr.Min,
        PriceMax:       pr.Max,
        AvailableTimes: m.Times(),
    }
}

// GetVenuesNearby handles GET /v1/venues/nearby
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
    // 1) Parse query args
    lat, lon, radius, verbose, ok := h.parseArgs(r.URL.Query(), w)
    if !ok {
        return // error already written
    }

    // 2) Load geo-indexed venues
    venues, err := h.venues.GetVenuesNearby(lat, lon, radius)
    if err != nil {
        writeError(w, h.log, err)
        return
    }

    // 3) Transform according to verbose flag
    if !verbose {
        for i := range venues {
            venues[i].Availability = nil
        }
    }

    // 4) Write JSON
    writeJSON(w, h.log, http.StatusOK, venues)
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (
    lat, lon, radius float64, verbose bool, ok bool,
) {
    var err error

    lat, err = parseArgFloat64(vals.Get(LAT_QUERY_ARG))
    if err != nil || lat < -90 || lat > 90 {
        http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
        return
    }
    lon, err = parseArgFloat64(vals.Get(LON_QUERY_ARG))
    if err != nil || lon < -180 || lon > 180 {
        http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
        return
    }
    radius, err = parseArgFloat64(vals.Get(RADIUS_QUERY_ARG))
    if err != nil || radius <= 0 {
        http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
        return
    }
    verbose = false
    if v := vals.Get(VERBOSE_QUERY_ARG); v != "" {
        verbose, _ = strconv.ParseBool(v)
    }
    ok = true
    return
}

// GetVenue handles GET /v1/venues/{venueId}. The availability calendar is
// only included with verbose=true.
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
    v, err := h.venues.GetVenue(mux.Vars(r)[VENUE_ID_PATH_VAR])
    if err != nil {
        writeError(w, h.log, err)
        return
    }
    if verbose, _ := strconv.ParseBool(r.URL.Query().Get(VERBOSE_QUERY_ARG)); !verbose {
        v.Availability = nil
    }
    writeJSON(w, h.log, http.StatusOK, v)
}

// GetAvailability handles GET /v1/venues/{venueId}/availability
func (h *VenueHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
    date, ok := h.dateArg(w, r.URL.Query().Get(models.DATE_QUERY_ARG))
    if !ok {
        return
    }
    v, err := h.venues.GetVenue(mux.Vars(r)[VENUE_ID_PATH_VAR])
    if err != nil {
        writeError(w, h.log, err)
        return
    }

    // a date without an entry has no slots, which is not an error
    slots := v.AvailabilityFor(date)
    resp := AvailabilityResponse{
        VenueID:     v.VenueID,
        Date:        date,
        DisplayDate: h.displayDate(translatorFor(r), date),
        Slots:       make([]SlotPrice, 0, len(slots)),
    }
    for _, s := range slots {
        resp.Slots = append(resp.Slots, SlotPrice{Time: s.Time, IsAvailable: s.IsAvailable, Price: v.EffectivePrice(s)})
    }
    writeJSON(w, h.log, http.StatusOK, resp)
}

// GetAvailabilityChart handles GET /v1/venues/{venueId}/availability/chart
func (h *VenueHandler) GetAvailabilityChart(w http.ResponseWriter, r *http.Request) {
    date, ok := h.dateArg(w, r.URL.Query().Get(models.DATE_QUERY_ARG))
    if !ok {
        return
    }
    v, err := h.venues.GetVenue(mux.Vars(r)[VENUE_ID_PATH_VAR])
    if err != nil {
        writeError(w, h.log, err)
        return
    }

    var buf bytes.Buffer
    if err := util.RenderAvailabilityChart(&buf, *v, date); err != nil {
        writeError(w, h.log, fmt.Errorf("failed to render chart for venue %s: %w", v.VenueID, err))
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    if _, err := buf.WriteTo(w); err != nil {
        h.log.WithError(err).Error("Error writing chart")
    }
}

// GetTimeSlots handles GET /v1/timeslots
func (h *VenueHandler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
    date, ok := h.dateArg(w, r.URL.Query().Get(models.DATE_QUERY_ARG))
    if !ok {
        return
    }
    times, err := h.venues.AvailableTimes(date)
    if err != nil {
        writeError(w, h.log, err)
        return
    }
    writeJSON(w, h.log, http.StatusOK, TimeSlotsResponse{Date: date, Times: times})
}

// GetDates handles GET /v1/dates
func (h *VenueHandler) GetDates(w http.ResponseWriter, r *http.Request) {
    days := DEFAULT_DISPLAY_DAYS
    if raw := r.URL.Query().Get(DAYS_QUERY_ARG); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n <= 0 {
            http.Error(w, "Invalid argument "+DAYS_QUERY_ARG, http.StatusBadRequest)
            return
        }
        days = n
    }
    if h.maxDays > 0 && days > h.maxDays {
        days = h.maxDays
    }

    tr := translatorFor(r)
    dates := util.NextDays(h.clock, days)
    out := make([]DateOption, 0, len(dates))
    for _, d := range dates {
        out = append(out, DateOption{Date: d, Label: h.displayDate(tr, d)})
    }
    writeJSON(w, h.log, http.StatusOK, out)
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "pong"})
}

// dateArg defaults an empty date to today and rejects malformed ones.
func (h *VenueHandler) dateArg(w http.ResponseWriter, raw string) (string, bool) {
    if raw == "" {
        return util.Today(h.clock), true
    }
    if _, err := util.ParseDate(h.clock, raw); err != nil {
        http.Error(w, "Invalid argument "+models.DATE_QUERY_ARG, http.StatusBadRequest)
        return "", false
    }
    return raw, true
}

func (h *VenueHandler) displayDate(tr *i18n.Translator, date string) string {
    label, err := util.FormatDisplayDate(h.clock, tr, date)
    if err != nil {
        return date
    }
    return label
}
