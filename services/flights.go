package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Google Flights trip type discriminator, derived from the presence of
// a return date.
const (
	TripRoundTrip = 1
	TripOneWay    = 2
)

// FlexInt is an int that also accepts numeric-looking JSON: "2", 2.0
// and 2 all decode to 2.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = FlexInt(n)
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", raw)
	}
	*f = FlexInt(int(v))
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}

// FlightSearchRequest is a flight search. DepartureToken switches the
// vendor call to fetching the return leg of an earlier outbound result.
type FlightSearchRequest struct {
	DepartureID    string  `json:"departure_id" binding:"required"`
	ArrivalID      string  `json:"arrival_id" binding:"required"`
	OutboundDate   string  `json:"outbound_date" binding:"required"`
	Adults         FlexInt `json:"adults"`
	Children       FlexInt `json:"children"`
	ReturnDate     string  `json:"return_date,omitempty"`
	DepartureToken string  `json:"departure_token,omitempty"`
}

// TripType derives the round-trip/one-way discriminator from the
// presence of a return date.
func (r *FlightSearchRequest) TripType() int {
	if strings.TrimSpace(r.ReturnDate) != "" {
		return TripRoundTrip
	}
	return TripOneWay
}

// BookingOptionsRequest looks up booking options for one flight of an
// earlier search. The original search parameters ride along so the
// vendor sees a consistent query.
type BookingOptionsRequest struct {
	BookingToken   string              `json:"booking_token" binding:"required"`
	OriginalParams FlightSearchRequest `json:"original_params" binding:"required"`
}

// FlightLeg is one segment of a flight.
type FlightLeg struct {
	DepartureAirport AirportTime `json:"departure_airport"`
	ArrivalAirport   AirportTime `json:"arrival_airport"`
	Duration         int         `json:"duration"`
	Airline          string      `json:"airline"`
	AirlineLogo      string      `json:"airline_logo,omitempty"`
	FlightNumber     string      `json:"flight_number,omitempty"`
	TravelClass      string      `json:"travel_class,omitempty"`
}

type AirportTime struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Time string `json:"time,omitempty"`
}

// Flight is one priced option: an ordered chain of legs plus the
// continuation tokens that enable follow-up queries.
type Flight struct {
	Legs           []FlightLeg `json:"flights"`
	Layovers       []Layover   `json:"layovers,omitempty"`
	TotalDuration  int         `json:"total_duration"`
	Price          int         `json:"price"`
	Type           string      `json:"type,omitempty"`
	AirlineLogo    string      `json:"airline_logo,omitempty"`
	DepartureToken string      `json:"departure_token,omitempty"`
	BookingToken   string      `json:"booking_token,omitempty"`
}

type Layover struct {
	Duration int    `json:"duration"`
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
}

// FlightResults is the reshaped vendor response.
type FlightResults struct {
	BestFlights   []Flight        `json:"best_flights"`
	OtherFlights  []Flight        `json:"other_flights"`
	PriceInsights json.RawMessage `json:"price_insights,omitempty"`
	Airports      json.RawMessage `json:"airports,omitempty"`
	Currency      string          `json:"currency,omitempty"`
}

// AllFlights merges best and other flights in display order.
func (r *FlightResults) AllFlights() []Flight {
	if r == nil {
		return nil
	}
	all := make([]Flight, 0, len(r.BestFlights)+len(r.OtherFlights))
	all = append(all, r.BestFlights...)
	all = append(all, r.OtherFlights...)
	return all
}

// BookingOption is one way to buy a flight, as reported by the vendor.
type BookingOption struct {
	Together  *BookingSeller `json:"together,omitempty"`
	Departing *BookingSeller `json:"departing,omitempty"`
	Returning *BookingSeller `json:"returning,omitempty"`
}

type BookingSeller struct {
	BookWith      string   `json:"book_with"`
	Price         int      `json:"price"`
	MarketedAs    []string `json:"marketed_as,omitempty"`
	BaggagePrices []string `json:"baggage_prices,omitempty"`
}

// BookingResults is the reshaped booking-options response.
type BookingResults struct {
	SelectedFlights []Flight        `json:"selected_flights,omitempty"`
	BookingOptions  []BookingOption `json:"booking_options"`
	Currency        string          `json:"currency,omitempty"`
}

// FlightsClient queries the Google Flights engine via SerpAPI.
type FlightsClient struct {
	apiKey     string
	baseURL    string
	gl         string
	hl         string
	currency   string
	httpClient *http.Client
}

func NewFlightsClient(apiKey, baseURL, gl, hl, currency string, timeout time.Duration) *FlightsClient {
	return &FlightsClient{
		apiKey:   apiKey,
		baseURL:  baseURL,
		gl:       gl,
		hl:       hl,
		currency: currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// serpResponse carries both result shapes plus the vendor error field;
// which keys are present decides the outcome.
type serpResponse struct {
	BestFlights      []Flight        `json:"best_flights"`
	OtherFlights     []Flight        `json:"other_flights"`
	BookingOptions   []BookingOption `json:"booking_options"`
	SelectedFlights  []Flight        `json:"selected_flights"`
	PriceInsights    json.RawMessage `json:"price_insights"`
	Airports         json.RawMessage `json:"airports"`
	SearchParameters struct {
		Currency string `json:"currency"`
	} `json:"search_parameters"`
	Error string `json:"error"`
}

// Search runs a flight search. A response with neither a flights list
// nor a vendor error is normalized to a "no flights found" outcome.
func (c *FlightsClient) Search(ctx context.Context, req *FlightSearchRequest) (*FlightResults, error) {
	if err := validateSearch(req); err != nil {
		return nil, err
	}

	query := c.baseQuery()
	applySearchParams(query, req)

	result, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(result.BestFlights) == 0 && len(result.OtherFlights) == 0 {
		return nil, &NotFoundError{Message: "no flights found for the given parameters"}
	}

	return &FlightResults{
		BestFlights:   result.BestFlights,
		OtherFlights:  result.OtherFlights,
		PriceInsights: result.PriceInsights,
		Airports:      result.Airports,
		Currency:      orDefault(result.SearchParameters.Currency, c.currency),
	}, nil
}

// BookingOptions fetches booking options for a flight identified by its
// booking token, reusing the original search parameters.
func (c *FlightsClient) BookingOptions(ctx context.Context, req *BookingOptionsRequest) (*BookingResults, error) {
	if strings.TrimSpace(req.BookingToken) == "" {
		return nil, fmt.Errorf("%w: booking_token cannot be empty", ErrInvalidInput)
	}
	if err := validateSearch(&req.OriginalParams); err != nil {
		return nil, err
	}

	query := c.baseQuery()
	applySearchParams(query, &req.OriginalParams)
	query.Set("booking_token", req.BookingToken)
	// a booking lookup never carries a continuation to the return leg
	query.Del("departure_token")

	result, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(result.BookingOptions) == 0 {
		return nil, &NotFoundError{Message: "no booking options found for the given booking token"}
	}

	return &BookingResults{
		SelectedFlights: result.SelectedFlights,
		BookingOptions:  result.BookingOptions,
		Currency:        orDefault(result.SearchParameters.Currency, c.currency),
	}, nil
}

func (c *FlightsClient) baseQuery() url.Values {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("engine", "google_flights")
	query.Set("hl", c.hl)
	query.Set("gl", c.gl)
	query.Set("currency", c.currency)
	return query
}

func applySearchParams(query url.Values, req *FlightSearchRequest) {
	query.Set("departure_id", req.DepartureID)
	query.Set("arrival_id", req.ArrivalID)
	query.Set("outbound_date", req.OutboundDate)
	query.Set("adults", strconv.Itoa(adultsOrDefault(req.Adults)))
	query.Set("children", strconv.Itoa(req.Children.Int()))
	query.Set("type", strconv.Itoa(req.TripType()))
	if req.ReturnDate != "" {
		query.Set("return_date", req.ReturnDate)
	}
	if req.DepartureToken != "" {
		query.Set("departure_token", req.DepartureToken)
	}
}

func (c *FlightsClient) fetch(ctx context.Context, query url.Values) (*serpResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: SERPAPI_API_KEY not set", ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "flight search failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var result serpResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &UpstreamError{Message: "failed to parse flight response: " + err.Error()}
	}
	if result.Error != "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: result.Error}
	}
	return &result, nil
}

func validateSearch(req *FlightSearchRequest) error {
	if strings.TrimSpace(req.DepartureID) == "" || strings.TrimSpace(req.ArrivalID) == "" {
		return fmt.Errorf("%w: departure_id and arrival_id are required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.OutboundDate) == "" {
		return fmt.Errorf("%w: outbound_date is required", ErrInvalidInput)
	}
	return nil
}

func adultsOrDefault(adults FlexInt) int {
	if adults.Int() <= 0 {
		return 1
	}
	return adults.Int()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
