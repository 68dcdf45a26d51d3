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
	"sync"
	"time"
)

// Airports are searched within a fixed radius around the geocoded point.
const airportSearchRadiusKm = 200

// Cached tokens are treated as expired this long before their actual
// expiry so a token never dies mid-request.
const tokenExpiryMargin = 10 * time.Second

// Airport is a vendor airport record. IATACode is what flight searches
// need; the rest is kept for display.
type Airport struct {
	Name         string  `json:"name"`
	DetailedName string  `json:"detailedName,omitempty"`
	IATACode     string  `json:"iataCode"`
	GeoCode      GeoCode `json:"geoCode"`
	Address      struct {
		CityName    string `json:"cityName,omitempty"`
		CountryName string `json:"countryName,omitempty"`
	} `json:"address"`
	Distance struct {
		Value int    `json:"value"`
		Unit  string `json:"unit"`
	} `json:"distance"`
	Relevance float64 `json:"relevance,omitempty"`
}

type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AmadeusClient talks to the Amadeus self-service APIs using a cached
// OAuth2 client-credentials token. The cache holds a single token; the
// mutex is held across the check-and-refresh so concurrent first uses
// perform exactly one exchange.
type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusClient(clientID, clientSecret, baseURL string, timeout time.Duration) *AmadeusClient {
	return &AmadeusClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Token returns a valid bearer token, reusing the cached one while it
// is still inside the validity window (expiry minus the safety margin).
func (c *AmadeusClient) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.accessToken, nil
	}
	if err := c.refreshToken(ctx); err != nil {
		return "", err
	}
	return c.accessToken, nil
}

// refreshToken performs the client-credentials exchange. Caller holds c.mu.
func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	if c.clientID == "" || c.clientSecret == "" {
		return fmt.Errorf("%w: AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set", ErrNotConfigured)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Message: "token request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{StatusCode: resp.StatusCode, Message: "token request failed: " + string(body)}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return &UpstreamError{Message: "failed to parse token response: " + err.Error()}
	}

	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	return nil
}

type airportListResponse struct {
	Data []Airport `json:"data"`
}

// NearbyAirports looks up airports within the fixed search radius of a
// coordinate. An empty result list is a not-found outcome; any non-2xx
// response is an upstream error preserving the vendor status code.
func (c *AmadeusClient) NearbyAirports(ctx context.Context, coord Coordinate) ([]Airport, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', 4, 64))
	query.Set("radius", strconv.Itoa(airportSearchRadiusKm))

	reqURL := c.baseURL + "/v1/reference-data/locations/airports?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "airport search failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var result airportListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &UpstreamError{Message: "failed to parse airport response: " + err.Error()}
	}

	if len(result.Data) == 0 {
		return nil, &NotFoundError{
			Message: fmt.Sprintf("no airport found near %.4f,%.4f", coord.Latitude, coord.Longitude),
		}
	}
	return result.Data, nil
}
