package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Coordinate is a geocoded location, rounded to 4 decimal places.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves free-text locations to coordinates via the Google
// Geocoding API.
type Geocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeocoder(apiKey, baseURL string, timeout time.Duration) *Geocoder {
	return &Geocoder{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Lookup geocodes a location. An empty location is rejected before any
// network call; a response with no results is a not-found outcome.
func (g *Geocoder) Lookup(ctx context.Context, location string) (*Coordinate, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: location cannot be empty", ErrInvalidInput)
	}
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_GEOLOCATION_API not set", ErrNotConfigured)
	}

	query := url.Values{}
	query.Set("address", location)
	query.Set("key", g.apiKey)

	reqURL := g.baseURL + "/maps/api/geocode/json?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "geocoding request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var result geocodeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &UpstreamError{Message: "failed to parse geocoding response: " + err.Error()}
	}

	if len(result.Results) == 0 {
		return nil, &NotFoundError{Message: "no geolocation data found for " + location}
	}

	loc := result.Results[0].Geometry.Location
	return &Coordinate{
		Latitude:  round4(loc.Lat),
		Longitude: round4(loc.Lng),
	}, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
