package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	amadeusTestURL = "https://test.api.amadeus.com"
	amadeusProdURL = "https://api.amadeus.com"
	serpBaseURL    = "https://serpapi.com/search.json"
	geocodeBaseURL = "https://maps.googleapis.com"
)

// Config holds the application configuration, all sourced from
// environment variables.
type Config struct {
	Port         string
	FrontendURLs []string

	GeocodeAPIKey  string
	GeocodeBaseURL string

	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string

	SerpAPIKey   string
	SerpBaseURL  string
	SerpGL       string
	SerpHL       string
	SerpCurrency string

	// HTTPTimeout bounds geocode, token and airport calls.
	// FlightTimeout bounds SerpAPI flight searches, which are slower.
	HTTPTimeout   time.Duration
	FlightTimeout time.Duration

	// DatabaseURL is optional; the search-history store and itinerary
	// endpoints are disabled when it is empty.
	DatabaseURL string
}

// Load builds the configuration from environment variables.
func Load() *Config {
	amadeusBase := amadeusTestURL
	if os.Getenv("AMADEUS_ENV") == "production" {
		amadeusBase = amadeusProdURL
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		FrontendURLs: splitList(os.Getenv("FRONTEND_URL")),

		GeocodeAPIKey:  os.Getenv("GOOGLE_GEOLOCATION_API"),
		GeocodeBaseURL: geocodeBaseURL,

		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusBaseURL:      amadeusBase,

		SerpAPIKey:   os.Getenv("SERPAPI_API_KEY"),
		SerpBaseURL:  serpBaseURL,
		SerpGL:       getEnv("SERPAPI_GL", "in"),
		SerpHL:       getEnv("SERPAPI_HL", "en"),
		SerpCurrency: getEnv("SERPAPI_CURRENCY", "INR"),

		HTTPTimeout:   getEnvAsSeconds("HTTP_TIMEOUT", 30),
		FlightTimeout: getEnvAsSeconds("FLIGHT_SEARCH_TIMEOUT", 60),

		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	seconds := defaultSeconds
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			seconds = n
		}
	}
	return time.Duration(seconds) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
