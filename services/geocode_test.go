package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) (*Geocoder, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewGeocoder("test-key", server.URL, 5*time.Second), &calls
}

func TestLookup_EmptyLocationRejectedBeforeNetwork(t *testing.T) {
	geocoder, calls := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	for _, location := range []string{"", "   ", "\t\n"} {
		_, err := geocoder.Lookup(context.Background(), location)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidInput", location, err)
		}
	}

	if *calls != 0 {
		t.Errorf("Expected no network calls for empty locations, got %d", *calls)
	}
}

func TestLookup_MissingAPIKey(t *testing.T) {
	geocoder := NewGeocoder("", "http://unused", 5*time.Second)

	_, err := geocoder.Lookup(context.Background(), "London")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Lookup() error = %v, want ErrNotConfigured", err)
	}
}

func TestLookup_NoResultsIsNotFound(t *testing.T) {
	geocoder, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [], "status": "ZERO_RESULTS"}`))
	})

	_, err := geocoder.Lookup(context.Background(), "Nowhereville")
	if !IsNotFound(err) {
		t.Fatalf("Lookup() error = %v, want NotFoundError", err)
	}
}

func TestLookup_RoundsToFourDecimals(t *testing.T) {
	geocoder, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "New York, NY" {
			t.Errorf("address param = %q, want %q", got, "New York, NY")
		}
		w.Write([]byte(`{"results":[{"geometry":{"location":{"lat":40.712775,"lng":-74.005973}}}],"status":"OK"}`))
	})

	coord, err := geocoder.Lookup(context.Background(), "New York, NY")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}

	if coord.Latitude != 40.7128 {
		t.Errorf("Latitude = %v, want 40.7128", coord.Latitude)
	}
	if coord.Longitude != -74.0060 {
		t.Errorf("Longitude = %v, want -74.0060", coord.Longitude)
	}
}

func TestLookup_UpstreamFailurePreservesStatus(t *testing.T) {
	geocoder, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	})

	_, err := geocoder.Lookup(context.Background(), "Paris")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Lookup() error = %v, want UpstreamError", err)
	}
	if ue.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", ue.StatusCode)
	}
}
