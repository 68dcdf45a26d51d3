package services

import (
	"strings"
	"testing"
)

func TestGeneratePDFBytes(t *testing.T) {
	data := PDFData{
		TravelerName: "A. Traveler",
		DepartureID:  "DEL",
		ArrivalID:    "BOM",
		OutboundDate: "2026-09-01",
		ReturnDate:   "2026-09-12",
		Currency:     "INR",
		Flight: Flight{
			Price:         4500,
			TotalDuration: 135,
			Legs: []FlightLeg{{
				DepartureAirport: AirportTime{ID: "DEL", Time: "2026-09-01 09:40"},
				ArrivalAirport:   AirportTime{ID: "BOM", Time: "2026-09-01 11:55"},
				Airline:          "IndiGo",
				FlightNumber:     "6E 2001",
				Duration:         135,
			}},
		},
	}

	pdfBytes, err := GeneratePDFBytes(data)
	if err != nil {
		t.Fatalf("GeneratePDFBytes() failed: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("GeneratePDFBytes() returned no data")
	}
	if !strings.HasPrefix(string(pdfBytes), "%PDF") {
		t.Errorf("Output does not look like a PDF: %q", pdfBytes[:8])
	}
}

func TestGeneratePDFBytes_DefaultsForMissingFields(t *testing.T) {
	pdfBytes, err := GeneratePDFBytes(PDFData{
		DepartureID:  "DEL",
		ArrivalID:    "BOM",
		OutboundDate: "2026-09-01",
		Flight:       Flight{Price: 100, TotalDuration: 60},
	})
	if err != nil {
		t.Fatalf("GeneratePDFBytes() failed: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("GeneratePDFBytes() returned no data")
	}
}
