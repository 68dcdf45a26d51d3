package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFData is everything the itinerary PDF needs about a selected flight.
type PDFData struct {
	TravelerName string
	DepartureID  string
	ArrivalID    string
	OutboundDate string
	ReturnDate   string
	Flight       Flight
	Currency     string
}

// GeneratePDFBytes renders a flight itinerary PDF and returns the raw
// bytes; nothing touches the filesystem.
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "FareScout", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Flight Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Traveler Info ─────────────────────────────────────────
	sectionHeader("Traveler Information")
	name := data.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	row("Name", name)
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	route := fmt.Sprintf("%s -> %s", data.DepartureID, data.ArrivalID)
	if data.ReturnDate != "" {
		route = fmt.Sprintf("%s -> %s -> %s", data.DepartureID, data.ArrivalID, data.DepartureID)
	}
	row("Route", route)
	row("Departure", fmtDateReadable(data.OutboundDate))
	if data.ReturnDate != "" {
		row("Return", fmtDateReadable(data.ReturnDate))
	}
	pdf.Ln(4)

	// ── Selected Flight ───────────────────────────────────────
	sectionHeader("Selected Flight")
	for i, leg := range data.Flight.Legs {
		label := fmt.Sprintf("Leg %d", i+1)
		if len(data.Flight.Legs) == 1 {
			label = "Flight"
		}
		row(label, formatLeg(leg))
	}
	stops := "Direct"
	if n := len(data.Flight.Legs) - 1; n > 0 {
		stops = fmt.Sprintf("%d stop(s)", n)
	}
	row("Stops", stops)
	row("Total duration", fmt.Sprintf("%dh %dm",
		data.Flight.TotalDuration/60, data.Flight.TotalDuration%60))
	currency := data.Currency
	if currency == "" {
		currency = "INR"
	}
	row("Price", fmt.Sprintf("%d %s per person", data.Flight.Price, currency))
	pdf.Ln(4)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by FareScout - Not a booking confirmation - Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

func formatLeg(leg FlightLeg) string {
	result := fmt.Sprintf("%s %s -> %s %s",
		leg.DepartureAirport.ID, leg.DepartureAirport.Time,
		leg.ArrivalAirport.ID, leg.ArrivalAirport.Time)
	if leg.Airline != "" {
		result = leg.Airline + " " + leg.FlightNumber + ": " + result
	}
	return result
}
