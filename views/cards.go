package views

import (
	"fmt"
	"html"
	"strings"

	"farescout/services"
)

// Fixed slot counts of the card grids; unused slots render empty.
const (
	MaxFlightCards    = 20
	MaxBookingOptions = 10
)

const placeholderLogoURL = "https://via.placeholder.com/32"

// CardHTML renders one flight result card.
func CardHTML(idx int, flight services.Flight, selected bool) string {
	var first, last services.FlightLeg
	if len(flight.Legs) > 0 {
		first = flight.Legs[0]
		last = flight.Legs[len(flight.Legs)-1]
	}

	stops := len(flight.Legs) - 1
	stopsText := "Non-stop"
	if stops == 1 {
		stopsText = "1 stop"
	} else if stops > 1 {
		stopsText = fmt.Sprintf("%d stops", stops)
	}

	var logos strings.Builder
	for _, leg := range flight.Legs {
		fmt.Fprintf(&logos,
			`<img src=%q title=%q onerror="this.src='%s'">`,
			leg.AirlineLogo, leg.Airline, placeholderLogoURL)
	}

	selectedClass := ""
	if selected {
		selectedClass = " selected"
	}

	return fmt.Sprintf(`<div class="card%s" id="card-%d">
	<div class="logo-chain">%s</div>
	<div class="route">%s → %s</div>
	<div class="price">₹%d</div>
	<div class="duration">%s total</div>
	<div class="stops">%s</div>
</div>`,
		selectedClass, idx,
		logos.String(),
		html.EscapeString(first.DepartureAirport.ID), html.EscapeString(last.ArrivalAirport.ID),
		flight.Price,
		FormatDuration(flight.TotalDuration),
		stopsText,
	)
}

// FlightCards renders the fixed card grid for a result set. selected is
// the highlighted card index, or -1 for none. The returned slice always
// has MaxFlightCards entries; slots past the available flights are "".
func FlightCards(results *services.FlightResults, selected int) []string {
	flights := results.AllFlights()

	cards := make([]string, MaxFlightCards)
	for idx := range cards {
		if idx < len(flights) {
			cards[idx] = CardHTML(idx, flights[idx], idx == selected)
		}
	}
	return cards
}

// BookingSlot is one row of the booking panel.
type BookingSlot struct {
	Visible     bool
	Info        string
	ButtonLabel string
}

// BookingSlots renders the fixed booking grid for a booking result set.
// The returned slice always has MaxBookingOptions entries.
func BookingSlots(results *services.BookingResults) []BookingSlot {
	var options []services.BookingOption
	currency := "INR"
	if results != nil {
		options = results.BookingOptions
		if results.Currency != "" {
			currency = results.Currency
		}
	}

	slots := make([]BookingSlot, MaxBookingOptions)
	for i := range slots {
		if i >= len(options) {
			continue
		}
		// options without a combined seller still render, as "Unknown"
		seller := options[i].Together
		if seller == nil {
			seller = &services.BookingSeller{}
		}
		bookWith := seller.BookWith
		if bookWith == "" {
			bookWith = "Unknown"
		}
		slots[i] = BookingSlot{
			Visible: true,
			Info: fmt.Sprintf("### Option %d: %s\n**Price**: %d %s\n**Flights**: %s\n**Baggage**: %s",
				i+1, bookWith, seller.Price, currency,
				strings.Join(seller.MarketedAs, ", "),
				strings.Join(seller.BaggagePrices, ", ")),
			ButtonLabel: "Book with " + bookWith,
		}
	}
	return slots
}

// DetailsHTML renders the per-leg details block for a selected flight.
// Returns "" when the selection is out of range.
func DetailsHTML(selected int, results *services.FlightResults) string {
	flights := results.AllFlights()
	if selected < 0 || selected >= len(flights) {
		return ""
	}
	flight := flights[selected]

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="details" id="details-%d">`+"\n", selected)
	fmt.Fprintf(&b, `<div class="details-price">₹%d · %s total</div>`+"\n",
		flight.Price, FormatDuration(flight.TotalDuration))
	for i, leg := range flight.Legs {
		fmt.Fprintf(&b,
			`<div class="leg"><span class="airline">%s %s</span> %s %s → %s %s (%s)</div>`+"\n",
			html.EscapeString(leg.Airline), html.EscapeString(leg.FlightNumber),
			html.EscapeString(leg.DepartureAirport.ID), html.EscapeString(leg.DepartureAirport.Time),
			html.EscapeString(leg.ArrivalAirport.ID), html.EscapeString(leg.ArrivalAirport.Time),
			FormatDuration(leg.Duration))
		if i < len(flight.Layovers) {
			fmt.Fprintf(&b, `<div class="layover">Layover at %s · %s</div>`+"\n",
				html.EscapeString(flight.Layovers[i].Name),
				FormatDuration(flight.Layovers[i].Duration))
		}
	}
	b.WriteString("</div>")
	return b.String()
}

// FormatDuration renders minutes as "5h 30m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Ordinal renders 1 as "1st", 2 as "2nd" and so on, for log lines.
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
