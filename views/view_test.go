package views

import (
	"strings"
	"testing"

	"farescout/services"
)

func TestPanels_ExactlyOneVisible(t *testing.T) {
	for _, view := range []View{OutboundCards, ReturnCards, OutboundDetails, ReturnDetails, Booking} {
		panels := view.Panels()
		visible := 0
		for _, on := range []bool{panels.OutboundCards, panels.ReturnCards, panels.OutboundDetails, panels.ReturnDetails, panels.Booking} {
			if on {
				visible++
			}
		}
		if visible != 1 {
			t.Errorf("View %s: %d panels visible, want exactly 1", view, visible)
		}
	}
}

func TestPanels_MatchesView(t *testing.T) {
	if !OutboundCards.Panels().OutboundCards {
		t.Error("OutboundCards view must show the outbound cards panel")
	}
	if !ReturnCards.Panels().ReturnCards {
		t.Error("ReturnCards view must show the return cards panel")
	}
	if !Booking.Panels().Booking {
		t.Error("Booking view must show the booking panel")
	}
}

func TestDetailsView_Transitions(t *testing.T) {
	withReturn := &services.FlightSearchRequest{ReturnDate: "2026-09-12"}
	if got := DetailsView(withReturn, ""); got != OutboundDetails {
		t.Errorf("DetailsView with return date = %s, want outbound details", got)
	}

	withDepartureToken := &services.FlightSearchRequest{DepartureToken: "dtok"}
	if got := DetailsView(withDepartureToken, ""); got != ReturnDetails {
		t.Errorf("DetailsView with departure token = %s, want return details", got)
	}

	oneWay := &services.FlightSearchRequest{}
	if got := DetailsView(oneWay, "btok"); got != Booking {
		t.Errorf("DetailsView with booking token = %s, want booking", got)
	}
}

func testFlight(from, to string, price int) services.Flight {
	return services.Flight{
		Price:         price,
		TotalDuration: 150,
		Legs: []services.FlightLeg{{
			DepartureAirport: services.AirportTime{ID: from, Time: "2026-09-01 09:40"},
			ArrivalAirport:   services.AirportTime{ID: to, Time: "2026-09-01 12:10"},
			Airline:          "IndiGo",
			Duration:         150,
		}},
	}
}

func TestFlightCards_FixedSlotCount(t *testing.T) {
	results := &services.FlightResults{
		BestFlights: []services.Flight{
			testFlight("DEL", "BOM", 4500),
			testFlight("DEL", "BOM", 4700),
			testFlight("DEL", "BOM", 5100),
		},
		OtherFlights: []services.Flight{
			testFlight("DEL", "BOM", 6000),
			testFlight("DEL", "BOM", 6900),
		},
	}

	cards := FlightCards(results, -1)
	if len(cards) != MaxFlightCards {
		t.Fatalf("FlightCards() length = %d, want %d", len(cards), MaxFlightCards)
	}

	nonEmpty := 0
	for _, card := range cards {
		if card != "" {
			nonEmpty++
		}
	}
	if nonEmpty != 5 {
		t.Errorf("Non-empty cards = %d, want 5", nonEmpty)
	}
	for idx := 5; idx < MaxFlightCards; idx++ {
		if cards[idx] != "" {
			t.Errorf("Card slot %d should be empty", idx)
		}
	}
}

func TestFlightCards_SelectionHighlight(t *testing.T) {
	results := &services.FlightResults{
		BestFlights: []services.Flight{
			testFlight("DEL", "BOM", 4500),
			testFlight("DEL", "BOM", 4700),
		},
	}

	cards := FlightCards(results, 1)
	if strings.Contains(cards[0], `class="card selected"`) {
		t.Error("Card 0 must not be highlighted")
	}
	if !strings.Contains(cards[1], `class="card selected"`) {
		t.Error("Card 1 must be highlighted")
	}
	if !strings.Contains(cards[1], "DEL → BOM") {
		t.Errorf("Card missing route: %s", cards[1])
	}
	if !strings.Contains(cards[1], "₹4700") {
		t.Errorf("Card missing price: %s", cards[1])
	}
	if !strings.Contains(cards[1], "Non-stop") {
		t.Errorf("Card missing stops text: %s", cards[1])
	}
}

func TestBookingSlots_FixedSlotCount(t *testing.T) {
	results := &services.BookingResults{
		Currency: "INR",
		BookingOptions: []services.BookingOption{
			{Together: &services.BookingSeller{
				BookWith:      "Cleartrip",
				Price:         5200,
				MarketedAs:    []string{"AI 805"},
				BaggagePrices: []string{"15 kg checked"},
			}},
			{Together: &services.BookingSeller{BookWith: "MakeMyTrip", Price: 5350}},
		},
	}

	slots := BookingSlots(results)
	if len(slots) != MaxBookingOptions {
		t.Fatalf("BookingSlots() length = %d, want %d", len(slots), MaxBookingOptions)
	}

	if !slots[0].Visible || !slots[1].Visible {
		t.Error("First two slots must be visible")
	}
	for i := 2; i < MaxBookingOptions; i++ {
		if slots[i].Visible {
			t.Errorf("Slot %d should be hidden", i)
		}
	}
	if !strings.Contains(slots[0].Info, "Cleartrip") || !strings.Contains(slots[0].Info, "5200 INR") {
		t.Errorf("Slot info wrong: %s", slots[0].Info)
	}
	if slots[1].ButtonLabel != "Book with MakeMyTrip" {
		t.Errorf("ButtonLabel = %q", slots[1].ButtonLabel)
	}
}

func TestBookingSlots_MissingSellerRendersUnknown(t *testing.T) {
	results := &services.BookingResults{
		BookingOptions: []services.BookingOption{
			{Departing: &services.BookingSeller{BookWith: "AirSeller"}},
		},
	}

	slots := BookingSlots(results)
	if !slots[0].Visible {
		t.Fatal("An option without a combined seller must still render")
	}
	if !strings.Contains(slots[0].Info, "Unknown") {
		t.Errorf("Slot info = %q, want the Unknown fallback", slots[0].Info)
	}
	if slots[0].ButtonLabel != "Book with Unknown" {
		t.Errorf("ButtonLabel = %q, want Book with Unknown", slots[0].ButtonLabel)
	}
}

func TestDetailsHTML_OutOfRangeSelection(t *testing.T) {
	results := &services.FlightResults{BestFlights: []services.Flight{testFlight("DEL", "BOM", 4500)}}

	if got := DetailsHTML(5, results); got != "" {
		t.Errorf("DetailsHTML(5) = %q, want empty", got)
	}
	if got := DetailsHTML(-1, results); got != "" {
		t.Errorf("DetailsHTML(-1) = %q, want empty", got)
	}
	if got := DetailsHTML(0, results); !strings.Contains(got, "IndiGo") {
		t.Errorf("DetailsHTML(0) missing airline: %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{330, "5h 30m"},
		{60, "1h"},
		{45, "45m"},
		{0, "0m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 13: "13th", 21: "21st", 112: "112th"}
	for n, want := range cases {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
