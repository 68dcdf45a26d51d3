// Package views holds the presentation state machine and card
// rendering for the flight-search front end. It is pure: given a
// result set and a selection it produces HTML fragments and visibility
// flags, never touching the network.
package views

import "farescout/services"

// View is the single active panel of the flight UI.
type View int

const (
	OutboundCards View = iota
	ReturnCards
	OutboundDetails
	ReturnDetails
	Booking
)

func (v View) String() string {
	switch v {
	case OutboundCards:
		return "outbound cards"
	case ReturnCards:
		return "return cards"
	case OutboundDetails:
		return "outbound details"
	case ReturnDetails:
		return "return details"
	case Booking:
		return "booking"
	}
	return "unknown"
}

// Panels is the visibility of each UI panel. Exactly one field is true
// for any valid view.
type Panels struct {
	OutboundCards   bool
	ReturnCards     bool
	OutboundDetails bool
	ReturnDetails   bool
	Booking         bool
}

// Panels maps a view to the set of visible panels.
func (v View) Panels() Panels {
	switch v {
	case OutboundCards:
		return Panels{OutboundCards: true}
	case ReturnCards:
		return Panels{ReturnCards: true}
	case OutboundDetails:
		return Panels{OutboundDetails: true}
	case ReturnDetails:
		return Panels{ReturnDetails: true}
	case Booking:
		return Panels{Booking: true}
	}
	return Panels{}
}

// DetailsView decides which details panel a card selection opens, based
// on the request that produced the current result set: a pending return
// date means these are outbound flights, a departure token means return
// flights, a booking token means booking options.
func DetailsView(req *services.FlightSearchRequest, bookingToken string) View {
	switch {
	case req != nil && req.ReturnDate != "":
		return OutboundDetails
	case req != nil && req.DepartureToken != "":
		return ReturnDetails
	case bookingToken != "":
		return Booking
	}
	return OutboundDetails
}
