package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"farescout/database"
	"farescout/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type flightSearchResponse struct {
	SearchID string `json:"search_id,omitempty"`
	*services.FlightResults
}

// SearchFlights handles POST /api/flights. When the store is configured
// the search and its results are recorded under a search_id so an
// itinerary PDF can be generated later.
func (h *Handler) SearchFlights(c *gin.Context) {
	var req services.FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	results, err := h.flights.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("flight search %s-%s: %d best, %d other",
		req.DepartureID, req.ArrivalID, len(results.BestFlights), len(results.OtherFlights))

	resp := flightSearchResponse{FlightResults: results}
	if h.store != nil && req.DepartureToken == "" {
		if resultsJSON, err := json.Marshal(results); err != nil {
			log.Printf("failed to encode results for search history: %v", err)
		} else {
			search := &database.Search{
				ID:           uuid.New().String(),
				DepartureID:  req.DepartureID,
				ArrivalID:    req.ArrivalID,
				OutboundDate: req.OutboundDate,
				ReturnDate:   req.ReturnDate,
				Adults:       req.Adults.Int(),
				Children:     req.Children.Int(),
				ResultsJSON:  string(resultsJSON),
			}
			if err := h.store.SaveSearch(search); err != nil {
				log.Printf("failed to save search: %v", err)
			} else {
				resp.SearchID = search.ID
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// BookingOptions handles POST /api/flights/booking: booking options for
// one flight of an earlier search, identified by its booking token.
func (h *Handler) BookingOptions(c *gin.Context) {
	var req services.BookingOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	results, err := h.flights.BookingOptions(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("booking options %s-%s: %d found",
		req.OriginalParams.DepartureID, req.OriginalParams.ArrivalID, len(results.BookingOptions))
	c.JSON(http.StatusOK, results)
}
