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

type ItineraryRequest struct {
	SearchID            string `json:"search_id" binding:"required"`
	SelectedFlightIndex int    `json:"selected_flight_index"`
	TravelerName        string `json:"traveler_name"`
}

type ItineraryResponse struct {
	ItineraryID string `json:"itinerary_id"`
	PDFURL      string `json:"pdf_url"`
}

// GenerateItinerary handles POST /api/itinerary: renders a PDF for one
// flight of a stored search and keeps it for download.
func (h *Handler) GenerateItinerary(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search history store is not configured"})
		return
	}

	var req ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	search, err := h.store.GetSearch(req.SearchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
		return
	}

	var results services.FlightResults
	if err := json.Unmarshal([]byte(search.ResultsJSON), &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse stored flight data"})
		return
	}

	flights := results.AllFlights()
	if len(flights) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored search has no flights"})
		return
	}
	if req.SelectedFlightIndex < 0 || req.SelectedFlightIndex >= len(flights) {
		req.SelectedFlightIndex = 0
	}

	pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
		TravelerName: req.TravelerName,
		DepartureID:  search.DepartureID,
		ArrivalID:    search.ArrivalID,
		OutboundDate: search.OutboundDate,
		ReturnDate:   search.ReturnDate,
		Flight:       flights[req.SelectedFlightIndex],
		Currency:     results.Currency,
	})
	if err != nil {
		log.Printf("PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	itin := &database.Itinerary{
		ID:           uuid.New().String(),
		SearchID:     search.ID,
		TravelerName: req.TravelerName,
		PDFData:      pdfBytes,
	}
	if err := h.store.SaveItinerary(itin); err != nil {
		log.Printf("failed to save itinerary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generated PDF"})
		return
	}

	log.Printf("PDF generated for itinerary %s (%d bytes)", itin.ID, len(pdfBytes))
	c.JSON(http.StatusOK, ItineraryResponse{
		ItineraryID: itin.ID,
		PDFURL:      "/api/download/" + itin.ID,
	})
}

// Download handles GET /api/download/:id, streaming a generated PDF.
func (h *Handler) Download(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search history store is not configured"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing itinerary ID"})
		return
	}

	itin, err := h.store.GetItinerary(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		return
	}
	if len(itin.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF has not been generated for this itinerary"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=farescout-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", itin.PDFData)
}
