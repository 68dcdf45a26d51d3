package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Airports handles GET /api/airports?location=<text>: geocode the
// location, then look up airports within the search radius.
func (h *Handler) Airports(c *gin.Context) {
	location := c.Query("location")

	coord, err := h.geocoder.Lookup(c.Request.Context(), location)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("geocoded %q to %.4f,%.4f", location, coord.Latitude, coord.Longitude)

	airports, err := h.amadeus.NearbyAirports(c.Request.Context(), *coord)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("found %d airports near %q", len(airports), location)
	c.JSON(http.StatusOK, airports)
}
