package handlers

import (
	"errors"
	"net/http"

	"farescout/database"
	"farescout/services"

	"github.com/gin-gonic/gin"
)

// Handler owns the vendor clients and the optional store. Everything is
// injected by the composition root; there are no package globals.
type Handler struct {
	geocoder *services.Geocoder
	amadeus  *services.AmadeusClient
	flights  *services.FlightsClient
	store    *database.Store // nil when DATABASE_URL is not set
}

func New(geocoder *services.Geocoder, amadeus *services.AmadeusClient, flights *services.FlightsClient, store *database.Store) *Handler {
	return &Handler{
		geocoder: geocoder,
		amadeus:  amadeus,
		flights:  flights,
		store:    store,
	}
}

// respondError maps the three service error kinds onto HTTP statuses:
// invalid input 400, not-found 404, upstream the vendor's status (502
// when unknown), configuration gaps 500.
func respondError(c *gin.Context, err error) {
	var nf *services.NotFoundError
	var ue *services.UpstreamError

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Message})
	case errors.As(err, &ue):
		status := ue.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": ue.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) Health(c *gin.Context) {
	storeStatus := "disabled"
	if h.store != nil {
		storeStatus = "ok"
		if err := h.store.Ping(); err != nil {
			storeStatus = "error: " + err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "FareScout API",
		"store":   storeStatus,
	})
}
