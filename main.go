package main

import (
	"log"
	"os"
	"time"

	"farescout/config"
	"farescout/database"
	"farescout/handlers"
	"farescout/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	cfg := config.Load()

	geocoder := services.NewGeocoder(cfg.GeocodeAPIKey, cfg.GeocodeBaseURL, cfg.HTTPTimeout)
	amadeus := services.NewAmadeusClient(cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusBaseURL, cfg.HTTPTimeout)
	flights := services.NewFlightsClient(cfg.SerpAPIKey, cfg.SerpBaseURL, cfg.SerpGL, cfg.SerpHL, cfg.SerpCurrency, cfg.FlightTimeout)

	var store *database.Store
	if cfg.DatabaseURL != "" {
		var err error
		store, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()
		log.Println("Search history store connected")
	} else {
		log.Println("DATABASE_URL not set — search history and itinerary PDFs disabled")
	}

	h := handlers.New(geocoder, amadeus, flights, store)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	allowedOrigins = append(allowedOrigins, cfg.FrontendURLs...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/airports", h.Airports)
		api.POST("/flights", h.SearchFlights)
		api.POST("/flights/booking", h.BookingOptions)
		api.POST("/itinerary", h.GenerateItinerary)
		api.GET("/download/:id", h.Download)
	}

	log.Printf("FareScout backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
