package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/config"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/handler"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/middleware"
)

// Handlers bundles the HTTP handlers the router mounts
type Handlers struct {
	Ingest     *handler.IngestHandler
	Timeline   *handler.TimelineHandler
	Technician *handler.TechnicianHandler
	Analysis   *handler.AnalysisHandler
	Geocoding  *handler.GeocodingHandler
}

// SetupRouter builds the gin engine with all routes and middleware
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS for the dashboard frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "FieldTrace API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		// Batch ingestion from the upstream feeds
		api.POST("/segments/batch", h.Ingest.IngestSegments)
		api.POST("/jobs/batch", h.Ingest.IngestJobs)
		api.POST("/punches/batch", h.Ingest.IngestPunches)

		technicians := api.Group("/technicians")
		{
			technicians.POST("", h.Technician.CreateTechnician)
			technicians.GET("/:id/config", h.Technician.GetConfig)
			technicians.PUT("/:id/config", h.Technician.PutConfig)
			technicians.GET("/:id/timeline", h.Timeline.GetTimeline)
			technicians.GET("/:id/home/suggestion", h.Technician.GetHomeSuggestion)
			technicians.POST("/:id/home/confirm", h.Technician.ConfirmHome)
		}

		analysis := api.Group("/analysis")
		{
			analysis.POST("/home", h.Analysis.StartHomeInference)
			analysis.POST("/transit", h.Analysis.StartTransitSweep)
			analysis.GET("/tasks/:id", h.Analysis.GetTask)
		}

		// The upstream geocoding provider allows one request per second.
		geocode := api.Group("/geocode")
		geocode.Use(middleware.RateLimit(60, time.Minute))
		{
			geocode.GET("/reverse", h.Geocoding.ReverseGeocode)
		}
	}

	return r
}
