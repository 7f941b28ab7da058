package main

import (
	"log"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/analysis"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/api"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/config"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/database"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/handler"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/service"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/timeline"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	technicianRepo := repository.NewTechnicianRepository(db)
	segmentRepo := repository.NewSegmentRepository(db)
	jobRepo := repository.NewJobRepository(db)
	punchRepo := repository.NewPunchRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	opts := timeline.DefaultOptions()
	opts.OfficeUTCOffsetHours = cfg.OfficeUTCOffsetHours

	timelineService := service.NewTimelineService(
		technicianRepo, segmentRepo, jobRepo, punchRepo, opts, cfg.AverageSpeedMPH)
	geocodingService := service.NewGeocodingService(cfg.GeocodeBaseURL, cfg.GeocodeAPIKey)

	engine := analysis.NewEngine(taskRepo)
	engine.Register(analysis.NewHomeInferenceRunner(
		technicianRepo, segmentRepo, suggestionRepo, taskRepo, opts, cfg.HomeLookbackDays))
	engine.Register(analysis.NewTransitSweepRunner(technicianRepo, timelineService, taskRepo))

	router := api.SetupRouter(cfg, api.Handlers{
		Ingest:     handler.NewIngestHandler(segmentRepo, jobRepo, punchRepo),
		Timeline:   handler.NewTimelineHandler(timelineService),
		Technician: handler.NewTechnicianHandler(technicianRepo, suggestionRepo),
		Analysis:   handler.NewAnalysisHandler(engine, taskRepo),
		Geocoding:  handler.NewGeocodingHandler(geocodingService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
