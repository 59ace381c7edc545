package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lockhospitals/database"
	"lockhospitals/internal/config"
	"lockhospitals/server/middleware"
	"lockhospitals/server/services"
)

// Server wires the registry database, the services, and the gin router.
type Server struct {
	config *config.Config
	logger *slog.Logger
	db     *database.RegistryDB
	router *gin.Engine

	stations       *services.StationService
	dashboard      *services.DashboardService
	reconciliation *services.ReconciliationService
	classification *services.ClassificationService
	quality        *services.QualityService
	export         *services.ExportService
}

// New builds a server over an open registry database.
func New(cfg *config.Config, db *database.RegistryDB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	dashboard := services.NewDashboardService(db, logger)
	s := &Server{
		config:         cfg,
		logger:         logger,
		db:             db,
		stations:       services.NewStationService(db, logger),
		dashboard:      dashboard,
		reconciliation: services.NewReconciliationService(db, logger),
		classification: services.NewClassificationService(db, logger),
		quality:        services.NewQualityService(db, logger),
		export:         services.NewExportService(dashboard, cfg.ExportDir, logger),
	}
	s.router = s.buildRouter()
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(s.config.RateLimitRPS, s.config.RateLimitBurst))

	router.GET("/health", s.handleHealth)

	api := router.Group("/api/v1")
	{
		api.GET("/tables/:table", s.handleBrowseTable)
		api.GET("/stations", s.handleListStations)
		api.GET("/station-years", s.handleStationYears)
		api.GET("/summaries", s.handleSummaries)
		api.GET("/quality-report", s.handleQualityReport)
		api.POST("/reconcile", s.handleReconcile)
		api.POST("/standardize", s.handleStandardize)
		api.POST("/classify-notes", s.handleClassifyNotes)
		api.GET("/export", s.handleExport)
	}

	return router
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
