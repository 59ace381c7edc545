package server

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "lockhospitals/server/errors"
	"lockhospitals/server/middleware"
	"lockhospitals/server/services"
)

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.GetDB().Ping(); err != nil {
		middleware.HandleGinError(c, apperrors.NewDatabaseError("ping", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": s.db.Path()})
}

func (s *Server) handleBrowseTable(c *gin.Context) {
	table := c.Param("table")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := s.stations.BrowseTable(table, limit, offset)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewNotFoundError("table not found", err))
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleListStations(c *gin.Context) {
	stations, err := s.stations.ListStations()
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewDatabaseError("list stations", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations, "count": len(stations)})
}

func (s *Server) handleStationYears(c *gin.Context) {
	filter := services.ViewFilter{Station: c.Query("station")}
	if yearText := c.Query("year"); yearText != "" {
		year, err := strconv.Atoi(yearText)
		if err != nil {
			middleware.HandleGinError(c, apperrors.NewValidationError("year must be an integer", err))
			return
		}
		filter.Year = year
	}

	view, err := s.dashboard.StationYearView(filter)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewDatabaseError("build station-year view", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": view, "count": len(view)})
}

func (s *Server) handleSummaries(c *gin.Context) {
	summaries, err := s.dashboard.BuildSummaries()
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewDatabaseError("build summaries", err))
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleQualityReport(c *gin.Context) {
	report, err := s.quality.BuildReport()
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewDatabaseError("build quality report", err))
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleReconcile(c *gin.Context) {
	dryRun := c.Query("dry_run") == "true"

	result, err := s.reconciliation.Run(dryRun)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewInternalError("reconciliation failed", err))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleStandardize(c *gin.Context) {
	dryRun := c.Query("dry_run") == "true"

	result, err := s.reconciliation.StandardizeVocabularies(dryRun)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewInternalError("standardization failed", err))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleClassifyNotes(c *gin.Context) {
	result, err := s.classification.ClassifyNotes()
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewInternalError("note classification failed", err))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleExport(c *gin.Context) {
	format := c.DefaultQuery("format", services.FormatCSV)

	path, err := s.export.ExportStationYears(format)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("export failed", err))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
