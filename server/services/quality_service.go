package services

import (
	"fmt"
	"log/slog"

	"lockhospitals/database"
	"lockhospitals/quality"
)

// QualityService runs the data-quality pass over the registry.
type QualityService struct {
	db     *database.RegistryDB
	logger *slog.Logger
}

// NewQualityService creates a quality service.
func NewQualityService(db *database.RegistryDB, logger *slog.Logger) *QualityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QualityService{db: db, logger: logger}
}

// BuildReport fetches every table and runs all validators over the snapshot.
func (s *QualityService) BuildReport() (*quality.Report, error) {
	stations, err := s.db.GetStations()
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	women, err := s.db.GetWomenAdmissions()
	if err != nil {
		return nil, fmt.Errorf("failed to load women admissions: %w", err)
	}
	troops, err := s.db.GetTroopRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load troop records: %w", err)
	}
	ops, err := s.db.GetHospitalOperations()
	if err != nil {
		return nil, fmt.Errorf("failed to load hospital operations: %w", err)
	}
	notes, err := s.db.GetHospitalNotes()
	if err != nil {
		return nil, fmt.Errorf("failed to load hospital notes: %w", err)
	}

	report := quality.Analyze(quality.Dataset{
		Stations:        stations,
		WomenAdmissions: women,
		TroopRecords:    troops,
		Operations:      ops,
		Notes:           notes,
	})

	s.logger.Info("Quality report built",
		"errors", report.ErrorCount,
		"warnings", report.WarnCount,
		"orphan_stations", len(report.OrphanStations))
	return &report, nil
}
