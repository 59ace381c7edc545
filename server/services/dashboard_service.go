package services

import (
	"fmt"
	"log/slog"

	"lockhospitals/database"
	"lockhospitals/normalization"
	"lockhospitals/reconcile"
)

// DashboardService builds the reconciled station-year view and the rollups
// the dashboard charts consume.
type DashboardService struct {
	db     *database.RegistryDB
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(db *database.RegistryDB, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{db: db, logger: logger}
}

// ViewFilter narrows the station-year view.
type ViewFilter struct {
	Station string
	Year    int
}

func (f ViewFilter) matches(row reconcile.StationYear) bool {
	if f.Station != "" && row.Station != normalization.CanonicalStationName(f.Station) {
		return false
	}
	if f.Year != 0 && row.Year != f.Year {
		return false
	}
	return true
}

// StationYearView returns the reconciled per-station-year view, optionally
// filtered by station name (any spelling) and year.
func (s *DashboardService) StationYearView(filter ViewFilter) ([]reconcile.StationYear, error) {
	view, err := s.buildView()
	if err != nil {
		return nil, err
	}

	if filter.Station == "" && filter.Year == 0 {
		return view, nil
	}

	filtered := make([]reconcile.StationYear, 0, len(view))
	for _, row := range view {
		if filter.matches(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// Summaries bundles every dashboard rollup in one response.
type Summaries struct {
	Yearly     []reconcile.YearSummary           `json:"yearly"`
	Regional   []reconcile.RegionSummary         `json:"regional"`
	Acts       []reconcile.ActSummary            `json:"acts"`
	Diseases   []reconcile.DiseaseYearSummary    `json:"diseases"`
	Punishment []reconcile.PunishmentYearSummary `json:"punishment"`
}

// BuildSummaries computes all dashboard rollups from the current registry
// contents.
func (s *DashboardService) BuildSummaries() (*Summaries, error) {
	view, err := s.buildView()
	if err != nil {
		return nil, err
	}

	ops, err := s.db.GetHospitalOperations()
	if err != nil {
		return nil, fmt.Errorf("failed to load hospital operations: %w", err)
	}

	return &Summaries{
		Yearly:     reconcile.YearlySummaries(view),
		Regional:   reconcile.RegionalSummaries(view),
		Acts:       reconcile.ActSummaries(ops),
		Diseases:   reconcile.DiseaseSummaries(view),
		Punishment: reconcile.PunishmentSummaries(view),
	}, nil
}

func (s *DashboardService) buildView() ([]reconcile.StationYear, error) {
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

	return reconcile.BuildStationYearView(women, troops, ops), nil
}
