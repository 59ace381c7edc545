package services

import (
	"fmt"
	"log/slog"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// StationView is a station row with its canonical identity attached.
type StationView struct {
	database.Station
	CanonicalName string `json:"canonical_name"`
	DisplayName   string `json:"display_name"`
}

// StationService reads stations and raw table rows for the browse endpoints.
type StationService struct {
	db     *database.RegistryDB
	logger *slog.Logger
}

// NewStationService creates a station service.
func NewStationService(db *database.RegistryDB, logger *slog.Logger) *StationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StationService{db: db, logger: logger}
}

// ListStations returns every station with its canonical name and preferred
// display spelling.
func (s *StationService) ListStations() ([]StationView, error) {
	stations, err := s.db.GetStations()
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	views := make([]StationView, 0, len(stations))
	for _, station := range stations {
		canonical := normalization.CanonicalStationName(station.Name)
		views = append(views, StationView{
			Station:       station,
			CanonicalName: canonical,
			DisplayName:   normalization.StationDisplayName(canonical),
		})
	}
	return views, nil
}

// TablePage is one page of raw rows from a registry table.
type TablePage struct {
	Table  string      `json:"table"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Rows   interface{} `json:"rows"`
}

// BrowseTable returns one page of typed rows from a registry table. The
// dataset is a few thousand rows, so paging happens in memory after a typed
// fetch rather than with per-table OFFSET queries.
func (s *StationService) BrowseTable(table string, limit, offset int) (*TablePage, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var rows interface{}
	var total int
	var err error

	switch table {
	case "documents":
		var records []database.Document
		if records, err = s.db.GetDocuments(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	case "stations":
		var records []database.Station
		if records, err = s.db.GetStations(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	case "station_reports":
		var records []database.StationReport
		if records, err = s.db.GetStationReports(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	case "women_admission":
		var records []database.WomenAdmission
		if records, err = s.db.GetWomenAdmissions(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	case "troops":
		var records []database.TroopRecord
		if records, err = s.db.GetTroopRecords(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	case "hospital_operations":
		var records []database.HospitalOperation
		if records, err = s.db.GetHospitalOperations(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	case "hospital_notes":
		var records []database.HospitalNote
		if records, err = s.db.GetHospitalNotes(); err == nil {
			total = len(records)
			rows = pageOf(records, limit, offset)
		}
	default:
		return nil, fmt.Errorf("unknown table: %s", table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", table, err)
	}

	return &TablePage{Table: table, Total: total, Limit: limit, Offset: offset, Rows: rows}, nil
}

func pageOf[T any](records []T, limit, offset int) []T {
	if offset >= len(records) {
		return []T{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
