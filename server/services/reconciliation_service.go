package services

import (
	"fmt"
	"log/slog"

	"lockhospitals/database"
	"lockhospitals/normalization"
	"lockhospitals/reconcile"
)

// Fact tables that reference stations by free-text name.
var stationFactTables = []string{"women_admission", "troops", "hospital_operations"}

// stationCoordinates is the manual correction table for stations whose
// gazetteer lookup produced wrong or missing coordinates.
var stationCoordinates = map[string][2]float64{
	"Sitabaldi (Nagpur)": {21.1447, 79.0849},
	"Tonghoo":            {18.9398, 96.4344},
	"Jubbulpore":         {23.1815, 79.9864},
	"Muttra":             {27.4924, 77.6737},
	"Umballa":            {30.3782, 76.7767},
	"Meean Meer":         {31.5497, 74.3436},
	"Fyzabad":            {26.7732, 82.1442},
	"Mooltan":            {30.1575, 71.5249},
}

// ReconciliationResult summarizes one reconciliation run.
type ReconciliationResult struct {
	DryRun          bool                  `json:"dry_run"`
	StationsBefore  int                   `json:"stations_before"`
	StationsAfter   int                   `json:"stations_after"`
	Merged          int                   `json:"merged"`
	Redirects       map[int64]int64       `json:"redirects"`
	Collisions      []reconcile.Collision `json:"collisions"`
	RenamedFactRows int64                 `json:"renamed_fact_rows"`
	CoordinateFixes int                   `json:"coordinate_fixes"`
}

// ReconciliationService runs the station identity repair: deduplication,
// fact-table spelling standardization, and coordinate corrections.
type ReconciliationService struct {
	db     *database.RegistryDB
	logger *slog.Logger
}

// NewReconciliationService creates a reconciliation service.
func NewReconciliationService(db *database.RegistryDB, logger *slog.Logger) *ReconciliationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationService{db: db, logger: logger}
}

// Run executes one full reconciliation pass. With dryRun set it reports what
// would change without touching the database.
func (s *ReconciliationService) Run(dryRun bool) (*ReconciliationResult, error) {
	stations, err := s.db.GetStations()
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	dedup := reconcile.DeduplicateStations(stations)
	result := &ReconciliationResult{
		DryRun:         dryRun,
		StationsBefore: len(stations),
		StationsAfter:  len(dedup.Stations),
		Merged:         len(dedup.Redirects),
		Redirects:      dedup.Redirects,
		Collisions:     dedup.Collisions,
	}

	// Collisions are surfaced, never auto-merged: a shared canonical name
	// across different regions may be two real places.
	for _, collision := range dedup.Collisions {
		s.logger.Warn("Ambiguous station name collision, not merging",
			"canonical_name", collision.CanonicalName,
			"station_ids", collision.StationIDs)
	}

	if !dryRun {
		if err := s.db.MergeStations(dedup.Redirects); err != nil {
			return nil, fmt.Errorf("failed to merge duplicate stations: %w", err)
		}
		survivors := invertRedirects(dedup.Redirects)
		for _, station := range dedup.Stations {
			if _, merged := survivors[station.StationID]; merged {
				if err := s.db.UpdateStation(station); err != nil {
					return nil, fmt.Errorf("failed to update merged station: %w", err)
				}
			}
		}
	}

	renamed, err := s.standardizeFactStations(dedup.Stations, dryRun)
	if err != nil {
		return nil, err
	}
	result.RenamedFactRows = renamed

	fixes, err := s.applyCoordinateCorrections(dryRun)
	if err != nil {
		return nil, err
	}
	result.CoordinateFixes = fixes

	s.logger.Info("Reconciliation pass finished",
		"dry_run", dryRun,
		"merged", result.Merged,
		"collisions", len(result.Collisions),
		"renamed_fact_rows", result.RenamedFactRows,
		"coordinate_fixes", result.CoordinateFixes)
	return result, nil
}

// standardizeFactStations rewrites every fact-table station spelling to the
// canonical survivor's name so name-based joins stop depending on the
// canonicalizer at query time.
func (s *ReconciliationService) standardizeFactStations(stations []database.Station, dryRun bool) (int64, error) {
	target := make(map[string]string, len(stations))
	for _, station := range stations {
		key := normalization.CanonicalStationName(station.Name)
		if key != "" {
			target[key] = station.Name
		}
	}

	var renamed int64
	for _, table := range stationFactTables {
		values, err := s.db.DistinctFactValues(table, "station")
		if err != nil {
			return 0, fmt.Errorf("failed to list station spellings in %s: %w", table, err)
		}

		for _, raw := range values {
			key := normalization.CanonicalStationName(raw)
			if key == "" {
				continue
			}
			canonical, known := target[key]
			if !known {
				// Orphan spelling with no station row; leave it for the
				// quality report rather than invent a station.
				s.logger.Debug("Fact station has no station row", "table", table, "station", raw)
				continue
			}
			if raw == canonical {
				continue
			}

			if dryRun {
				count, err := s.db.CountFactValue(table, "station", raw)
				if err != nil {
					return 0, err
				}
				renamed += int64(count)
				continue
			}

			affected, err := s.db.ReplaceFactValue(table, "station", raw, canonical)
			if err != nil {
				return 0, fmt.Errorf("failed to standardize station spelling %q: %w", raw, err)
			}
			renamed += affected
		}
	}
	return renamed, nil
}

// applyCoordinateCorrections applies the manual coordinate table to matching
// station rows.
func (s *ReconciliationService) applyCoordinateCorrections(dryRun bool) (int, error) {
	var fixes int
	for name, coords := range stationCoordinates {
		if dryRun {
			count, err := s.db.CountFactValue("stations", "name", name)
			if err != nil {
				return 0, err
			}
			fixes += count
			continue
		}

		affected, err := s.db.UpdateStationCoordinates(name, coords[0], coords[1])
		if err != nil {
			return 0, fmt.Errorf("failed to correct coordinates for %s: %w", name, err)
		}
		fixes += int(affected)
	}
	return fixes, nil
}

func invertRedirects(redirects map[int64]int64) map[int64]struct{} {
	survivors := make(map[int64]struct{}, len(redirects))
	for _, survivor := range redirects {
		survivors[survivor] = struct{}{}
	}
	return survivors
}
