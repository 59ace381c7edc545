package quality

import (
	"sort"
	"time"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// Dataset is the snapshot of registry rows one quality pass runs over. The
// analyzer never touches storage itself; callers fetch and hand rows in.
type Dataset struct {
	Stations        []database.Station
	WomenAdmissions []database.WomenAdmission
	TroopRecords    []database.TroopRecord
	Operations      []database.HospitalOperation
	Notes           []database.HospitalNote
}

// Report is the outcome of one quality pass over the dataset.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	RowCounts   map[string]int `json:"row_counts"`
	Issues      []Issue        `json:"issues"`
	ErrorCount  int            `json:"error_count"`
	WarnCount   int            `json:"warn_count"`

	// OrphanStations are fact-table station names that resolve to no row in
	// the stations table, so every join on them silently drops data.
	OrphanStations []string `json:"orphan_stations"`

	// NullDenominators counts fact rows that can never produce a derived
	// metric because avg_registered or avg_strength is missing or zero.
	NullDenominators int `json:"null_denominators"`
}

// Analyze runs every validator over the dataset and aggregates the findings.
// Bad rows produce issues, never failures.
func Analyze(data Dataset) Report {
	report := Report{
		GeneratedAt: time.Now().UTC(),
		RowCounts: map[string]int{
			"stations":            len(data.Stations),
			"women_admission":     len(data.WomenAdmissions),
			"troops":              len(data.TroopRecords),
			"hospital_operations": len(data.Operations),
			"hospital_notes":      len(data.Notes),
		},
	}

	for _, station := range data.Stations {
		report.Issues = append(report.Issues, CheckStation(station)...)
	}
	for _, rec := range data.WomenAdmissions {
		report.Issues = append(report.Issues, CheckWomenAdmission(rec)...)
		if rec.AvgRegistered == nil || *rec.AvgRegistered <= 0 {
			report.NullDenominators++
		}
	}
	for _, rec := range data.TroopRecords {
		report.Issues = append(report.Issues, CheckTroopRecord(rec)...)
		if rec.AvgStrength == nil || *rec.AvgStrength <= 0 {
			report.NullDenominators++
		}
	}
	for _, rec := range data.Operations {
		report.Issues = append(report.Issues, CheckHospitalOperation(rec)...)
	}
	for _, note := range data.Notes {
		report.Issues = append(report.Issues, CheckHospitalNote(note)...)
	}

	report.OrphanStations = findOrphanStations(data)

	sort.Slice(report.Issues, func(i, j int) bool {
		a, b := report.Issues[i], report.Issues[j]
		if a.Table != b.Table {
			return a.Table < b.Table
		}
		if a.RowID != b.RowID {
			return a.RowID < b.RowID
		}
		return a.Field < b.Field
	})

	for _, issue := range report.Issues {
		switch issue.Severity {
		case SeverityError:
			report.ErrorCount++
		case SeverityWarning:
			report.WarnCount++
		}
	}
	return report
}

// findOrphanStations collects fact-table station names whose canonical form
// matches no station row.
func findOrphanStations(data Dataset) []string {
	known := make(map[string]struct{}, len(data.Stations))
	for _, station := range data.Stations {
		key := normalization.CanonicalStationName(station.Name)
		if key != "" {
			known[key] = struct{}{}
		}
	}

	orphans := make(map[string]struct{})
	note := func(station *string) {
		if station == nil {
			return
		}
		key := normalization.CanonicalStationName(*station)
		if key == "" {
			return
		}
		if _, ok := known[key]; !ok {
			orphans[key] = struct{}{}
		}
	}

	for _, rec := range data.WomenAdmissions {
		note(rec.Station)
	}
	for _, rec := range data.TroopRecords {
		note(rec.Station)
	}
	for _, rec := range data.Operations {
		note(rec.Station)
	}

	names := make([]string, 0, len(orphans))
	for name := range orphans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
