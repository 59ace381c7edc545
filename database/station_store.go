package database

import (
	"fmt"
	"sort"
)

// factColumns whitelists the table/column pairs the standardization passes
// are allowed to rewrite.
var factColumns = map[string]map[string]struct{}{
	"women_admission":     {"station": {}, "region": {}, "country": {}},
	"troops":              {"station": {}, "region": {}, "country": {}},
	"hospital_operations": {"station": {}, "region": {}, "country": {}, "act": {}, "class": {}},
	"stations":            {"name": {}, "region": {}, "country": {}},
}

// MergeStations applies a redirect map produced by deduplication: dependent
// station_reports rows are repointed to the surviving id and the absorbed
// station rows are deleted. The whole merge runs in one transaction so a
// failure leaves the registry untouched.
func (db *RegistryDB) MergeStations(redirects map[int64]int64) error {
	if len(redirects) == 0 {
		return nil
	}

	absorbed := make([]int64, 0, len(redirects))
	for id := range redirects {
		absorbed = append(absorbed, id)
	}
	sort.Slice(absorbed, func(i, j int) bool { return absorbed[i] < absorbed[j] })

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin merge transaction: %w", err)
	}
	defer tx.Rollback()

	for _, oldID := range absorbed {
		newID := redirects[oldID]
		if _, err := tx.Exec(`UPDATE station_reports SET station_id = ? WHERE station_id = ?`, newID, oldID); err != nil {
			return fmt.Errorf("failed to repoint station reports %d -> %d: %w", oldID, newID, err)
		}
		if _, err := tx.Exec(`DELETE FROM stations WHERE station_id = ?`, oldID); err != nil {
			return fmt.Errorf("failed to delete absorbed station %d: %w", oldID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge transaction: %w", err)
	}
	return nil
}

// UpdateStation rewrites one station row in place by id.
func (db *RegistryDB) UpdateStation(station Station) error {
	result, err := db.conn.Exec(`UPDATE stations
		SET name = ?, region = ?, country = ?, latitude = ?, longitude = ?, notes = ?
		WHERE station_id = ?`,
		station.Name, station.Region, station.Country, station.Latitude, station.Longitude,
		station.Notes, station.StationID)
	if err != nil {
		return fmt.Errorf("failed to update station %d: %w", station.StationID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("station %d not found", station.StationID)
	}
	return nil
}

// UpdateStationCoordinates sets the coordinates of a station by name.
// Returns the number of rows touched so callers can report unmatched names.
func (db *RegistryDB) UpdateStationCoordinates(name string, latitude, longitude float64) (int64, error) {
	result, err := db.conn.Exec(`UPDATE stations SET latitude = ?, longitude = ? WHERE name = ?`,
		latitude, longitude, name)
	if err != nil {
		return 0, fmt.Errorf("failed to update coordinates for %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// ReplaceFactValue rewrites every occurrence of oldValue with newValue in one
// whitelisted table column. This is the primitive behind the standardization
// passes (station spellings, act citations, region names).
func (db *RegistryDB) ReplaceFactValue(table, column, oldValue, newValue string) (int64, error) {
	columns, ok := factColumns[table]
	if !ok {
		return 0, fmt.Errorf("table not allowed for standardization: %s", table)
	}
	if _, ok := columns[column]; !ok {
		return 0, fmt.Errorf("column not allowed for standardization: %s.%s", table, column)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`, table, column, column)
	result, err := db.conn.Exec(query, newValue, oldValue)
	if err != nil {
		return 0, fmt.Errorf("failed to replace %s.%s value: %w", table, column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// CountFactValue counts rows in a whitelisted table column holding a value.
// The standardize command uses it for dry runs.
func (db *RegistryDB) CountFactValue(table, column, value string) (int, error) {
	columns, ok := factColumns[table]
	if !ok {
		return 0, fmt.Errorf("table not allowed for standardization: %s", table)
	}
	if _, ok := columns[column]; !ok {
		return 0, fmt.Errorf("column not allowed for standardization: %s.%s", table, column)
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, table, column)
	var count int
	if err := db.conn.QueryRow(query, value).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s.%s value: %w", table, column, err)
	}
	return count, nil
}

// DistinctFactValues returns the distinct non-null values of a whitelisted
// column, ordered, so standardization passes can enumerate what needs fixing.
func (db *RegistryDB) DistinctFactValues(table, column string) ([]string, error) {
	columns, ok := factColumns[table]
	if !ok {
		return nil, fmt.Errorf("table not allowed for standardization: %s", table)
	}
	if _, ok := columns[column]; !ok {
		return nil, fmt.Errorf("column not allowed for standardization: %s.%s", table, column)
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s`,
		column, table, column, column)
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s.%s values: %w", table, column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan distinct value: %w", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// RebuildStationReports regenerates the document-station link table from the
// doc/station pairs present in the fact tables.
func (db *RegistryDB) RebuildStationReports() (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM station_reports`); err != nil {
		return 0, fmt.Errorf("failed to clear station reports: %w", err)
	}

	result, err := tx.Exec(`INSERT INTO station_reports (doc_id, station_id)
		SELECT DISTINCT f.doc_id, s.station_id
		FROM (
			SELECT doc_id, station FROM women_admission
			UNION
			SELECT doc_id, station FROM troops
			UNION
			SELECT doc_id, station FROM hospital_operations
		) f
		JOIN stations s ON s.name = f.station
		WHERE f.doc_id IS NOT NULL AND f.station IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to rebuild station reports: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rebuild transaction: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(inserted), nil
}
