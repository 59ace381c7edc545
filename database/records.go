package database

import (
	"fmt"
)

const womenAdmissionColumns = `unique_id, doc_id, source_name, source_type, region, station, country, year,
	women_start_register, women_added, women_removed, women_end_register, avg_registered,
	disease_primary_syphilis, disease_secondary_syphilis, disease_gonorrhoea, disease_leucorrhoea,
	fined_count, imprisonment_count, non_attendance_cases, discharges, deaths, side_notes`

const troopColumns = `unique_id, doc_id, source_name, source_type, region, station, country, year,
	regiments, avg_strength, primary_syphilis, secondary_syphilis, gonorrhoea, total_admissions`

const hospitalOperationColumns = `hid, doc_id, source_name, source_type, year, region, station, country, act, class`

const hospitalNoteColumns = `hid, staff_medical_officers, staff_hospital_assistants, staff_matron,
	staff_coolies, staff_peons, staff_watermen, inspection_freq, unlicensed_control_type,
	committee_supervision, inspection_notes, unlicensed_control_notes, committee_activity_notes, remarks`

// GetDocuments returns all source documents ordered by id.
func (db *RegistryDB) GetDocuments() ([]Document, error) {
	rows, err := db.conn.Query(`SELECT doc_id, source_name, type, link, notes FROM documents ORDER BY doc_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.DocID, &doc.SourceName, &doc.Type, &doc.Link, &doc.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

// GetStations returns all stations ordered by id.
func (db *RegistryDB) GetStations() ([]Station, error) {
	rows, err := db.conn.Query(`SELECT station_id, name, region, country, latitude, longitude, notes
		FROM stations ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var station Station
		if err := rows.Scan(&station.StationID, &station.Name, &station.Region, &station.Country,
			&station.Latitude, &station.Longitude, &station.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, station)
	}
	return stations, rows.Err()
}

// GetStationReports returns all document-station links.
func (db *RegistryDB) GetStationReports() ([]StationReport, error) {
	rows, err := db.conn.Query(`SELECT report_id, doc_id, station_id FROM station_reports ORDER BY report_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query station reports: %w", err)
	}
	defer rows.Close()

	var reports []StationReport
	for rows.Next() {
		var report StationReport
		if err := rows.Scan(&report.ReportID, &report.DocID, &report.StationID); err != nil {
			return nil, fmt.Errorf("failed to scan station report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// GetWomenAdmissions returns all women-admission fact rows.
func (db *RegistryDB) GetWomenAdmissions() ([]WomenAdmission, error) {
	rows, err := db.conn.Query(`SELECT ` + womenAdmissionColumns + ` FROM women_admission ORDER BY unique_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query women_admission: %w", err)
	}
	defer rows.Close()

	var records []WomenAdmission
	for rows.Next() {
		var rec WomenAdmission
		if err := rows.Scan(&rec.UniqueID, &rec.DocID, &rec.SourceName, &rec.SourceType,
			&rec.Region, &rec.Station, &rec.Country, &rec.Year,
			&rec.WomenStartRegister, &rec.WomenAdded, &rec.WomenRemoved, &rec.WomenEndRegister,
			&rec.AvgRegistered,
			&rec.DiseasePrimarySyphilis, &rec.DiseaseSecondarySyphilis, &rec.DiseaseGonorrhoea,
			&rec.DiseaseLeucorrhoea,
			&rec.FinedCount, &rec.ImprisonmentCount, &rec.NonAttendanceCases, &rec.Discharges,
			&rec.Deaths, &rec.SideNotes); err != nil {
			return nil, fmt.Errorf("failed to scan women_admission row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetTroopRecords returns all troop fact rows.
func (db *RegistryDB) GetTroopRecords() ([]TroopRecord, error) {
	rows, err := db.conn.Query(`SELECT ` + troopColumns + ` FROM troops ORDER BY unique_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query troops: %w", err)
	}
	defer rows.Close()

	var records []TroopRecord
	for rows.Next() {
		var rec TroopRecord
		if err := rows.Scan(&rec.UniqueID, &rec.DocID, &rec.SourceName, &rec.SourceType,
			&rec.Region, &rec.Station, &rec.Country, &rec.Year,
			&rec.Regiments, &rec.AvgStrength,
			&rec.PrimarySyphilis, &rec.SecondarySyphilis, &rec.Gonorrhoea, &rec.TotalAdmissions); err != nil {
			return nil, fmt.Errorf("failed to scan troops row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetHospitalOperations returns all hospital-operation rows.
func (db *RegistryDB) GetHospitalOperations() ([]HospitalOperation, error) {
	rows, err := db.conn.Query(`SELECT ` + hospitalOperationColumns + ` FROM hospital_operations ORDER BY hid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospital_operations: %w", err)
	}
	defer rows.Close()

	var records []HospitalOperation
	for rows.Next() {
		var rec HospitalOperation
		if err := rows.Scan(&rec.HID, &rec.DocID, &rec.SourceName, &rec.SourceType, &rec.Year,
			&rec.Region, &rec.Station, &rec.Country, &rec.Act, &rec.Class); err != nil {
			return nil, fmt.Errorf("failed to scan hospital_operations row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetHospitalNotes returns all qualitative note rows.
func (db *RegistryDB) GetHospitalNotes() ([]HospitalNote, error) {
	rows, err := db.conn.Query(`SELECT ` + hospitalNoteColumns + ` FROM hospital_notes ORDER BY hid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospital_notes: %w", err)
	}
	defer rows.Close()

	var records []HospitalNote
	for rows.Next() {
		var rec HospitalNote
		if err := rows.Scan(&rec.HID,
			&rec.StaffMedicalOfficers, &rec.StaffHospitalAssistants, &rec.StaffMatron,
			&rec.StaffCoolies, &rec.StaffPeons, &rec.StaffWatermen,
			&rec.InspectionFreq, &rec.UnlicensedControlType, &rec.CommitteeSupervision,
			&rec.InspectionNotes, &rec.UnlicensedControlNotes, &rec.CommitteeActivityNotes,
			&rec.Remarks); err != nil {
			return nil, fmt.Errorf("failed to scan hospital_notes row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// InsertDocument upserts one source document by id.
func (db *RegistryDB) InsertDocument(doc Document) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO documents (doc_id, source_name, type, link, notes)
		VALUES (?, ?, ?, ?, ?)`,
		doc.DocID, doc.SourceName, doc.Type, doc.Link, doc.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.DocID, err)
	}
	return nil
}

// InsertStation inserts a station if its name is not taken yet and returns
// the station id either way.
func (db *RegistryDB) InsertStation(station Station) (int64, error) {
	result, err := db.conn.Exec(`INSERT OR IGNORE INTO stations (name, region, country, latitude, longitude, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		station.Name, station.Region, station.Country, station.Latitude, station.Longitude, station.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert station %s: %w", station.Name, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return result.LastInsertId()
	}

	var id int64
	if err := db.conn.QueryRow(`SELECT station_id FROM stations WHERE name = ?`, station.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up station %s: %w", station.Name, err)
	}
	return id, nil
}

// InsertStationReport links a document to a station.
func (db *RegistryDB) InsertStationReport(docID string, stationID int64) error {
	_, err := db.conn.Exec(`INSERT INTO station_reports (doc_id, station_id) VALUES (?, ?)`, docID, stationID)
	if err != nil {
		return fmt.Errorf("failed to insert station report: %w", err)
	}
	return nil
}

// InsertWomenAdmission upserts one women-admission fact row.
func (db *RegistryDB) InsertWomenAdmission(rec WomenAdmission) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO women_admission (`+womenAdmissionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UniqueID, rec.DocID, rec.SourceName, rec.SourceType, rec.Region, rec.Station, rec.Country, rec.Year,
		rec.WomenStartRegister, rec.WomenAdded, rec.WomenRemoved, rec.WomenEndRegister, rec.AvgRegistered,
		rec.DiseasePrimarySyphilis, rec.DiseaseSecondarySyphilis, rec.DiseaseGonorrhoea, rec.DiseaseLeucorrhoea,
		rec.FinedCount, rec.ImprisonmentCount, rec.NonAttendanceCases, rec.Discharges, rec.Deaths, rec.SideNotes)
	if err != nil {
		return fmt.Errorf("failed to insert women_admission row %s: %w", rec.UniqueID, err)
	}
	return nil
}

// InsertTroopRecord upserts one troop fact row.
func (db *RegistryDB) InsertTroopRecord(rec TroopRecord) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO troops (`+troopColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UniqueID, rec.DocID, rec.SourceName, rec.SourceType, rec.Region, rec.Station, rec.Country, rec.Year,
		rec.Regiments, rec.AvgStrength, rec.PrimarySyphilis, rec.SecondarySyphilis, rec.Gonorrhoea, rec.TotalAdmissions)
	if err != nil {
		return fmt.Errorf("failed to insert troops row %s: %w", rec.UniqueID, err)
	}
	return nil
}

// InsertHospitalOperation upserts one hospital-operation row.
func (db *RegistryDB) InsertHospitalOperation(rec HospitalOperation) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO hospital_operations (`+hospitalOperationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.HID, rec.DocID, rec.SourceName, rec.SourceType, rec.Year,
		rec.Region, rec.Station, rec.Country, rec.Act, rec.Class)
	if err != nil {
		return fmt.Errorf("failed to insert hospital_operations row %s: %w", rec.HID, err)
	}
	return nil
}

// InsertHospitalNote upserts one qualitative note row.
func (db *RegistryDB) InsertHospitalNote(rec HospitalNote) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO hospital_notes (`+hospitalNoteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.HID,
		rec.StaffMedicalOfficers, rec.StaffHospitalAssistants, rec.StaffMatron,
		rec.StaffCoolies, rec.StaffPeons, rec.StaffWatermen,
		rec.InspectionFreq, rec.UnlicensedControlType, rec.CommitteeSupervision,
		rec.InspectionNotes, rec.UnlicensedControlNotes, rec.CommitteeActivityNotes, rec.Remarks)
	if err != nil {
		return fmt.Errorf("failed to insert hospital_notes row %s: %w", rec.HID, err)
	}
	return nil
}

// UpdateHospitalNoteCategories writes the classifier's categorical output
// back to one note row.
func (db *RegistryDB) UpdateHospitalNoteCategories(hid string, inspectionFreq, controlType, supervision *string) error {
	_, err := db.conn.Exec(`UPDATE hospital_notes
		SET inspection_freq = ?, unlicensed_control_type = ?, committee_supervision = ?
		WHERE hid = ?`,
		inspectionFreq, controlType, supervision, hid)
	if err != nil {
		return fmt.Errorf("failed to update note categories for %s: %w", hid, err)
	}
	return nil
}

// CountRows returns the row count of one registry table. The table name is
// checked against the known schema, not interpolated blindly.
func (db *RegistryDB) CountRows(table string) (int, error) {
	if !KnownTable(table) {
		return 0, fmt.Errorf("unknown table: %s", table)
	}
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

var registryTables = map[string]struct{}{
	"documents":           {},
	"stations":            {},
	"station_reports":     {},
	"women_admission":     {},
	"troops":              {},
	"hospital_operations": {},
	"hospital_notes":      {},
}

// KnownTable reports whether the name is one of the registry tables.
func KnownTable(table string) bool {
	_, ok := registryTables[table]
	return ok
}
