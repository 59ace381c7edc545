package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// InitSchema creates the registry tables if they do not exist yet and applies
// incremental migrations for columns added after the first import.
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			doc_id TEXT PRIMARY KEY,
			source_name TEXT,
			type TEXT,
			link TEXT,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS stations (
			station_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			region TEXT,
			country TEXT,
			latitude REAL,
			longitude REAL,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS station_reports (
			report_id INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT,
			station_id INTEGER,
			FOREIGN KEY (doc_id) REFERENCES documents (doc_id),
			FOREIGN KEY (station_id) REFERENCES stations (station_id)
		)`,
		`CREATE TABLE IF NOT EXISTS women_admission (
			unique_id TEXT PRIMARY KEY,
			doc_id TEXT,
			source_name TEXT,
			source_type TEXT,
			region TEXT,
			station TEXT,
			country TEXT,
			year INTEGER,
			women_start_register INTEGER,
			women_added INTEGER,
			women_removed INTEGER,
			women_end_register INTEGER,
			avg_registered REAL,
			disease_primary_syphilis INTEGER,
			disease_secondary_syphilis INTEGER,
			disease_gonorrhoea INTEGER,
			disease_leucorrhoea INTEGER,
			fined_count INTEGER,
			imprisonment_count INTEGER,
			non_attendance_cases INTEGER,
			discharges INTEGER,
			deaths INTEGER,
			side_notes TEXT,
			FOREIGN KEY (doc_id) REFERENCES documents (doc_id)
		)`,
		`CREATE TABLE IF NOT EXISTS troops (
			unique_id TEXT PRIMARY KEY,
			doc_id TEXT,
			source_name TEXT,
			source_type TEXT,
			region TEXT,
			station TEXT,
			country TEXT,
			year INTEGER,
			regiments TEXT,
			avg_strength REAL,
			primary_syphilis INTEGER,
			secondary_syphilis INTEGER,
			gonorrhoea INTEGER,
			total_admissions INTEGER,
			FOREIGN KEY (doc_id) REFERENCES documents (doc_id)
		)`,
		`CREATE TABLE IF NOT EXISTS hospital_operations (
			hid TEXT PRIMARY KEY,
			doc_id TEXT,
			source_name TEXT,
			source_type TEXT,
			year INTEGER,
			region TEXT,
			station TEXT,
			country TEXT,
			act TEXT,
			class TEXT,
			FOREIGN KEY (doc_id) REFERENCES documents (doc_id)
		)`,
		`CREATE TABLE IF NOT EXISTS hospital_notes (
			hid TEXT PRIMARY KEY,
			staff_medical_officers INTEGER,
			staff_hospital_assistants INTEGER,
			staff_matron INTEGER,
			staff_coolies INTEGER,
			staff_peons INTEGER,
			staff_watermen INTEGER,
			inspection_notes TEXT,
			unlicensed_control_notes TEXT,
			committee_activity_notes TEXT,
			remarks TEXT,
			FOREIGN KEY (hid) REFERENCES hospital_operations (hid)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_women_admission_station_year ON women_admission(station, year)`,
		`CREATE INDEX IF NOT EXISTS idx_troops_station_year ON troops(station, year)`,
		`CREATE INDEX IF NOT EXISTS idx_hospital_operations_station_year ON hospital_operations(station, year)`,
		`CREATE INDEX IF NOT EXISTS idx_station_reports_station ON station_reports(station_id)`,
		`CREATE INDEX IF NOT EXISTS idx_station_reports_doc ON station_reports(doc_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	if err := MigrateNoteCategoryColumns(db); err != nil {
		return err
	}

	return nil
}

// MigrateNoteCategoryColumns adds the categorical columns the note classifier
// fills in. Older databases predate them, so duplicate-column errors are
// expected and ignored.
func MigrateNoteCategoryColumns(db *sql.DB) error {
	migrations := []string{
		`ALTER TABLE hospital_notes ADD COLUMN inspection_freq TEXT`,
		`ALTER TABLE hospital_notes ADD COLUMN unlicensed_control_type TEXT`,
		`ALTER TABLE hospital_notes ADD COLUMN committee_supervision TEXT`,
		`CREATE INDEX IF NOT EXISTS idx_hospital_notes_inspection_freq ON hospital_notes(inspection_freq)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			errStr := strings.ToLower(err.Error())
			if !strings.Contains(errStr, "duplicate column") &&
				!strings.Contains(errStr, "already exists") {
				return fmt.Errorf("migration failed: %s, error: %w", migration, err)
			}
		}
	}

	return nil
}
