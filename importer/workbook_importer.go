package importer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// Sheet names in the source workbook.
const (
	SheetWomenAdmission = "women_admission"
	SheetTroops         = "troops_admission"
	SheetHospitals      = "Hospitals"
)

// ImportStats reports what one workbook import produced.
type ImportStats struct {
	Documents     int `json:"documents"`
	Stations      int `json:"stations"`
	WomenRows     int `json:"women_rows"`
	TroopRows     int `json:"troop_rows"`
	OperationRows int `json:"operation_rows"`
	NoteRows      int `json:"note_rows"`
	Reports       int `json:"reports"`
	SkippedRows   int `json:"skipped_rows"`
}

// Importer loads the source Excel workbook into the registry database.
// Malformed cells degrade to null columns; only unreadable sheets abort.
type Importer struct {
	db     *database.RegistryDB
	logger *slog.Logger
}

// New creates a workbook importer over an open registry database.
func New(db *database.RegistryDB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{db: db, logger: logger}
}

// ImportWorkbook reads the three data sheets, collects the distinct documents
// and stations they mention, inserts all rows, and rebuilds the
// document-station link table. Rows land in two phases: documents and
// stations first, then the fact rows that reference them by foreign key.
func (imp *Importer) ImportWorkbook(path string) (*ImportStats, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	stats := &ImportStats{}
	collector := newEntityCollector()

	women, err := readWomenSheet(file, collector, stats)
	if err != nil {
		return nil, err
	}
	troops, err := readTroopsSheet(file, collector, stats)
	if err != nil {
		return nil, err
	}
	ops, notes, err := readHospitalsSheet(file, collector, stats)
	if err != nil {
		return nil, err
	}

	if err := imp.insertEntities(collector, stats); err != nil {
		return nil, err
	}

	for _, rec := range women {
		if err := imp.db.InsertWomenAdmission(rec); err != nil {
			return nil, err
		}
		stats.WomenRows++
	}
	for _, rec := range troops {
		if err := imp.db.InsertTroopRecord(rec); err != nil {
			return nil, err
		}
		stats.TroopRows++
	}
	for i, op := range ops {
		if err := imp.db.InsertHospitalOperation(op); err != nil {
			return nil, err
		}
		if err := imp.db.InsertHospitalNote(notes[i]); err != nil {
			return nil, err
		}
		stats.OperationRows++
		stats.NoteRows++
	}

	reports, err := imp.db.RebuildStationReports()
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild station reports: %w", err)
	}
	stats.Reports = reports

	imp.logger.Info("Workbook import finished",
		"documents", stats.Documents,
		"stations", stats.Stations,
		"women_rows", stats.WomenRows,
		"troop_rows", stats.TroopRows,
		"operation_rows", stats.OperationRows,
		"skipped_rows", stats.SkippedRows)
	return stats, nil
}

// entityCollector accumulates the distinct documents and stations seen in
// fact rows, in first-seen order.
type entityCollector struct {
	documents    map[string]database.Document
	documentKeys []string
	stations     map[string]database.Station
	stationKeys  []string
}

func newEntityCollector() *entityCollector {
	return &entityCollector{
		documents: make(map[string]database.Document),
		stations:  make(map[string]database.Station),
	}
}

func (c *entityCollector) noteDocument(docID, sourceName, sourceType *string) {
	if docID == nil {
		return
	}
	if _, seen := c.documents[*docID]; seen {
		return
	}
	c.documents[*docID] = database.Document{DocID: *docID, SourceName: sourceName, Type: sourceType}
	c.documentKeys = append(c.documentKeys, *docID)
}

func (c *entityCollector) noteStation(name, region, country *string) {
	if name == nil {
		return
	}
	if _, seen := c.stations[*name]; seen {
		return
	}
	c.stations[*name] = database.Station{Name: *name, Region: region, Country: country}
	c.stationKeys = append(c.stationKeys, *name)
}

func (imp *Importer) insertEntities(collector *entityCollector, stats *ImportStats) error {
	for _, docID := range collector.documentKeys {
		if err := imp.db.InsertDocument(collector.documents[docID]); err != nil {
			return err
		}
		stats.Documents++
	}
	for _, name := range collector.stationKeys {
		if _, err := imp.db.InsertStation(collector.stations[name]); err != nil {
			return err
		}
		stats.Stations++
	}
	return nil
}

// sheetReader pairs a data row with the sheet's header row so columns are
// addressed by name, not position.
type sheetReader struct {
	columns map[string]int
	row     []string
}

func readSheet(file *excelize.File, sheet string) ([]sheetReader, error) {
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(header))
		if name != "" {
			columns[name] = i
		}
	}

	readers := make([]sheetReader, 0, len(rows)-1)
	for _, row := range rows[1:] {
		readers = append(readers, sheetReader{columns: columns, row: row})
	}
	return readers, nil
}

func (r sheetReader) text(column string) *string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.row) {
		return nil
	}
	return normalization.Sanitize(r.row[idx])
}

func (r sheetReader) integer(column string) *int {
	value := r.text(column)
	if value == nil {
		return nil
	}
	return normalization.LooseInt(*value)
}

func (r sheetReader) float(column string) *float64 {
	value := r.text(column)
	if value == nil {
		return nil
	}
	return normalization.LooseFloat(*value)
}

func readWomenSheet(file *excelize.File, collector *entityCollector, stats *ImportStats) ([]database.WomenAdmission, error) {
	rows, err := readSheet(file, SheetWomenAdmission)
	if err != nil {
		return nil, err
	}

	records := make([]database.WomenAdmission, 0, len(rows))
	for _, row := range rows {
		uniqueID := row.text("unique_id")
		if uniqueID == nil {
			stats.SkippedRows++
			continue
		}

		rec := database.WomenAdmission{
			UniqueID:   *uniqueID,
			DocID:      row.text("doc_id"),
			SourceName: row.text("source_name"),
			SourceType: row.text("source_type"),
			Region:     row.text("region"),
			Station:    row.text("station"),
			Country:    row.text("country"),
			Year:       row.integer("year"),

			WomenStartRegister: row.integer("women_start_register"),
			WomenAdded:         row.integer("women_added"),
			WomenRemoved:       row.integer("women_removed"),
			WomenEndRegister:   row.integer("women_end_register"),
			AvgRegistered:      row.float("avg_registered"),

			DiseasePrimarySyphilis:   row.integer("disease_primary_syphilis"),
			DiseaseSecondarySyphilis: row.integer("disease_secondary_syphilis"),
			DiseaseGonorrhoea:        row.integer("disease_gonorrhoea"),
			DiseaseLeucorrhoea:       row.integer("disease_leucorrhoea"),

			FinedCount:         row.integer("fined_count"),
			ImprisonmentCount:  row.integer("imprisonment_count"),
			NonAttendanceCases: row.integer("non_attendance_cases"),
			Discharges:         row.integer("discharges"),
			Deaths:             row.integer("deaths"),

			SideNotes: row.text("side_notes"),
		}

		collector.noteDocument(rec.DocID, rec.SourceName, rec.SourceType)
		collector.noteStation(rec.Station, rec.Region, rec.Country)
		records = append(records, rec)
	}
	return records, nil
}

func readTroopsSheet(file *excelize.File, collector *entityCollector, stats *ImportStats) ([]database.TroopRecord, error) {
	rows, err := readSheet(file, SheetTroops)
	if err != nil {
		return nil, err
	}

	records := make([]database.TroopRecord, 0, len(rows))
	for _, row := range rows {
		uniqueID := row.text("unique_id")
		if uniqueID == nil {
			stats.SkippedRows++
			continue
		}

		rec := database.TroopRecord{
			UniqueID:   *uniqueID,
			DocID:      row.text("doc_id"),
			SourceName: row.text("source_name"),
			SourceType: row.text("source_type"),
			Region:     row.text("region"),
			Station:    row.text("station"),
			Country:    row.text("country"),
			Year:       row.integer("year"),

			Regiments:   row.text("regiments"),
			AvgStrength: row.float("avg_strength"),

			PrimarySyphilis:   row.integer("primary_syphilis"),
			SecondarySyphilis: row.integer("secondary_syphilis"),
			Gonorrhoea:        row.integer("gonorrhoea"),
			TotalAdmissions:   row.integer("total_admissions"),
		}

		collector.noteDocument(rec.DocID, rec.SourceName, rec.SourceType)
		collector.noteStation(rec.Station, rec.Region, rec.Country)
		records = append(records, rec)
	}
	return records, nil
}

func readHospitalsSheet(file *excelize.File, collector *entityCollector, stats *ImportStats) ([]database.HospitalOperation, []database.HospitalNote, error) {
	rows, err := readSheet(file, SheetHospitals)
	if err != nil {
		return nil, nil, err
	}

	ops := make([]database.HospitalOperation, 0, len(rows))
	notes := make([]database.HospitalNote, 0, len(rows))
	for _, row := range rows {
		hid := row.text("hid")
		if hid == nil {
			stats.SkippedRows++
			continue
		}

		op := database.HospitalOperation{
			HID:        *hid,
			DocID:      row.text("doc_id"),
			SourceName: row.text("source_name"),
			SourceType: row.text("source_type"),
			Year:       row.integer("year"),
			Region:     row.text("region"),
			Station:    row.text("station"),
			Country:    row.text("country"),
			Act:        row.text("act"),
			Class:      row.text("class"),
		}
		note := database.HospitalNote{
			HID: *hid,

			// Staff cells frequently read "3 MO" or "1 HA"; the loose parse
			// keeps the count and drops the unit.
			StaffMedicalOfficers:    row.integer("staff_medical_officers"),
			StaffHospitalAssistants: row.integer("staff_hospital_assistants"),
			StaffMatron:             row.integer("staff_matron"),
			StaffCoolies:            row.integer("staff_coolies"),
			StaffPeons:              row.integer("staff_peons"),
			StaffWatermen:           row.integer("staff_watermen"),

			InspectionNotes:        row.text("ops_inspection_regularity"),
			UnlicensedControlNotes: row.text("ops_unlicensed_control_notes"),
			CommitteeActivityNotes: row.text("ops_committee_activity_notes"),
			Remarks:                row.text("remarks"),
		}
		note.InspectionFreq = normalization.ClassifyInspectionFrequency(stringOrEmpty(note.InspectionNotes))
		note.UnlicensedControlType = normalization.ClassifyUnlicensedControl(stringOrEmpty(note.UnlicensedControlNotes))
		note.CommitteeSupervision = normalization.ClassifyCommitteeSupervision(stringOrEmpty(note.CommitteeActivityNotes))
		backfillStaffCounts(&note)

		collector.noteDocument(op.DocID, op.SourceName, op.SourceType)
		collector.noteStation(op.Station, op.Region, op.Country)
		ops = append(ops, op)
		notes = append(notes, note)
	}
	return ops, notes, nil
}

// staffRemarkPatterns maps each staff column to the keyword pattern that
// pulls its count out of prose remarks ("2 medical officers and 1 matron").
var staffRemarkPatterns = []struct {
	pattern string
	field   func(*database.HospitalNote) **int
}{
	{`medical officers?`, func(n *database.HospitalNote) **int { return &n.StaffMedicalOfficers }},
	{`hospital assistants?`, func(n *database.HospitalNote) **int { return &n.StaffHospitalAssistants }},
	{`matrons?`, func(n *database.HospitalNote) **int { return &n.StaffMatron }},
	{`coolies?`, func(n *database.HospitalNote) **int { return &n.StaffCoolies }},
	{`peons?`, func(n *database.HospitalNote) **int { return &n.StaffPeons }},
	{`water\s?men`, func(n *database.HospitalNote) **int { return &n.StaffWatermen }},
}

// backfillStaffCounts fills staff columns left blank by the register from
// counts stated in the remarks prose. Explicit cell values always win.
func backfillStaffCounts(note *database.HospitalNote) {
	if note.Remarks == nil {
		return
	}
	for _, staff := range staffRemarkPatterns {
		field := staff.field(note)
		if *field != nil {
			continue
		}
		count, err := normalization.ExtractCountNearKeyword(*note.Remarks, staff.pattern)
		if err != nil || count == nil {
			continue
		}
		*field = count
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
