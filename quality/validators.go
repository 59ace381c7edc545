package quality

import (
	"fmt"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// Severity levels for data-quality findings. Errors are rows a researcher
// should not trust; warnings are worth a look but usable.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// The registers span 1873-1890; anything outside a generous envelope around
// that is a transcription error.
const (
	MinPlausibleYear = 1850
	MaxPlausibleYear = 1950
)

// Issue is one data-quality finding tied to a row and field.
type Issue struct {
	Table    string `json:"table"`
	RowID    string `json:"row_id"`
	Field    string `json:"field"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func newIssue(table, rowID, field, severity, format string, args ...interface{}) Issue {
	return Issue{
		Table:    table,
		RowID:    rowID,
		Field:    field,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	}
}

func checkYear(table, rowID string, year *int) []Issue {
	if year == nil {
		return []Issue{newIssue(table, rowID, "year", SeverityWarning, "year is missing")}
	}
	if *year < MinPlausibleYear || *year > MaxPlausibleYear {
		return []Issue{newIssue(table, rowID, "year", SeverityError,
			"year %d outside plausible range %d-%d", *year, MinPlausibleYear, MaxPlausibleYear)}
	}
	return nil
}

func checkNonNegative(table, rowID, field string, value *int) []Issue {
	if value != nil && *value < 0 {
		return []Issue{newIssue(table, rowID, field, SeverityError, "negative count %d", *value)}
	}
	return nil
}

// CheckStation validates station attributes: coordinate ranges and the
// rough bounding box of British India and Burma.
func CheckStation(station database.Station) []Issue {
	rowID := fmt.Sprintf("%d", station.StationID)
	var issues []Issue

	latValid := station.Latitude == nil || (*station.Latitude >= -90 && *station.Latitude <= 90)
	lonValid := station.Longitude == nil || (*station.Longitude >= -180 && *station.Longitude <= 180)
	if !latValid {
		issues = append(issues, newIssue("stations", rowID, "latitude", SeverityError,
			"latitude %.4f out of range", *station.Latitude))
	}
	if !lonValid {
		issues = append(issues, newIssue("stations", rowID, "longitude", SeverityError,
			"longitude %.4f out of range", *station.Longitude))
	}

	if latValid && lonValid && station.Latitude != nil && station.Longitude != nil {
		// The dataset covers the subcontinent and Burma; coordinates far
		// outside that box almost always mean swapped or mistyped digits.
		if *station.Latitude < 5 || *station.Latitude > 40 ||
			*station.Longitude < 60 || *station.Longitude > 100 {
			issues = append(issues, newIssue("stations", rowID, "latitude", SeverityWarning,
				"coordinates (%.4f, %.4f) outside the expected region", *station.Latitude, *station.Longitude))
		}
	}

	if (station.Latitude == nil) != (station.Longitude == nil) {
		issues = append(issues, newIssue("stations", rowID, "latitude", SeverityWarning,
			"incomplete coordinate pair"))
	}
	return issues
}

// CheckWomenAdmission validates one women-admission row: year plausibility,
// negative counts, and register-flow consistency
// (start + added - removed should equal end when all four are present).
func CheckWomenAdmission(rec database.WomenAdmission) []Issue {
	const table = "women_admission"
	var issues []Issue

	issues = append(issues, checkYear(table, rec.UniqueID, rec.Year)...)

	counts := map[string]*int{
		"women_start_register":       rec.WomenStartRegister,
		"women_added":                rec.WomenAdded,
		"women_removed":              rec.WomenRemoved,
		"women_end_register":         rec.WomenEndRegister,
		"disease_primary_syphilis":   rec.DiseasePrimarySyphilis,
		"disease_secondary_syphilis": rec.DiseaseSecondarySyphilis,
		"disease_gonorrhoea":         rec.DiseaseGonorrhoea,
		"disease_leucorrhoea":        rec.DiseaseLeucorrhoea,
		"fined_count":                rec.FinedCount,
		"imprisonment_count":         rec.ImprisonmentCount,
		"non_attendance_cases":       rec.NonAttendanceCases,
		"discharges":                 rec.Discharges,
		"deaths":                     rec.Deaths,
	}
	for field, value := range counts {
		issues = append(issues, checkNonNegative(table, rec.UniqueID, field, value)...)
	}

	if rec.AvgRegistered != nil && *rec.AvgRegistered < 0 {
		issues = append(issues, newIssue(table, rec.UniqueID, "avg_registered", SeverityError,
			"negative average register %.2f", *rec.AvgRegistered))
	}

	if rec.WomenStartRegister != nil && rec.WomenAdded != nil &&
		rec.WomenRemoved != nil && rec.WomenEndRegister != nil {
		expected := *rec.WomenStartRegister + *rec.WomenAdded - *rec.WomenRemoved
		if expected != *rec.WomenEndRegister {
			issues = append(issues, newIssue(table, rec.UniqueID, "women_end_register", SeverityWarning,
				"register flow inconsistent: %d + %d - %d = %d, recorded end %d",
				*rec.WomenStartRegister, *rec.WomenAdded, *rec.WomenRemoved, expected, *rec.WomenEndRegister))
		}
	}

	if rec.Station == nil {
		issues = append(issues, newIssue(table, rec.UniqueID, "station", SeverityWarning, "station is missing"))
	}
	return issues
}

// CheckTroopRecord validates one troop row.
func CheckTroopRecord(rec database.TroopRecord) []Issue {
	const table = "troops"
	var issues []Issue

	issues = append(issues, checkYear(table, rec.UniqueID, rec.Year)...)

	counts := map[string]*int{
		"primary_syphilis":   rec.PrimarySyphilis,
		"secondary_syphilis": rec.SecondarySyphilis,
		"gonorrhoea":         rec.Gonorrhoea,
		"total_admissions":   rec.TotalAdmissions,
	}
	for field, value := range counts {
		issues = append(issues, checkNonNegative(table, rec.UniqueID, field, value)...)
	}

	if rec.AvgStrength != nil && *rec.AvgStrength < 0 {
		issues = append(issues, newIssue(table, rec.UniqueID, "avg_strength", SeverityError,
			"negative troop strength %.2f", *rec.AvgStrength))
	}

	if rec.Station == nil {
		issues = append(issues, newIssue(table, rec.UniqueID, "station", SeverityWarning, "station is missing"))
	}
	return issues
}

// CheckHospitalOperation validates one hospital-operation row.
func CheckHospitalOperation(rec database.HospitalOperation) []Issue {
	var issues []Issue
	issues = append(issues, checkYear("hospital_operations", rec.HID, rec.Year)...)
	if rec.Station == nil {
		issues = append(issues, newIssue("hospital_operations", rec.HID, "station", SeverityWarning,
			"station is missing"))
	}
	return issues
}

// staffRoles maps each staff-count column to the terms the remarks prose uses
// for the role, so a mention without a recorded count can be flagged.
var staffRoles = []struct {
	field string
	label string
	terms []string
	value func(database.HospitalNote) *int
}{
	// Terms are single tokens on purpose: mention matching is per-token, so
	// "hospital assistant" as a term would fire on the bare word "hospital".
	{"staff_medical_officers", "medical officer", []string{"surgeon", "officer"},
		func(n database.HospitalNote) *int { return n.StaffMedicalOfficers }},
	{"staff_hospital_assistants", "hospital assistant", []string{"assistant"},
		func(n database.HospitalNote) *int { return n.StaffHospitalAssistants }},
	{"staff_matron", "matron", []string{"matron"},
		func(n database.HospitalNote) *int { return n.StaffMatron }},
	{"staff_coolies", "coolie", []string{"coolie"},
		func(n database.HospitalNote) *int { return n.StaffCoolies }},
	{"staff_peons", "peon", []string{"peon"},
		func(n database.HospitalNote) *int { return n.StaffPeons }},
	{"staff_watermen", "waterman", []string{"waterman", "watermen"},
		func(n database.HospitalNote) *int { return n.StaffWatermen }},
}

// roleNegationWindow is how many tokens before a role mention a negation word
// ("no matron", "post of peon vacant") still suppresses it.
const roleNegationWindow = 3

// CheckHospitalNote validates one hospital-note row: negative staff counts,
// and staff roles the remarks mention without a count in the column. Negated
// mentions ("no waterman") do not count.
func CheckHospitalNote(note database.HospitalNote) []Issue {
	const table = "hospital_notes"
	var issues []Issue

	for _, role := range staffRoles {
		count := role.value(note)
		issues = append(issues, checkNonNegative(table, note.HID, role.field, count)...)
		if count != nil || note.Remarks == nil {
			continue
		}
		if normalization.CountRoleMentions(*note.Remarks, role.terms, roleNegationWindow) > 0 {
			issues = append(issues, newIssue(table, note.HID, role.field, SeverityWarning,
				"remarks mention a %s but no count is recorded", role.label))
		}
	}
	return issues
}
