package database

// Document is one source report (an annual lock hospital report, a sanitary
// commissioner's return, and so on).
type Document struct {
	DocID      string  `json:"doc_id"`
	SourceName *string `json:"source_name"`
	Type       *string `json:"type"`
	Link       *string `json:"link"`
	Notes      *string `json:"notes"`
}

// Station is a physical lock hospital station. Name is unique; duplicates
// produced by historical spelling variants are merged by the reconciler.
type Station struct {
	StationID int64    `json:"station_id"`
	Name      string   `json:"name"`
	Region    *string  `json:"region"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

// StationReport links a document to a station (many-to-many).
type StationReport struct {
	ReportID  int64  `json:"report_id"`
	DocID     string `json:"doc_id"`
	StationID int64  `json:"station_id"`
}

// WomenAdmission is one station-year observation row from the women_admission
// sheet. Station is denormalized free text, not a foreign key.
type WomenAdmission struct {
	UniqueID   string  `json:"unique_id"`
	DocID      *string `json:"doc_id"`
	SourceName *string `json:"source_name"`
	SourceType *string `json:"source_type"`
	Region     *string `json:"region"`
	Station    *string `json:"station"`
	Country    *string `json:"country"`
	Year       *int    `json:"year"`

	WomenStartRegister *int     `json:"women_start_register"`
	WomenAdded         *int     `json:"women_added"`
	WomenRemoved       *int     `json:"women_removed"`
	WomenEndRegister   *int     `json:"women_end_register"`
	AvgRegistered      *float64 `json:"avg_registered"`

	DiseasePrimarySyphilis   *int `json:"disease_primary_syphilis"`
	DiseaseSecondarySyphilis *int `json:"disease_secondary_syphilis"`
	DiseaseGonorrhoea        *int `json:"disease_gonorrhoea"`
	DiseaseLeucorrhoea       *int `json:"disease_leucorrhoea"`

	FinedCount         *int `json:"fined_count"`
	ImprisonmentCount  *int `json:"imprisonment_count"`
	NonAttendanceCases *int `json:"non_attendance_cases"`
	Discharges         *int `json:"discharges"`
	Deaths             *int `json:"deaths"`

	SideNotes *string `json:"side_notes"`
}

// TroopRecord is one station-year observation row from the troops sheet.
type TroopRecord struct {
	UniqueID   string  `json:"unique_id"`
	DocID      *string `json:"doc_id"`
	SourceName *string `json:"source_name"`
	SourceType *string `json:"source_type"`
	Region     *string `json:"region"`
	Station    *string `json:"station"`
	Country    *string `json:"country"`
	Year       *int    `json:"year"`

	Regiments   *string  `json:"regiments"`
	AvgStrength *float64 `json:"avg_strength"`

	PrimarySyphilis   *int `json:"primary_syphilis"`
	SecondarySyphilis *int `json:"secondary_syphilis"`
	Gonorrhoea        *int `json:"gonorrhoea"`
	TotalAdmissions   *int `json:"total_admissions"`
}

// HospitalOperation records the legal regime (act) and classification a
// hospital operated under in one station-year.
type HospitalOperation struct {
	HID        string  `json:"hid"`
	DocID      *string `json:"doc_id"`
	SourceName *string `json:"source_name"`
	SourceType *string `json:"source_type"`
	Year       *int    `json:"year"`
	Region     *string `json:"region"`
	Station    *string `json:"station"`
	Country    *string `json:"country"`
	Act        *string `json:"act"`
	Class      *string `json:"class"`
}

// HospitalNote is the qualitative record keyed to a HospitalOperation by hid.
// The free-text columns feed the note classifier; the *_freq/_type/
// _supervision columns hold its categorical output.
type HospitalNote struct {
	HID string `json:"hid"`

	StaffMedicalOfficers    *int `json:"staff_medical_officers"`
	StaffHospitalAssistants *int `json:"staff_hospital_assistants"`
	StaffMatron             *int `json:"staff_matron"`
	StaffCoolies            *int `json:"staff_coolies"`
	StaffPeons              *int `json:"staff_peons"`
	StaffWatermen           *int `json:"staff_watermen"`

	InspectionFreq        *string `json:"inspection_freq"`
	UnlicensedControlType *string `json:"unlicensed_control_type"`
	CommitteeSupervision  *string `json:"committee_supervision"`

	InspectionNotes        *string `json:"inspection_notes"`
	UnlicensedControlNotes *string `json:"unlicensed_control_notes"`
	CommitteeActivityNotes *string `json:"committee_activity_notes"`
	Remarks                *string `json:"remarks"`
}
