package services

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockhospitals/database"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func openServiceDB(t *testing.T) *database.RegistryDB {
	t.Helper()
	db, err := database.NewRegistryDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedRegistry loads a small but fully linked dataset: one document, four
// stations (one a spelling variant of Rangoon), matched women and troop rows
// for Rangoon 1880, and one classified hospital operation.
func seedRegistry(t *testing.T, db *database.RegistryDB) {
	t.Helper()

	require.NoError(t, db.InsertDocument(database.Document{
		DocID:      "doc-1",
		SourceName: strPtr("Annual Report on Lock Hospitals, British Burma, 1880"),
		Type:       strPtr("annual report"),
	}))

	stations := []database.Station{
		{Name: "Rangoon", Region: strPtr("Burma"), Country: strPtr("British Burma")},
		{Name: "India (British Burma) Rangoon", Region: strPtr("Burma"), Country: strPtr("British Burma")},
		{Name: "Lucknow", Region: strPtr("Oudh"), Country: strPtr("British India")},
		{Name: "Mooltan", Region: strPtr("Punjab"), Country: strPtr("British India")},
	}
	for _, station := range stations {
		_, err := db.InsertStation(station)
		require.NoError(t, err)
	}

	require.NoError(t, db.InsertWomenAdmission(database.WomenAdmission{
		UniqueID:                 "w-1",
		DocID:                    strPtr("doc-1"),
		Region:                   strPtr("madras"),
		Station:                  strPtr("India (British Burma) Rangoon"),
		Country:                  strPtr("burmah"),
		Year:                     intPtr(1880),
		WomenStartRegister:       intPtr(40),
		WomenAdded:               intPtr(20),
		WomenRemoved:             intPtr(10),
		WomenEndRegister:         intPtr(50),
		AvgRegistered:            floatPtr(50),
		DiseasePrimarySyphilis:   intPtr(3),
		DiseaseSecondarySyphilis: intPtr(2),
		DiseaseGonorrhoea:        intPtr(4),
		DiseaseLeucorrhoea:       intPtr(1),
		FinedCount:               intPtr(2),
		ImprisonmentCount:        intPtr(1),
	}))
	require.NoError(t, db.InsertWomenAdmission(database.WomenAdmission{
		UniqueID:      "w-2",
		DocID:         strPtr("doc-1"),
		Station:       strPtr("Lucknow"),
		Year:          intPtr(1880),
		WomenAdded:    intPtr(5),
		AvgRegistered: floatPtr(25),
	}))

	require.NoError(t, db.InsertTroopRecord(database.TroopRecord{
		UniqueID:        "t-1",
		DocID:           strPtr("doc-1"),
		Station:         strPtr("Rangoon"),
		Year:            intPtr(1880),
		AvgStrength:     floatPtr(500),
		TotalAdmissions: intPtr(60),
	}))

	require.NoError(t, db.InsertHospitalOperation(database.HospitalOperation{
		HID:     "h-1",
		DocID:   strPtr("doc-1"),
		Station: strPtr("Rangoon"),
		Year:    intPtr(1880),
		Act:     strPtr("act xiv, 1868"),
		Class:   strPtr("1st class"),
	}))
	require.NoError(t, db.InsertHospitalNote(database.HospitalNote{
		HID:                    "h-1",
		StaffMedicalOfficers:   intPtr(2),
		InspectionNotes:        strPtr("Examined weekly by the medical officer"),
		UnlicensedControlNotes: strPtr("Police action"),
		CommitteeActivityNotes: strPtr("Visited regularly by the magistrate"),
	}))
}

func TestReconciliationRunMergesSpellingVariants(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewReconciliationService(db, slog.Default())
	result, err := service.Run(false)
	require.NoError(t, err)

	assert.False(t, result.DryRun)
	assert.Equal(t, 4, result.StationsBefore)
	assert.Equal(t, 3, result.StationsAfter)
	assert.Equal(t, 1, result.Merged)
	assert.Empty(t, result.Collisions)
	assert.Equal(t, 1, result.CoordinateFixes) // Mooltan is in the correction table

	stations, err := db.GetStations()
	require.NoError(t, err)
	require.Len(t, stations, 3)

	names := make([]string, 0, len(stations))
	for _, station := range stations {
		names = append(names, station.Name)
	}
	assert.Contains(t, names, "Rangoon")
	assert.NotContains(t, names, "India (British Burma) Rangoon")

	// Fact rows that carried the variant spelling now use the survivor's name.
	spellings, err := db.DistinctFactValues("women_admission", "station")
	require.NoError(t, err)
	assert.Contains(t, spellings, "Rangoon")
	assert.NotContains(t, spellings, "India (British Burma) Rangoon")

	for _, station := range stations {
		if station.Name == "Mooltan" {
			require.NotNil(t, station.Latitude)
			assert.InDelta(t, 30.1575, *station.Latitude, 0.0001)
		}
	}
}

func TestReconciliationDryRunLeavesRegistryUntouched(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewReconciliationService(db, slog.Default())
	result, err := service.Run(true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Merged)
	assert.GreaterOrEqual(t, result.RenamedFactRows, int64(1))

	stations, err := db.GetStations()
	require.NoError(t, err)
	assert.Len(t, stations, 4)

	spellings, err := db.DistinctFactValues("women_admission", "station")
	require.NoError(t, err)
	assert.Contains(t, spellings, "India (British Burma) Rangoon")
}

func TestStandardizeVocabularies(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewReconciliationService(db, slog.Default())
	result, err := service.StandardizeVocabularies(false)
	require.NoError(t, err)

	assert.False(t, result.DryRun)
	assert.GreaterOrEqual(t, result.RowsTouched, int64(3))

	acts, err := db.DistinctFactValues("hospital_operations", "act")
	require.NoError(t, err)
	assert.Equal(t, []string{"Act XIV of 1868"}, acts)

	classes, err := db.DistinctFactValues("hospital_operations", "class")
	require.NoError(t, err)
	assert.Equal(t, []string{"First Class"}, classes)

	regions, err := db.DistinctFactValues("women_admission", "region")
	require.NoError(t, err)
	assert.Contains(t, regions, "Madras Presidency")

	countries, err := db.DistinctFactValues("women_admission", "country")
	require.NoError(t, err)
	assert.Contains(t, countries, "British Burma")

	// Second pass finds nothing left to rewrite.
	again, err := service.StandardizeVocabularies(false)
	require.NoError(t, err)
	assert.Zero(t, again.RowsTouched)
}

func TestStandardizeVocabulariesDryRunCountsOnly(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewReconciliationService(db, slog.Default())
	result, err := service.StandardizeVocabularies(true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.GreaterOrEqual(t, result.RowsTouched, int64(3))

	acts, err := db.DistinctFactValues("hospital_operations", "act")
	require.NoError(t, err)
	assert.Equal(t, []string{"act xiv, 1868"}, acts)
}

func TestClassifyNotes(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewClassificationService(db, slog.Default())
	result, err := service.ClassifyNotes()
	require.NoError(t, err)

	assert.Equal(t, 1, result.NotesProcessed)
	assert.Equal(t, 1, result.NotesUpdated)
	assert.Equal(t, 1, result.FrequencyCount["Weekly"])
	assert.Equal(t, 1, result.ControlCount["Police Action"])
	assert.Equal(t, 1, result.SupervisionCnt["Magistrate Oversight"])

	notes, err := db.GetHospitalNotes()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].InspectionFreq)
	assert.Equal(t, "Weekly", *notes[0].InspectionFreq)

	// Re-running is a no-op: the stored categories already match.
	again, err := service.ClassifyNotes()
	require.NoError(t, err)
	assert.Zero(t, again.NotesUpdated)
}

func TestDashboardStationYearView(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewDashboardService(db, slog.Default())

	view, err := service.StationYearView(ViewFilter{Station: "  RANGOON "})
	require.NoError(t, err)
	require.Len(t, view, 1)

	row := view[0]
	assert.Equal(t, "rangoon", row.Station)
	assert.Equal(t, "Rangoon", row.DisplayName)
	assert.Equal(t, 1880, row.Year)

	// (20 added + 50 registered) / 500 strength * 1000
	require.NotNil(t, row.SurveillanceIndex)
	assert.InDelta(t, 140.0, *row.SurveillanceIndex, 0.0001)
	// (2 fined + 1 imprisoned * 2) / 50 registered * 100
	require.NotNil(t, row.PunishmentRate)
	assert.InDelta(t, 8.0, *row.PunishmentRate, 0.0001)
	require.NotNil(t, row.TroopDiseaseRate)
	assert.InDelta(t, 120.0, *row.TroopDiseaseRate, 0.0001)

	require.NotNil(t, row.Act)
	assert.Equal(t, "act xiv, 1868", *row.Act)
}

func TestDashboardViewFilters(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewDashboardService(db, slog.Default())

	all, err := service.StationYearView(ViewFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byYear, err := service.StationYearView(ViewFilter{Year: 1880})
	require.NoError(t, err)
	assert.Len(t, byYear, 2)

	none, err := service.StationYearView(ViewFilter{Year: 1999})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDashboardBuildSummaries(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewDashboardService(db, slog.Default())
	summaries, err := service.BuildSummaries()
	require.NoError(t, err)

	require.Len(t, summaries.Yearly, 1)
	assert.Equal(t, 1880, summaries.Yearly[0].Year)
	assert.NotEmpty(t, summaries.Regional)
	require.Len(t, summaries.Acts, 1)
	assert.Equal(t, 1, summaries.Acts[0].StationYears)
	assert.NotEmpty(t, summaries.Diseases)
	assert.NotEmpty(t, summaries.Punishment)
}

func TestQualityServiceBuildReport(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	// A row with a negative count and an unknown station spelling.
	require.NoError(t, db.InsertWomenAdmission(database.WomenAdmission{
		UniqueID: "w-bad",
		Station:  strPtr("Ghost Station"),
		Year:     intPtr(1880),
		Deaths:   intPtr(-3),
	}))

	service := NewQualityService(db, slog.Default())
	report, err := service.BuildReport()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, report.ErrorCount, 1)
	assert.Contains(t, report.OrphanStations, "ghost station")
	assert.Equal(t, 3, report.RowCounts["women_admission"])
}

func TestStationServiceListStations(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewStationService(db, slog.Default())
	views, err := service.ListStations()
	require.NoError(t, err)
	require.Len(t, views, 4)

	byName := make(map[string]StationView, len(views))
	for _, view := range views {
		byName[view.Name] = view
	}
	variant := byName["India (British Burma) Rangoon"]
	assert.Equal(t, "rangoon", variant.CanonicalName)
	assert.Equal(t, "Rangoon", variant.DisplayName)
}

func TestBrowseTablePaging(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	service := NewStationService(db, slog.Default())

	page, err := service.BrowseTable("stations", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Len(t, page.Rows.([]database.Station), 2)

	tail, err := service.BrowseTable("stations", 2, 3)
	require.NoError(t, err)
	assert.Len(t, tail.Rows.([]database.Station), 1)

	past, err := service.BrowseTable("stations", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, past.Rows.([]database.Station))

	_, err = service.BrowseTable("sqlite_master", 10, 0)
	assert.Error(t, err)
}

func TestExportStationYears(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	dashboard := NewDashboardService(db, slog.Default())
	exportDir := t.TempDir()
	service := NewExportService(dashboard, exportDir, slog.Default())

	for _, format := range []string{FormatCSV, FormatJSON, FormatXLSX} {
		path, err := service.ExportStationYears(format)
		require.NoError(t, err, format)
		assert.Equal(t, exportDir, filepath.Dir(path))

		info, err := os.Stat(path)
		require.NoError(t, err, format)
		assert.Greater(t, info.Size(), int64(0), format)
	}

	_, err := service.ExportStationYears("pdf")
	assert.Error(t, err)
}

func TestExportCSVContents(t *testing.T) {
	db := openServiceDB(t)
	seedRegistry(t, db)

	dashboard := NewDashboardService(db, slog.Default())
	service := NewExportService(dashboard, t.TempDir(), slog.Default())

	path, err := service.ExportStationYears(FormatCSV)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3) // header + two station-years
	assert.True(t, strings.HasPrefix(lines[0], "station,year,region"))
	assert.Contains(t, string(raw), "Rangoon")
}
