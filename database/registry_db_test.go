package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func openTestDB(t *testing.T) *RegistryDB {
	t.Helper()
	db, err := NewRegistryDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaInitIdempotent(t *testing.T) {
	db := openTestDB(t)
	// A second pass over an initialized database must not fail.
	require.NoError(t, InitSchema(db.GetDB()))

	for _, table := range []string{"documents", "stations", "station_reports",
		"women_admission", "troops", "hospital_operations", "hospital_notes"} {
		count, err := db.CountRows(table)
		require.NoError(t, err, table)
		assert.Equal(t, 0, count, table)
	}
}

func TestCountRowsRejectsUnknownTable(t *testing.T) {
	db := openTestDB(t)
	_, err := db.CountRows("sqlite_master; DROP TABLE stations")
	assert.Error(t, err)
}

func TestInsertStationDeduplicatesByName(t *testing.T) {
	db := openTestDB(t)

	first, err := db.InsertStation(Station{Name: "Lucknow", Region: strPtr("North-Western Provinces & Oudh")})
	require.NoError(t, err)
	second, err := db.InsertStation(Station{Name: "Lucknow"})
	require.NoError(t, err)

	assert.Equal(t, first, second, "same name must resolve to the same id")

	stations, err := db.GetStations()
	require.NoError(t, err)
	require.Len(t, stations, 1)
	require.NotNil(t, stations[0].Region)
	assert.Equal(t, "North-Western Provinces & Oudh", *stations[0].Region)
}

func TestWomenAdmissionRoundTrip(t *testing.T) {
	db := openTestDB(t)

	rec := WomenAdmission{
		UniqueID:          "wa-1880-rangoon-1",
		Station:           strPtr("Rangoon"),
		Year:              intPtr(1880),
		WomenAdded:        intPtr(10),
		AvgRegistered:     floatPtr(50),
		FinedCount:        intPtr(2),
		ImprisonmentCount: intPtr(1),
	}
	require.NoError(t, db.InsertWomenAdmission(rec))

	records, err := db.GetWomenAdmissions()
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.UniqueID, got.UniqueID)
	require.NotNil(t, got.Station)
	assert.Equal(t, "Rangoon", *got.Station)
	require.NotNil(t, got.AvgRegistered)
	assert.Equal(t, 50.0, *got.AvgRegistered)
	assert.Nil(t, got.Deaths, "unset columns come back nil, not zero")
}

func TestMergeStationsRepointsReports(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.InsertDocument(Document{DocID: "doc-1"}))
	survivor, err := db.InsertStation(Station{Name: "Sitabaldi (Nagpur)"})
	require.NoError(t, err)
	absorbed, err := db.InsertStation(Station{Name: "Seetabuldee"})
	require.NoError(t, err)
	require.NoError(t, db.InsertStationReport("doc-1", absorbed))

	require.NoError(t, db.MergeStations(map[int64]int64{absorbed: survivor}))

	stations, err := db.GetStations()
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, survivor, stations[0].StationID)

	reports, err := db.GetStationReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, survivor, reports[0].StationID, "report repointed to the surviving station")
}

func TestMergeStationsEmptyRedirects(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.MergeStations(nil))
}

func TestReplaceFactValue(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.InsertHospitalOperation(HospitalOperation{
		HID: "h1", Station: strPtr("Umballa"), Year: intPtr(1880), Act: strPtr("act xiv, 1868"),
	}))
	require.NoError(t, db.InsertHospitalOperation(HospitalOperation{
		HID: "h2", Station: strPtr("Umballa"), Year: intPtr(1881), Act: strPtr("act xiv, 1868"),
	}))

	affected, err := db.ReplaceFactValue("hospital_operations", "act", "act xiv, 1868", "Act XIV of 1868")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	values, err := db.DistinctFactValues("hospital_operations", "act")
	require.NoError(t, err)
	assert.Equal(t, []string{"Act XIV of 1868"}, values)
}

func TestReplaceFactValueRejectsUnknownColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := db.ReplaceFactValue("hospital_operations", "hid", "a", "b")
	assert.Error(t, err)
	_, err = db.ReplaceFactValue("documents", "notes", "a", "b")
	assert.Error(t, err)
}

func TestRebuildStationReports(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.InsertDocument(Document{DocID: "doc-1"}))
	_, err := db.InsertStation(Station{Name: "Lucknow"})
	require.NoError(t, err)

	require.NoError(t, db.InsertWomenAdmission(WomenAdmission{
		UniqueID: "wa-1", DocID: strPtr("doc-1"), Station: strPtr("Lucknow"), Year: intPtr(1880),
	}))
	require.NoError(t, db.InsertTroopRecord(TroopRecord{
		UniqueID: "tr-1", DocID: strPtr("doc-1"), Station: strPtr("Lucknow"), Year: intPtr(1880),
	}))

	inserted, err := db.RebuildStationReports()
	require.NoError(t, err)
	assert.Equal(t, 1, inserted, "one distinct doc/station pair")

	reports, err := db.GetStationReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "doc-1", reports[0].DocID)
}

func TestUpdateHospitalNoteCategories(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.InsertHospitalOperation(HospitalOperation{HID: "h1"}))
	require.NoError(t, db.InsertHospitalNote(HospitalNote{
		HID:             "h1",
		InspectionNotes: strPtr("Inspected weekly by the medical officer"),
	}))

	require.NoError(t, db.UpdateHospitalNoteCategories("h1", strPtr("Weekly"), nil, strPtr("Committee")))

	notes, err := db.GetHospitalNotes()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].InspectionFreq)
	assert.Equal(t, "Weekly", *notes[0].InspectionFreq)
	assert.Nil(t, notes[0].UnlicensedControlType)
}

func TestUpdateStationCoordinates(t *testing.T) {
	db := openTestDB(t)

	_, err := db.InsertStation(Station{Name: "Muttra"})
	require.NoError(t, err)

	affected, err := db.UpdateStationCoordinates("Muttra", 27.4924, 77.6737)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	missed, err := db.UpdateStationCoordinates("Nowhere", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), missed, "unmatched names report zero rows")
}
