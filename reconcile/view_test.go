package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockhospitals/database"
)

func TestBuildStationYearViewEndToEnd(t *testing.T) {
	women := []database.WomenAdmission{
		{
			Station:           strPtr("Rangoon"),
			Year:              intPtr(1880),
			AvgRegistered:     floatPtr(50),
			WomenAdded:        intPtr(10),
			FinedCount:        intPtr(2),
			ImprisonmentCount: intPtr(1),
		},
	}
	troops := []database.TroopRecord{
		{Station: strPtr("rangoon "), Year: intPtr(1880), AvgStrength: floatPtr(500)},
	}

	view := BuildStationYearView(women, troops, nil)

	require.Len(t, view, 1)
	row := view[0]
	assert.Equal(t, "rangoon", row.Station)
	assert.Equal(t, "Rangoon", row.DisplayName)
	assert.Equal(t, 1880, row.Year)

	require.NotNil(t, row.SurveillanceIndex)
	assert.InDelta(t, 120.0, *row.SurveillanceIndex, 1e-9)
	require.NotNil(t, row.PunishmentRate)
	assert.InDelta(t, 8.0, *row.PunishmentRate, 1e-9)
}

func TestBuildStationYearViewFoldsDuplicateRows(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: strPtr("Lucknow"), Year: intPtr(1882), WomenAdded: intPtr(4), AvgRegistered: floatPtr(30)},
		{Station: strPtr("lucknow"), Year: intPtr(1882), WomenAdded: intPtr(6), AvgRegistered: floatPtr(50)},
	}

	view := BuildStationYearView(women, nil, nil)

	require.Len(t, view, 1)
	row := view[0]
	require.NotNil(t, row.WomenAdded)
	assert.Equal(t, 10, *row.WomenAdded, "counts sum across source rows")
	require.NotNil(t, row.AvgRegistered)
	assert.InDelta(t, 40.0, *row.AvgRegistered, 1e-9, "register averages take the mean")
	assert.Nil(t, row.SurveillanceIndex, "no troop strength, no index")
}

func TestBuildStationYearViewTroopOnlyKey(t *testing.T) {
	troops := []database.TroopRecord{
		{Station: strPtr("Meean Meer"), Year: intPtr(1879), AvgStrength: floatPtr(800), TotalAdmissions: intPtr(40)},
	}

	view := BuildStationYearView(nil, troops, nil)

	require.Len(t, view, 1)
	row := view[0]
	assert.Equal(t, "meean meer", row.Station)
	assert.Nil(t, row.AvgRegistered)
	assert.Nil(t, row.PunishmentRate)
	require.NotNil(t, row.TroopDiseaseRate)
	assert.InDelta(t, 50.0, *row.TroopDiseaseRate, 1e-9)
}

func TestBuildStationYearViewAttachesOperation(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: strPtr("Umballa"), Year: intPtr(1880), AvgRegistered: floatPtr(20)},
	}
	ops := []database.HospitalOperation{
		{HID: "h1", Station: strPtr("umballa"), Year: intPtr(1880), Act: strPtr("Act XIV of 1868"), Class: strPtr("First Class")},
	}

	view := BuildStationYearView(women, nil, ops)

	require.Len(t, view, 1)
	require.NotNil(t, view[0].Act)
	assert.Equal(t, "Act XIV of 1868", *view[0].Act)
	require.NotNil(t, view[0].Class)
	assert.Equal(t, "First Class", *view[0].Class)
}

func TestBuildStationYearViewDiseaseTotals(t *testing.T) {
	women := []database.WomenAdmission{
		{
			Station:                strPtr("Fyzabad"),
			Year:                   intPtr(1881),
			AvgRegistered:          floatPtr(40),
			DiseasePrimarySyphilis: intPtr(6),
			DiseaseGonorrhoea:      intPtr(4),
		},
	}

	view := BuildStationYearView(women, nil, nil)

	require.Len(t, view, 1)
	row := view[0]
	require.NotNil(t, row.WomenDiseaseTotal)
	assert.Equal(t, 10, *row.WomenDiseaseTotal)
	require.NotNil(t, row.WomenDiseaseRate)
	assert.InDelta(t, 25.0, *row.WomenDiseaseRate, 1e-9)
}

func TestBuildStationYearViewSorted(t *testing.T) {
	women := []database.WomenAdmission{
		womenRow("Umballa", 1881),
		womenRow("Lucknow", 1882),
		womenRow("Lucknow", 1880),
	}

	view := BuildStationYearView(women, nil, nil)

	require.Len(t, view, 3)
	assert.Equal(t, "lucknow", view[0].Station)
	assert.Equal(t, 1880, view[0].Year)
	assert.Equal(t, "lucknow", view[1].Station)
	assert.Equal(t, 1882, view[1].Year)
	assert.Equal(t, "umballa", view[2].Station)
}

func TestYearlySummaries(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: strPtr("Lucknow"), Year: intPtr(1880), WomenAdded: intPtr(10), AvgRegistered: floatPtr(50), FinedCount: intPtr(2), ImprisonmentCount: intPtr(1)},
		{Station: strPtr("Umballa"), Year: intPtr(1880), WomenAdded: intPtr(20), AvgRegistered: floatPtr(100)},
		{Station: strPtr("Lucknow"), Year: intPtr(1881), WomenAdded: intPtr(5)},
	}

	view := BuildStationYearView(women, nil, nil)
	summaries := YearlySummaries(view)

	require.Len(t, summaries, 2)
	first := summaries[0]
	assert.Equal(t, 1880, first.Year)
	assert.Equal(t, 2, first.Stations)
	require.NotNil(t, first.WomenAdded)
	assert.Equal(t, 30, *first.WomenAdded)
	require.NotNil(t, first.MeanAvgRegistered)
	assert.InDelta(t, 75.0, *first.MeanAvgRegistered, 1e-9)
	require.NotNil(t, first.MeanPunishmentRate, "one station carries a rate, the mean exists")
	assert.InDelta(t, 8.0, *first.MeanPunishmentRate, 1e-9)

	second := summaries[1]
	assert.Equal(t, 1881, second.Year)
	assert.Nil(t, second.MeanAvgRegistered, "no registered data in 1881")
}

func TestRegionalSummaries(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: strPtr("Madras"), Year: intPtr(1880), Region: strPtr("Madras Presidency"), WomenAdded: intPtr(3)},
		{Station: strPtr("Bangalore"), Year: intPtr(1880), Region: strPtr("Madras Presidency"), WomenAdded: intPtr(7)},
		{Station: strPtr("Lucknow"), Year: intPtr(1880), WomenAdded: intPtr(1)},
	}

	summaries := RegionalSummaries(BuildStationYearView(women, nil, nil))

	require.Len(t, summaries, 2)
	assert.Equal(t, "Madras Presidency", summaries[0].Region)
	assert.Equal(t, 2, summaries[0].StationYears)
	require.NotNil(t, summaries[0].WomenAdded)
	assert.Equal(t, 10, *summaries[0].WomenAdded)
	assert.Equal(t, "Unknown", summaries[1].Region)
}

func TestActSummaries(t *testing.T) {
	ops := []database.HospitalOperation{
		{HID: "h1", Act: strPtr("Act XIV of 1868")},
		{HID: "h2", Act: strPtr("Act XIV of 1868")},
		{HID: "h3", Act: strPtr("Act XXII of 1864")},
		{HID: "h4", Act: nil},
	}

	summaries := ActSummaries(ops)

	require.Len(t, summaries, 2)
	assert.Equal(t, ActSummary{Act: "Act XIV of 1868", StationYears: 2}, summaries[0])
	assert.Equal(t, ActSummary{Act: "Act XXII of 1864", StationYears: 1}, summaries[1])
}

func TestDiseaseAndPunishmentSummaries(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: strPtr("Lucknow"), Year: intPtr(1880), DiseasePrimarySyphilis: intPtr(5), DiseaseGonorrhoea: intPtr(3), FinedCount: intPtr(2), AvgRegistered: floatPtr(50)},
		{Station: strPtr("Umballa"), Year: intPtr(1880), DiseaseSecondarySyphilis: intPtr(4), ImprisonmentCount: intPtr(1), AvgRegistered: floatPtr(25)},
	}

	view := BuildStationYearView(women, nil, nil)

	diseases := DiseaseSummaries(view)
	require.Len(t, diseases, 1)
	require.NotNil(t, diseases[0].Total)
	assert.Equal(t, 12, *diseases[0].Total)

	punishments := PunishmentSummaries(view)
	require.Len(t, punishments, 1)
	require.NotNil(t, punishments[0].Fined)
	assert.Equal(t, 2, *punishments[0].Fined)
	require.NotNil(t, punishments[0].Imprisoned)
	assert.Equal(t, 1, *punishments[0].Imprisoned)
	require.NotNil(t, punishments[0].MeanPunishmentRate)
	// lucknow: 2/50*100 = 4; umballa: 2/25*100 = 8; mean = 6
	assert.InDelta(t, 6.0, *punishments[0].MeanPunishmentRate, 1e-9)
}
