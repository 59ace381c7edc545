package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockhospitals/database"
)

func womenRow(station string, year int) database.WomenAdmission {
	return database.WomenAdmission{Station: strPtr(station), Year: intPtr(year)}
}

func troopRow(station string, year int) database.TroopRecord {
	return database.TroopRecord{Station: strPtr(station), Year: intPtr(year)}
}

func TestJoinStationYearMatchesDespiteCaseAndWhitespace(t *testing.T) {
	women := []database.WomenAdmission{womenRow("Rangoon", 1880)}
	troops := []database.TroopRecord{troopRow("rangoon ", 1880)}

	joined := JoinStationYear(women, troops, JoinOptions{})

	require.Len(t, joined, 1)
	require.NotNil(t, joined[0].Troops, "troop row must match through the canonical key")
	assert.Equal(t, JoinKey{Station: "rangoon", Year: 1880}, joined[0].Key)
}

func TestJoinStationYearResolvesAliases(t *testing.T) {
	women := []database.WomenAdmission{womenRow("India (British Burma)", 1885)}
	troops := []database.TroopRecord{troopRow("Rangoon", 1885)}

	joined := JoinStationYear(women, troops, JoinOptions{})

	require.Len(t, joined, 1)
	assert.NotNil(t, joined[0].Troops)
	assert.Equal(t, "rangoon", joined[0].Key.Station)
}

func TestJoinStationYearUnmatchedLeftRowKept(t *testing.T) {
	women := []database.WomenAdmission{
		womenRow("Lucknow", 1880),
		womenRow("Umballa", 1881),
	}
	troops := []database.TroopRecord{troopRow("Lucknow", 1880)}

	joined := JoinStationYear(women, troops, JoinOptions{})

	require.Len(t, joined, 2)
	assert.NotNil(t, joined[0].Troops)
	assert.Nil(t, joined[1].Troops, "left row without a troop match is kept with nil troops")
}

func TestJoinStationYearEmptyInputs(t *testing.T) {
	women := []database.WomenAdmission{womenRow("Lucknow", 1880)}
	troops := []database.TroopRecord{troopRow("Lucknow", 1880)}

	assert.Empty(t, JoinStationYear(nil, troops, JoinOptions{}))
	assert.Empty(t, JoinStationYear(women, nil, JoinOptions{}))
	assert.Empty(t, JoinStationYear(nil, nil, JoinOptions{}))
}

func TestJoinStationYearSkipsUnkeyableRows(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: nil, Year: intPtr(1880)},
		{Station: strPtr("None"), Year: intPtr(1880)},
		{Station: strPtr("Lucknow"), Year: nil},
		womenRow("Lucknow", 1880),
	}
	troops := []database.TroopRecord{troopRow("Lucknow", 1880)}

	joined := JoinStationYear(women, troops, JoinOptions{})
	require.Len(t, joined, 1)
	assert.Equal(t, "lucknow", joined[0].Key.Station)
}

func TestJoinStationYearRegionNarrowing(t *testing.T) {
	women := []database.WomenAdmission{
		{Station: strPtr("Secunderabad"), Year: intPtr(1880), Region: strPtr("Madras Presidency")},
	}
	troops := []database.TroopRecord{
		{Station: strPtr("Secunderabad"), Year: intPtr(1880), Region: strPtr("Punjab")},
		{Station: strPtr("Secunderabad"), Year: intPtr(1880), Region: strPtr("madras presidency ")},
	}

	joined := JoinStationYear(women, troops, JoinOptions{UseRegion: true})

	require.Len(t, joined, 1)
	require.NotNil(t, joined[0].Troops)
	assert.Equal(t, "madras presidency", joined[0].Key.Region, "region folds case and whitespace")
}
