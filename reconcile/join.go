package reconcile

import (
	"sort"
	"strings"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// JoinKey identifies one station-year slice. Region and Country are empty
// unless join options ask for them.
type JoinKey struct {
	Station string
	Year    int
	Region  string
	Country string
}

// JoinOptions narrows the join key beyond (station, year). Narrowing by
// region or country reduces collision risk between same-named stations, at
// the cost of splitting rows whose region/country column is blank.
type JoinOptions struct {
	UseRegion  bool
	UseCountry bool
}

// JoinedRecord pairs a women-admission row with the troop row (if any) for
// the same station-year.
type JoinedRecord struct {
	Key    JoinKey
	Women  database.WomenAdmission
	Troops *database.TroopRecord
}

// JoinStationYear left-joins women-admission rows to troop rows on canonical
// station name and year. Rows whose station canonicalizes to nothing, or
// whose year is missing, cannot be keyed and are skipped. Either input being
// empty yields an empty result.
func JoinStationYear(women []database.WomenAdmission, troops []database.TroopRecord, opts JoinOptions) []JoinedRecord {
	if len(women) == 0 || len(troops) == 0 {
		return nil
	}

	troopsByKey := make(map[JoinKey]*database.TroopRecord)
	for i := range troops {
		key, ok := troopKey(&troops[i], opts)
		if !ok {
			continue
		}
		if _, exists := troopsByKey[key]; !exists {
			troopsByKey[key] = &troops[i]
		}
	}

	var joined []JoinedRecord
	for _, row := range women {
		key, ok := womenKey(&row, opts)
		if !ok {
			continue
		}
		joined = append(joined, JoinedRecord{
			Key:    key,
			Women:  row,
			Troops: troopsByKey[key],
		})
	}
	return joined
}

func womenKey(row *database.WomenAdmission, opts JoinOptions) (JoinKey, bool) {
	return buildKey(row.Station, row.Year, row.Region, row.Country, opts)
}

func troopKey(row *database.TroopRecord, opts JoinOptions) (JoinKey, bool) {
	return buildKey(row.Station, row.Year, row.Region, row.Country, opts)
}

func buildKey(station *string, year *int, region, country *string, opts JoinOptions) (JoinKey, bool) {
	if station == nil || year == nil {
		return JoinKey{}, false
	}
	canonical := normalization.CanonicalStationName(*station)
	if canonical == "" {
		return JoinKey{}, false
	}

	key := JoinKey{Station: canonical, Year: *year}
	if opts.UseRegion {
		key.Region = foldKeyPart(region)
	}
	if opts.UseCountry {
		key.Country = foldKeyPart(country)
	}
	return key, true
}

func foldKeyPart(value *string) string {
	if value == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*value))
}

func sortKeys(keys []JoinKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Station != b.Station {
			return a.Station < b.Station
		}
		return a.Year < b.Year
	})
}
