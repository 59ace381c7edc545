package reconcile

import (
	"sort"
	"strings"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// Collision is a canonical-name clash between stations whose region or
// country attributes disagree. Such groups are reported for manual review
// instead of being merged: they may be distinct places that happen to share
// a name.
type Collision struct {
	CanonicalName string  `json:"canonical_name"`
	StationIDs    []int64 `json:"station_ids"`
}

// DedupResult is the outcome of one deduplication pass. Redirects maps each
// absorbed station id to its surviving id so dependent rows can be repointed.
type DedupResult struct {
	Stations   []database.Station `json:"stations"`
	Redirects  map[int64]int64    `json:"redirects"`
	Collisions []Collision        `json:"collisions"`
}

// DeduplicateStations groups stations by canonical name and merges each
// unambiguous group into its lowest-id member. The survivor takes the
// preferred display spelling and the most complete coordinate pair found in
// the group; other attributes come from the lowest-id row that has them.
//
// The pass is idempotent and order-independent: re-running on its own output
// produces no redirects and leaves every station unchanged.
func DeduplicateStations(stations []database.Station) DedupResult {
	result := DedupResult{Redirects: make(map[int64]int64)}

	groups := make(map[string][]database.Station)
	var order []string
	for _, station := range stations {
		key := normalization.CanonicalStationName(station.Name)
		if key == "" {
			// Nameless rows cannot be reconciled; pass them through.
			result.Stations = append(result.Stations, station)
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], station)
	}
	sort.Strings(order)

	for _, key := range order {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool { return group[i].StationID < group[j].StationID })

		if len(group) == 1 {
			// No duplicate; the row keeps its recorded spelling.
			result.Stations = append(result.Stations, group[0])
			continue
		}

		if conflicting(group) {
			result.Collisions = append(result.Collisions, Collision{
				CanonicalName: key,
				StationIDs:    stationIDs(group),
			})
			result.Stations = append(result.Stations, group...)
			continue
		}

		survivor := mergeGroup(key, group)
		result.Stations = append(result.Stations, survivor)
		for _, absorbed := range group[1:] {
			result.Redirects[absorbed.StationID] = survivor.StationID
		}
	}

	sort.Slice(result.Stations, func(i, j int) bool {
		return result.Stations[i].StationID < result.Stations[j].StationID
	})
	return result
}

// conflicting reports whether a canonical-name group carries more than one
// distinct region or country, which makes an automatic merge unsafe.
func conflicting(group []database.Station) bool {
	return distinctCount(group, func(s database.Station) *string { return s.Region }) > 1 ||
		distinctCount(group, func(s database.Station) *string { return s.Country }) > 1
}

func distinctCount(group []database.Station, field func(database.Station) *string) int {
	seen := make(map[string]struct{})
	for _, station := range group {
		value := field(station)
		if value == nil {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(*value))
		if normalized == "" {
			continue
		}
		seen[normalized] = struct{}{}
	}
	return len(seen)
}

func stationIDs(group []database.Station) []int64 {
	ids := make([]int64, len(group))
	for i, station := range group {
		ids[i] = station.StationID
	}
	return ids
}

// mergeGroup folds an id-sorted group into its first member. Coordinates
// prefer the lowest-id row carrying a complete latitude/longitude pair;
// remaining attributes take the first non-nil value in id order.
func mergeGroup(key string, group []database.Station) database.Station {
	survivor := group[0]
	survivor.Name = normalization.StationDisplayName(key)

	if survivor.Latitude == nil || survivor.Longitude == nil {
		for _, candidate := range group {
			if candidate.Latitude != nil && candidate.Longitude != nil {
				survivor.Latitude = candidate.Latitude
				survivor.Longitude = candidate.Longitude
				break
			}
		}
	}
	for _, candidate := range group {
		if survivor.Latitude == nil {
			survivor.Latitude = candidate.Latitude
		}
		if survivor.Longitude == nil {
			survivor.Longitude = candidate.Longitude
		}
		if survivor.Region == nil {
			survivor.Region = candidate.Region
		}
		if survivor.Country == nil {
			survivor.Country = candidate.Country
		}
		if survivor.Notes == nil {
			survivor.Notes = candidate.Notes
		}
	}
	return survivor
}
