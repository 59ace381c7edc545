package reconcile

import (
	"sort"

	"lockhospitals/database"
)

// YearSummary is the temporal rollup feeding the dashboard's trend charts.
type YearSummary struct {
	Year                  int      `json:"year"`
	Stations              int      `json:"stations"`
	WomenAdded            *int     `json:"women_added"`
	MeanAvgRegistered     *float64 `json:"mean_avg_registered"`
	MeanSurveillanceIndex *float64 `json:"mean_surveillance_index"`
	MeanPunishmentRate    *float64 `json:"mean_punishment_rate"`
}

// RegionSummary aggregates station-years by administrative region. Rows
// with no recorded region fall into the "Unknown" bucket.
type RegionSummary struct {
	Region                string   `json:"region"`
	StationYears          int      `json:"station_years"`
	WomenAdded            *int     `json:"women_added"`
	MeanSurveillanceIndex *float64 `json:"mean_surveillance_index"`
	MeanPunishmentRate    *float64 `json:"mean_punishment_rate"`
}

// ActSummary counts station-years operating under each legal regime.
type ActSummary struct {
	Act          string `json:"act"`
	StationYears int    `json:"station_years"`
}

// DiseaseYearSummary is the per-year disease breakdown across all stations.
type DiseaseYearSummary struct {
	Year              int  `json:"year"`
	PrimarySyphilis   *int `json:"primary_syphilis"`
	SecondarySyphilis *int `json:"secondary_syphilis"`
	Gonorrhoea        *int `json:"gonorrhoea"`
	Leucorrhoea       *int `json:"leucorrhoea"`
	Total             *int `json:"total"`
}

// PunishmentYearSummary is the per-year punitive-action breakdown.
type PunishmentYearSummary struct {
	Year               int      `json:"year"`
	Fined              *int     `json:"fined"`
	Imprisoned         *int     `json:"imprisoned"`
	NonAttendance      *int     `json:"non_attendance"`
	MeanPunishmentRate *float64 `json:"mean_punishment_rate"`
}

type meanAccumulator struct {
	sum   float64
	count int
}

func (m *meanAccumulator) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.count++
}

func (m *meanAccumulator) mean() *float64 {
	if m.count == 0 {
		return nil
	}
	value := m.sum / float64(m.count)
	return &value
}

// YearlySummaries rolls the station-year view up by year, sorted ascending.
func YearlySummaries(view []StationYear) []YearSummary {
	type yearAcc struct {
		stations     map[string]struct{}
		womenAdded   *int
		registered   meanAccumulator
		surveillance meanAccumulator
		punishment   meanAccumulator
	}

	byYear := make(map[int]*yearAcc)
	for _, row := range view {
		acc := byYear[row.Year]
		if acc == nil {
			acc = &yearAcc{stations: make(map[string]struct{})}
			byYear[row.Year] = acc
		}
		acc.stations[row.Station] = struct{}{}
		addCount(&acc.womenAdded, row.WomenAdded)
		acc.registered.add(row.AvgRegistered)
		acc.surveillance.add(row.SurveillanceIndex)
		acc.punishment.add(row.PunishmentRate)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	summaries := make([]YearSummary, 0, len(years))
	for _, year := range years {
		acc := byYear[year]
		summaries = append(summaries, YearSummary{
			Year:                  year,
			Stations:              len(acc.stations),
			WomenAdded:            acc.womenAdded,
			MeanAvgRegistered:     acc.registered.mean(),
			MeanSurveillanceIndex: acc.surveillance.mean(),
			MeanPunishmentRate:    acc.punishment.mean(),
		})
	}
	return summaries
}

// RegionalSummaries rolls the view up by region, sorted by name.
func RegionalSummaries(view []StationYear) []RegionSummary {
	type regionAcc struct {
		stationYears int
		womenAdded   *int
		surveillance meanAccumulator
		punishment   meanAccumulator
	}

	byRegion := make(map[string]*regionAcc)
	for _, row := range view {
		region := "Unknown"
		if row.Region != nil && *row.Region != "" {
			region = *row.Region
		}
		acc := byRegion[region]
		if acc == nil {
			acc = &regionAcc{}
			byRegion[region] = acc
		}
		acc.stationYears++
		addCount(&acc.womenAdded, row.WomenAdded)
		acc.surveillance.add(row.SurveillanceIndex)
		acc.punishment.add(row.PunishmentRate)
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	summaries := make([]RegionSummary, 0, len(regions))
	for _, region := range regions {
		acc := byRegion[region]
		summaries = append(summaries, RegionSummary{
			Region:                region,
			StationYears:          acc.stationYears,
			WomenAdded:            acc.womenAdded,
			MeanSurveillanceIndex: acc.surveillance.mean(),
			MeanPunishmentRate:    acc.punishment.mean(),
		})
	}
	return summaries
}

// ActSummaries counts hospital-operation rows per act, largest first.
// Rows without an act are skipped; they carry no regime information.
func ActSummaries(ops []database.HospitalOperation) []ActSummary {
	byAct := make(map[string]int)
	for _, op := range ops {
		if op.Act == nil || *op.Act == "" {
			continue
		}
		byAct[*op.Act]++
	}

	summaries := make([]ActSummary, 0, len(byAct))
	for act, count := range byAct {
		summaries = append(summaries, ActSummary{Act: act, StationYears: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].StationYears != summaries[j].StationYears {
			return summaries[i].StationYears > summaries[j].StationYears
		}
		return summaries[i].Act < summaries[j].Act
	})
	return summaries
}

// DiseaseSummaries rolls disease counts up by year, sorted ascending.
func DiseaseSummaries(view []StationYear) []DiseaseYearSummary {
	byYear := make(map[int]*DiseaseYearSummary)
	for _, row := range view {
		acc := byYear[row.Year]
		if acc == nil {
			acc = &DiseaseYearSummary{Year: row.Year}
			byYear[row.Year] = acc
		}
		addCount(&acc.PrimarySyphilis, row.DiseasePrimarySyphilis)
		addCount(&acc.SecondarySyphilis, row.DiseaseSecondarySyphilis)
		addCount(&acc.Gonorrhoea, row.DiseaseGonorrhoea)
		addCount(&acc.Leucorrhoea, row.DiseaseLeucorrhoea)
		addCount(&acc.Total, row.WomenDiseaseTotal)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	summaries := make([]DiseaseYearSummary, 0, len(years))
	for _, year := range years {
		summaries = append(summaries, *byYear[year])
	}
	return summaries
}

// PunishmentSummaries rolls punitive counts up by year, sorted ascending.
func PunishmentSummaries(view []StationYear) []PunishmentYearSummary {
	type punishAcc struct {
		summary PunishmentYearSummary
		rate    meanAccumulator
	}

	byYear := make(map[int]*punishAcc)
	for _, row := range view {
		acc := byYear[row.Year]
		if acc == nil {
			acc = &punishAcc{summary: PunishmentYearSummary{Year: row.Year}}
			byYear[row.Year] = acc
		}
		addCount(&acc.summary.Fined, row.FinedCount)
		addCount(&acc.summary.Imprisoned, row.ImprisonmentCount)
		addCount(&acc.summary.NonAttendance, row.NonAttendanceCases)
		acc.rate.add(row.PunishmentRate)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	summaries := make([]PunishmentYearSummary, 0, len(years))
	for _, year := range years {
		acc := byYear[year]
		acc.summary.MeanPunishmentRate = acc.rate.mean()
		summaries = append(summaries, acc.summary)
	}
	return summaries
}
