package reconcile

import (
	"lockhospitals/database"
	"lockhospitals/normalization"
)

// StationYear is one row of the unified per-station-year view the dashboard
// and exports consume. Fact columns are nil where no source row carried a
// value; derived metrics are nil where a denominator is missing or zero.
type StationYear struct {
	Station     string  `json:"station"`
	DisplayName string  `json:"display_name"`
	Year        int     `json:"year"`
	Region      *string `json:"region"`
	Country     *string `json:"country"`

	WomenStartRegister *int     `json:"women_start_register"`
	WomenAdded         *int     `json:"women_added"`
	WomenRemoved       *int     `json:"women_removed"`
	WomenEndRegister   *int     `json:"women_end_register"`
	AvgRegistered      *float64 `json:"avg_registered"`

	DiseasePrimarySyphilis   *int `json:"disease_primary_syphilis"`
	DiseaseSecondarySyphilis *int `json:"disease_secondary_syphilis"`
	DiseaseGonorrhoea        *int `json:"disease_gonorrhoea"`
	DiseaseLeucorrhoea       *int `json:"disease_leucorrhoea"`
	WomenDiseaseTotal        *int `json:"women_disease_total"`

	FinedCount         *int `json:"fined_count"`
	ImprisonmentCount  *int `json:"imprisonment_count"`
	NonAttendanceCases *int `json:"non_attendance_cases"`
	Discharges         *int `json:"discharges"`
	Deaths             *int `json:"deaths"`

	TroopStrength   *float64 `json:"troop_strength"`
	TroopAdmissions *int     `json:"troop_admissions"`

	Act   *string `json:"act"`
	Class *string `json:"class"`

	SurveillanceIndex *float64 `json:"surveillance_index"`
	PunishmentRate    *float64 `json:"punishment_rate"`
	WomenDiseaseRate  *float64 `json:"women_disease_rate"`
	TroopDiseaseRate  *float64 `json:"troop_disease_rate"`
}

type womenAccumulator struct {
	region  *string
	country *string

	startRegister *int
	added         *int
	removed       *int
	endRegister   *int

	primarySyphilis   *int
	secondarySyphilis *int
	gonorrhoea        *int
	leucorrhoea       *int

	fined         *int
	imprisoned    *int
	nonAttendance *int
	discharges    *int
	deaths        *int

	avgRegisteredSum   float64
	avgRegisteredCount int
}

type troopAccumulator struct {
	region  *string
	country *string

	admissions *int

	strengthSum   float64
	strengthCount int
}

// BuildStationYearView reconciles women-admission, troop, and
// hospital-operation rows into one row per (canonical station, year). Rows
// for the same key are folded together: counts sum, registered/strength
// averages take the mean over rows that carry them. Keys present in only
// one fact table still produce a view row; metrics needing the other side
// stay nil.
func BuildStationYearView(women []database.WomenAdmission, troops []database.TroopRecord, ops []database.HospitalOperation) []StationYear {
	womenByKey := make(map[JoinKey]*womenAccumulator)
	troopsByKey := make(map[JoinKey]*troopAccumulator)
	opsByKey := make(map[JoinKey]*database.HospitalOperation)

	for i := range women {
		row := &women[i]
		key, ok := womenKey(row, JoinOptions{})
		if !ok {
			continue
		}
		acc := womenByKey[key]
		if acc == nil {
			acc = &womenAccumulator{}
			womenByKey[key] = acc
		}
		acc.fold(row)
	}

	for i := range troops {
		row := &troops[i]
		key, ok := troopKey(row, JoinOptions{})
		if !ok {
			continue
		}
		acc := troopsByKey[key]
		if acc == nil {
			acc = &troopAccumulator{}
			troopsByKey[key] = acc
		}
		acc.fold(row)
	}

	for i := range ops {
		row := &ops[i]
		key, ok := buildKey(row.Station, row.Year, row.Region, row.Country, JoinOptions{})
		if !ok {
			continue
		}
		if _, exists := opsByKey[key]; !exists {
			opsByKey[key] = row
		}
	}

	keySet := make(map[JoinKey]struct{}, len(womenByKey)+len(troopsByKey))
	for key := range womenByKey {
		keySet[key] = struct{}{}
	}
	for key := range troopsByKey {
		keySet[key] = struct{}{}
	}
	keys := make([]JoinKey, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sortKeys(keys)

	view := make([]StationYear, 0, len(keys))
	for _, key := range keys {
		view = append(view, buildRow(key, womenByKey[key], troopsByKey[key], opsByKey[key]))
	}
	return view
}

func (acc *womenAccumulator) fold(row *database.WomenAdmission) {
	if acc.region == nil {
		acc.region = row.Region
	}
	if acc.country == nil {
		acc.country = row.Country
	}

	addCount(&acc.startRegister, row.WomenStartRegister)
	addCount(&acc.added, row.WomenAdded)
	addCount(&acc.removed, row.WomenRemoved)
	addCount(&acc.endRegister, row.WomenEndRegister)

	addCount(&acc.primarySyphilis, row.DiseasePrimarySyphilis)
	addCount(&acc.secondarySyphilis, row.DiseaseSecondarySyphilis)
	addCount(&acc.gonorrhoea, row.DiseaseGonorrhoea)
	addCount(&acc.leucorrhoea, row.DiseaseLeucorrhoea)

	addCount(&acc.fined, row.FinedCount)
	addCount(&acc.imprisoned, row.ImprisonmentCount)
	addCount(&acc.nonAttendance, row.NonAttendanceCases)
	addCount(&acc.discharges, row.Discharges)
	addCount(&acc.deaths, row.Deaths)

	if row.AvgRegistered != nil {
		acc.avgRegisteredSum += *row.AvgRegistered
		acc.avgRegisteredCount++
	}
}

func (acc *womenAccumulator) avgRegistered() *float64 {
	if acc.avgRegisteredCount == 0 {
		return nil
	}
	mean := acc.avgRegisteredSum / float64(acc.avgRegisteredCount)
	return &mean
}

func (acc *troopAccumulator) fold(row *database.TroopRecord) {
	if acc.region == nil {
		acc.region = row.Region
	}
	if acc.country == nil {
		acc.country = row.Country
	}
	addCount(&acc.admissions, row.TotalAdmissions)
	if row.AvgStrength != nil {
		acc.strengthSum += *row.AvgStrength
		acc.strengthCount++
	}
}

func (acc *troopAccumulator) avgStrength() *float64 {
	if acc.strengthCount == 0 {
		return nil
	}
	mean := acc.strengthSum / float64(acc.strengthCount)
	return &mean
}

func buildRow(key JoinKey, women *womenAccumulator, troops *troopAccumulator, op *database.HospitalOperation) StationYear {
	row := StationYear{
		Station:     key.Station,
		DisplayName: normalization.StationDisplayName(key.Station),
		Year:        key.Year,
	}

	if women != nil {
		row.Region = women.region
		row.Country = women.country

		row.WomenStartRegister = women.startRegister
		row.WomenAdded = women.added
		row.WomenRemoved = women.removed
		row.WomenEndRegister = women.endRegister
		row.AvgRegistered = women.avgRegistered()

		row.DiseasePrimarySyphilis = women.primarySyphilis
		row.DiseaseSecondarySyphilis = women.secondarySyphilis
		row.DiseaseGonorrhoea = women.gonorrhoea
		row.DiseaseLeucorrhoea = women.leucorrhoea
		row.WomenDiseaseTotal = sumCounts(women.primarySyphilis, women.secondarySyphilis, women.gonorrhoea, women.leucorrhoea)

		row.FinedCount = women.fined
		row.ImprisonmentCount = women.imprisoned
		row.NonAttendanceCases = women.nonAttendance
		row.Discharges = women.discharges
		row.Deaths = women.deaths
	}

	if troops != nil {
		if row.Region == nil {
			row.Region = troops.region
		}
		if row.Country == nil {
			row.Country = troops.country
		}
		row.TroopStrength = troops.avgStrength()
		row.TroopAdmissions = troops.admissions
	}

	if op != nil {
		row.Act = op.Act
		row.Class = op.Class
	}

	row.SurveillanceIndex = SurveillanceIndex(row.WomenAdded, row.AvgRegistered, row.TroopStrength)
	row.PunishmentRate = PunishmentRate(row.FinedCount, row.ImprisonmentCount, row.AvgRegistered)
	row.WomenDiseaseRate = DiseaseRate(row.WomenDiseaseTotal, row.AvgRegistered)
	row.TroopDiseaseRate = TroopDiseaseRate(row.TroopAdmissions, row.TroopStrength)
	return row
}

// addCount adds v into the running sum behind acc, treating nil as "no data
// yet" rather than zero so a key with no values at all stays nil.
func addCount(acc **int, v *int) {
	if v == nil {
		return
	}
	if *acc == nil {
		n := *v
		*acc = &n
		return
	}
	**acc += *v
}

func sumCounts(values ...*int) *int {
	var total *int
	for _, v := range values {
		addCount(&total, v)
	}
	return total
}
