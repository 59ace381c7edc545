package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"

	"lockhospitals/database"
)

// Station pool with the spelling variants the reconciler is expected to
// collapse. Weighted toward the clean form so generated registries look like
// the transcribed ones.
var stationPool = []struct {
	spellings []string
	region    string
	country   string
}{
	{[]string{"Rangoon", "rangoon", "India (British Burma) Rangoon"}, "Burma", "British Burma"},
	{[]string{"Lucknow", "lucknow"}, "Oudh", "British India"},
	{[]string{"Umballa", "Umballa "}, "Punjab", "British India"},
	{[]string{"Mooltan"}, "Punjab", "British India"},
	{[]string{"Sitabaldi (Nagpur)", "Seetabuldee"}, "Central Provinces", "British India"},
	{[]string{"Fyzabad"}, "Oudh", "British India"},
	{[]string{"Secunderabad"}, "Madras", "British India"},
	{[]string{"Bangalore"}, "Madras", "British India"},
}

var inspectionNotes = []string{
	"Examined weekly by the medical officer",
	"Inspections daily during the epidemic months",
	"Attendance very irregular",
	"Examined once a month",
	"Regular periodical examination",
}

var controlCodes = []string{"Police", "Police pickets", "Special constables", "None reported"}

var committeeNotes = []string{
	"Visited regularly by the magistrate",
	"Sub-committee met at irregular intervals",
	"Committee inspected the hospital regularly",
	"No committee activity recorded",
}

func main() {
	var (
		dbPath = flag.String("db", "test_lock_hospitals.db", "path of the database to generate")
		years  = flag.Int("years", 10, "number of report years starting at 1873")
		seed   = flag.Int64("seed", 0, "gofakeit seed (0 for random)")
	)
	flag.Parse()

	gofakeit.Seed(*seed)

	db, err := database.NewRegistryDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	rows := 0
	for yearOffset := 0; yearOffset < *years; yearOffset++ {
		year := 1873 + yearOffset
		docID := fmt.Sprintf("doc-%d", year)
		source := fmt.Sprintf("Annual Report on Lock Hospitals, %d", year)
		if err := db.InsertDocument(database.Document{
			DocID:      docID,
			SourceName: &source,
			Type:       strPtr("annual report"),
		}); err != nil {
			log.Fatalf("Failed to insert document: %v", err)
		}

		for _, station := range stationPool {
			spelling := station.spellings[gofakeit.IntRange(0, len(station.spellings)-1)]
			if _, err := db.InsertStation(database.Station{
				Name:    spelling,
				Region:  strPtr(station.region),
				Country: strPtr(station.country),
			}); err != nil {
				log.Fatalf("Failed to insert station: %v", err)
			}

			registered := float64(gofakeit.IntRange(10, 120))
			strength := float64(gofakeit.IntRange(200, 1500))

			if err := db.InsertWomenAdmission(database.WomenAdmission{
				UniqueID:                 fmt.Sprintf("w-%d-%s", year, gofakeit.UUID()[:8]),
				DocID:                    &docID,
				SourceName:               &source,
				Region:                   strPtr(station.region),
				Station:                  &spelling,
				Country:                  strPtr(station.country),
				Year:                     &year,
				WomenStartRegister:       intPtr(gofakeit.IntRange(5, 80)),
				WomenAdded:               intPtr(gofakeit.IntRange(0, 40)),
				WomenRemoved:             intPtr(gofakeit.IntRange(0, 30)),
				WomenEndRegister:         intPtr(gofakeit.IntRange(5, 90)),
				AvgRegistered:            &registered,
				DiseasePrimarySyphilis:   intPtr(gofakeit.IntRange(0, 25)),
				DiseaseSecondarySyphilis: intPtr(gofakeit.IntRange(0, 15)),
				DiseaseGonorrhoea:        intPtr(gofakeit.IntRange(0, 30)),
				DiseaseLeucorrhoea:       intPtr(gofakeit.IntRange(0, 10)),
				FinedCount:               intPtr(gofakeit.IntRange(0, 12)),
				ImprisonmentCount:        intPtr(gofakeit.IntRange(0, 6)),
				Discharges:               intPtr(gofakeit.IntRange(0, 40)),
				Deaths:                   intPtr(gofakeit.IntRange(0, 3)),
			}); err != nil {
				log.Fatalf("Failed to insert women admission row: %v", err)
			}

			if err := db.InsertTroopRecord(database.TroopRecord{
				UniqueID:        fmt.Sprintf("t-%d-%s", year, gofakeit.UUID()[:8]),
				DocID:           &docID,
				SourceName:      &source,
				Region:          strPtr(station.region),
				Station:         &spelling,
				Country:         strPtr(station.country),
				Year:            &year,
				AvgStrength:     &strength,
				PrimarySyphilis: intPtr(gofakeit.IntRange(0, 60)),
				Gonorrhoea:      intPtr(gofakeit.IntRange(0, 80)),
				TotalAdmissions: intPtr(gofakeit.IntRange(10, 200)),
			}); err != nil {
				log.Fatalf("Failed to insert troop record: %v", err)
			}

			hid := fmt.Sprintf("h-%d-%s", year, gofakeit.UUID()[:8])
			if err := db.InsertHospitalOperation(database.HospitalOperation{
				HID:     hid,
				DocID:   &docID,
				Station: &spelling,
				Region:  strPtr(station.region),
				Country: strPtr(station.country),
				Year:    &year,
				Act:     strPtr(gofakeit.RandomString([]string{"act xiv, 1868", "Act XXII of 1864", "voluntary system"})),
				Class:   strPtr(gofakeit.RandomString([]string{"1st class", "second class", "civil"})),
			}); err != nil {
				log.Fatalf("Failed to insert hospital operation: %v", err)
			}
			if err := db.InsertHospitalNote(database.HospitalNote{
				HID:                     hid,
				StaffMedicalOfficers:    intPtr(gofakeit.IntRange(1, 3)),
				StaffHospitalAssistants: intPtr(gofakeit.IntRange(0, 4)),
				StaffMatron:             intPtr(gofakeit.IntRange(0, 1)),
				InspectionNotes:         strPtr(gofakeit.RandomString(inspectionNotes)),
				UnlicensedControlNotes:  strPtr(gofakeit.RandomString(controlCodes)),
				CommitteeActivityNotes:  strPtr(gofakeit.RandomString(committeeNotes)),
			}); err != nil {
				log.Fatalf("Failed to insert hospital note: %v", err)
			}
			rows += 4
		}
	}

	if _, err := db.RebuildStationReports(); err != nil {
		log.Fatalf("Failed to rebuild station reports: %v", err)
	}

	fmt.Printf("Generated %d fact rows across %d years into %s\n", rows, *years, *dbPath)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
