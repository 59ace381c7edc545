package main

import (
	"flag"
	"fmt"
	"os"

	"lockhospitals/database"
	"lockhospitals/importer"
	"lockhospitals/server"
)

func main() {
	var (
		workbookPath = flag.String("workbook", "", "path to the source Excel workbook")
		dbPath       = flag.String("db", "medical_lock_hospitals.db", "path to the registry database")
		logLevel     = flag.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	)
	flag.Parse()

	if *workbookPath == "" {
		fmt.Fprintln(os.Stderr, "usage: import-dataset -workbook <file.xlsx> [-db <registry.db>]")
		os.Exit(2)
	}

	logger := server.SetupLogger(*logLevel)

	db, err := database.NewRegistryDB(*dbPath)
	if err != nil {
		logger.Error("Failed to open registry database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	stats, err := importer.New(db, logger).ImportWorkbook(*workbookPath)
	if err != nil {
		logger.Error("Import failed", "workbook", *workbookPath, "error", err)
		os.Exit(1)
	}

	logger.Info("Import finished",
		"workbook", *workbookPath,
		"documents", stats.Documents,
		"stations", stats.Stations,
		"women_rows", stats.WomenRows,
		"troop_rows", stats.TroopRows,
		"operation_rows", stats.OperationRows,
		"note_rows", stats.NoteRows,
		"reports", stats.Reports,
		"skipped_rows", stats.SkippedRows)
}
