package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"lockhospitals/database"
	"lockhospitals/server"
	"lockhospitals/server/services"
)

func main() {
	var (
		dbPath   = flag.String("db", "medical_lock_hospitals.db", "path to the registry database")
		dryRun   = flag.Bool("dry-run", false, "report what would change without writing")
		logLevel = flag.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	)
	flag.Parse()

	logger := server.SetupLogger(*logLevel)

	if !*dryRun {
		backup, err := backupDatabase(*dbPath)
		if err != nil {
			logger.Error("Failed to back up database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		if backup != "" {
			logger.Info("Database backed up", "backup", backup)
		}
	}

	db, err := database.NewRegistryDB(*dbPath)
	if err != nil {
		logger.Error("Failed to open registry database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	reconciliation := services.NewReconciliationService(db, logger)

	runResult, err := reconciliation.Run(*dryRun)
	if err != nil {
		logger.Error("Reconciliation failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("stations: %d -> %d (%d merged, %d collisions, %d fact rows renamed)\n",
		runResult.StationsBefore, runResult.StationsAfter, runResult.Merged,
		len(runResult.Collisions), runResult.RenamedFactRows)
	for _, collision := range runResult.Collisions {
		fmt.Printf("  collision: %s across station ids %v (left unmerged)\n",
			collision.CanonicalName, collision.StationIDs)
	}

	vocabResult, err := reconciliation.StandardizeVocabularies(*dryRun)
	if err != nil {
		logger.Error("Vocabulary standardization failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("vocabulary: %d values rewritten across %d rows\n",
		len(vocabResult.Changes), vocabResult.RowsTouched)

	if !*dryRun {
		classResult, err := services.NewClassificationService(db, logger).ClassifyNotes()
		if err != nil {
			logger.Error("Note classification failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("notes: %d processed, %d updated\n",
			classResult.NotesProcessed, classResult.NotesUpdated)
	}

	if *dryRun {
		fmt.Println("dry run: no changes written")
	}
}

// backupDatabase copies the database file aside before the first write. A new
// registry (no file yet) needs no backup.
func backupDatabase(path string) (string, error) {
	src, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102_150405"))
	dst, err := os.Create(backup)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(backup)
		return "", err
	}
	return backup, nil
}
