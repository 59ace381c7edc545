package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"lockhospitals/reconcile"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

var stationYearHeader = []string{
	"station", "year", "region", "country",
	"women_start_register", "women_added", "women_removed", "women_end_register", "avg_registered",
	"disease_primary_syphilis", "disease_secondary_syphilis", "disease_gonorrhoea", "disease_leucorrhoea",
	"fined_count", "imprisonment_count", "discharges", "deaths",
	"troop_strength", "troop_admissions", "act", "class",
	"surveillance_index", "punishment_rate", "women_disease_rate", "troop_disease_rate",
}

// ExportService writes the reconciled station-year view to disk in the
// requested format.
type ExportService struct {
	dashboard *DashboardService
	exportDir string
	logger    *slog.Logger
}

// NewExportService creates an export service writing into exportDir.
func NewExportService(dashboard *DashboardService, exportDir string, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{dashboard: dashboard, exportDir: exportDir, logger: logger}
}

// ExportStationYears writes the full station-year view in the given format
// and returns the path of the written file.
func (s *ExportService) ExportStationYears(format string) (string, error) {
	view, err := s.dashboard.StationYearView(ViewFilter{})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("station_years_%s.%s", time.Now().Format("20060102_150405"), format)
	path := filepath.Join(s.exportDir, name)

	switch format {
	case FormatCSV:
		err = writeCSV(path, view)
	case FormatJSON:
		err = writeJSON(path, view)
	case FormatXLSX:
		err = writeXLSX(path, view)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	s.logger.Info("Export written", "path", path, "rows", len(view), "format", format)
	return path, nil
}

func writeJSON(path string, view []reconcile.StationYear) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func writeCSV(path string, view []reconcile.StationYear) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(stationYearHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, row := range view {
		if err := writer.Write(csvRow(row)); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSX(path string, view []reconcile.StationYear) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "station_years"
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create export sheet: %w", err)
	}
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, len(stationYearHeader))
	for i, column := range stationYearHeader {
		header[i] = column
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for i, row := range view {
		cells := xlsxRow(row)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export workbook: %w", err)
	}
	return nil
}

func csvRow(row reconcile.StationYear) []string {
	return []string{
		row.DisplayName, strconv.Itoa(row.Year), strText(row.Region), strText(row.Country),
		intText(row.WomenStartRegister), intText(row.WomenAdded), intText(row.WomenRemoved),
		intText(row.WomenEndRegister), floatText(row.AvgRegistered),
		intText(row.DiseasePrimarySyphilis), intText(row.DiseaseSecondarySyphilis),
		intText(row.DiseaseGonorrhoea), intText(row.DiseaseLeucorrhoea),
		intText(row.FinedCount), intText(row.ImprisonmentCount),
		intText(row.Discharges), intText(row.Deaths),
		floatText(row.TroopStrength), intText(row.TroopAdmissions),
		strText(row.Act), strText(row.Class),
		floatText(row.SurveillanceIndex), floatText(row.PunishmentRate),
		floatText(row.WomenDiseaseRate), floatText(row.TroopDiseaseRate),
	}
}

func xlsxRow(row reconcile.StationYear) []interface{} {
	return []interface{}{
		row.DisplayName, row.Year, deref(row.Region), deref(row.Country),
		deref(row.WomenStartRegister), deref(row.WomenAdded), deref(row.WomenRemoved),
		deref(row.WomenEndRegister), deref(row.AvgRegistered),
		deref(row.DiseasePrimarySyphilis), deref(row.DiseaseSecondarySyphilis),
		deref(row.DiseaseGonorrhoea), deref(row.DiseaseLeucorrhoea),
		deref(row.FinedCount), deref(row.ImprisonmentCount),
		deref(row.Discharges), deref(row.Deaths),
		deref(row.TroopStrength), deref(row.TroopAdmissions),
		deref(row.Act), deref(row.Class),
		deref(row.SurveillanceIndex), deref(row.PunishmentRate),
		deref(row.WomenDiseaseRate), deref(row.TroopDiseaseRate),
	}
}

func strText(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func intText(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func floatText(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// deref unwraps a pointer cell for excelize, which writes typed values.
func deref[T any](value *T) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
