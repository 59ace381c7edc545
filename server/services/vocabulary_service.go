package services

import (
	"fmt"

	"lockhospitals/normalization"
)

// vocabularyColumn binds one table column to the standardizer applied to it.
type vocabularyColumn struct {
	table       string
	column      string
	standardize func(string) *string
}

var vocabularyColumns = []vocabularyColumn{
	{"hospital_operations", "act", normalization.StandardizeAct},
	{"hospital_operations", "class", normalization.StandardizeClass},
	{"women_admission", "region", normalization.StandardizeRegion},
	{"troops", "region", normalization.StandardizeRegion},
	{"hospital_operations", "region", normalization.StandardizeRegion},
	{"stations", "region", normalization.StandardizeRegion},
	{"women_admission", "country", normalization.StandardizeCountry},
	{"troops", "country", normalization.StandardizeCountry},
	{"hospital_operations", "country", normalization.StandardizeCountry},
	{"stations", "country", normalization.StandardizeCountry},
}

// VocabularyChange records one applied (or planned) value rewrite.
type VocabularyChange struct {
	Table    string `json:"table"`
	Column   string `json:"column"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	Rows     int64  `json:"rows"`
}

// VocabularyResult summarizes one standardization pass over the controlled
// vocabulary columns.
type VocabularyResult struct {
	DryRun      bool               `json:"dry_run"`
	Changes     []VocabularyChange `json:"changes"`
	RowsTouched int64              `json:"rows_touched"`
}

// StandardizeVocabularies rewrites act, class, region, and country values to
// their canonical forms across all tables that carry them.
func (s *ReconciliationService) StandardizeVocabularies(dryRun bool) (*VocabularyResult, error) {
	result := &VocabularyResult{DryRun: dryRun}

	for _, vc := range vocabularyColumns {
		values, err := s.db.DistinctFactValues(vc.table, vc.column)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s.%s values: %w", vc.table, vc.column, err)
		}

		for _, raw := range values {
			standardized := vc.standardize(raw)
			if standardized == nil || *standardized == raw {
				continue
			}

			var rows int64
			if dryRun {
				count, err := s.db.CountFactValue(vc.table, vc.column, raw)
				if err != nil {
					return nil, err
				}
				rows = int64(count)
			} else {
				affected, err := s.db.ReplaceFactValue(vc.table, vc.column, raw, *standardized)
				if err != nil {
					return nil, fmt.Errorf("failed to standardize %s.%s value %q: %w", vc.table, vc.column, raw, err)
				}
				rows = affected
			}

			result.Changes = append(result.Changes, VocabularyChange{
				Table:    vc.table,
				Column:   vc.column,
				OldValue: raw,
				NewValue: *standardized,
				Rows:     rows,
			})
			result.RowsTouched += rows
		}
	}

	s.logger.Info("Vocabulary standardization finished",
		"dry_run", dryRun,
		"changes", len(result.Changes),
		"rows_touched", result.RowsTouched)
	return result, nil
}
