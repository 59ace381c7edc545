package services

import (
	"fmt"
	"log/slog"

	"lockhospitals/database"
	"lockhospitals/normalization"
)

// ClassificationResult summarizes one classification pass over the
// qualitative hospital notes.
type ClassificationResult struct {
	NotesProcessed int            `json:"notes_processed"`
	NotesUpdated   int            `json:"notes_updated"`
	FrequencyCount map[string]int `json:"frequency_count"`
	ControlCount   map[string]int `json:"control_count"`
	SupervisionCnt map[string]int `json:"supervision_count"`
}

// ClassificationService derives the categorical note columns from the
// free-text ones.
type ClassificationService struct {
	db     *database.RegistryDB
	logger *slog.Logger
}

// NewClassificationService creates a note classification service.
func NewClassificationService(db *database.RegistryDB, logger *slog.Logger) *ClassificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassificationService{db: db, logger: logger}
}

// ClassifyNotes runs the three note classifiers over every hospital note and
// persists the categorical output. Notes whose free text yields no category
// get null columns; rows already carrying the same categories are skipped.
func (s *ClassificationService) ClassifyNotes() (*ClassificationResult, error) {
	notes, err := s.db.GetHospitalNotes()
	if err != nil {
		return nil, fmt.Errorf("failed to load hospital notes: %w", err)
	}

	result := &ClassificationResult{
		FrequencyCount: make(map[string]int),
		ControlCount:   make(map[string]int),
		SupervisionCnt: make(map[string]int),
	}

	for _, note := range notes {
		freq := normalization.ClassifyInspectionFrequency(stringOrEmpty(note.InspectionNotes))
		control := normalization.ClassifyUnlicensedControl(stringOrEmpty(note.UnlicensedControlNotes))
		supervision := normalization.ClassifyCommitteeSupervision(stringOrEmpty(note.CommitteeActivityNotes))

		result.NotesProcessed++
		countLabel(result.FrequencyCount, freq)
		countLabel(result.ControlCount, control)
		countLabel(result.SupervisionCnt, supervision)

		if equalPtr(note.InspectionFreq, freq) &&
			equalPtr(note.UnlicensedControlType, control) &&
			equalPtr(note.CommitteeSupervision, supervision) {
			continue
		}

		if err := s.db.UpdateHospitalNoteCategories(note.HID, freq, control, supervision); err != nil {
			return nil, fmt.Errorf("failed to persist categories for note %s: %w", note.HID, err)
		}
		result.NotesUpdated++
	}

	s.logger.Info("Note classification finished",
		"processed", result.NotesProcessed,
		"updated", result.NotesUpdated)
	return result, nil
}

func countLabel(counts map[string]int, label *string) {
	if label == nil {
		return
	}
	counts[*label]++
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
