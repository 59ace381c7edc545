package normalization

import "strings"

// Controlled vocabulary for inspection frequency.
const (
	FreqWeekly      = "Weekly"
	FreqDaily       = "Daily"
	FreqMonthly     = "Monthly"
	FreqFortnightly = "Fortnightly"
	FreqIrregular   = "Irregular"
	FreqOther       = "Other"
)

// Controlled vocabulary for unlicensed-women control methods.
const (
	ControlPoliceAction      = "Police Action"
	ControlSpecialConstables = "Special Constables"
	ControlOtherMethods      = "Other Methods"
)

// Controlled vocabulary for committee supervision.
const (
	SupervisionMagistrate            = "Magistrate Oversight"
	SupervisionCommittee             = "Committee"
	SupervisionRegularSubcommittee   = "Regular Subcommittee"
	SupervisionIrregularSubcommittee = "Irregular Subcommittee"
	SupervisionSubcommittee          = "Subcommittee"
	SupervisionOther                 = "Other"
)

// classificationRule pairs a predicate with the label it yields. Rules are
// evaluated in slice order; the first match wins, so precedence lives in the
// ordering of the list, not in nested conditionals.
type classificationRule struct {
	matches func(text string) bool
	label   string
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Irregular is checked before every regular-family keyword: inspection notes
// routinely carry both ("weekly, but irregular of late"), and the irregular
// reading is the one the original registers record.
var inspectionFrequencyRules = []classificationRule{
	{func(t string) bool { return strings.Contains(t, "irregular") }, FreqIrregular},
	{func(t string) bool { return containsAny(t, "daily", "every day") }, FreqDaily},
	{func(t string) bool { return containsAny(t, "week", "weekly") }, FreqWeekly},
	{func(t string) bool { return containsAny(t, "fortnight", "14 days", "fourteen days") }, FreqFortnightly},
	{func(t string) bool { return containsAny(t, "month", "monthly") }, FreqMonthly},
	// Bare "regular"/"periodical" without an interval: recorded as Weekly,
	// the statutory inspection interval under the CD Acts.
	{func(t string) bool { return containsAny(t, "regular", "periodical") }, FreqWeekly},
}

// ClassifyInspectionFrequency maps free-text inspection regularity notes onto
// the controlled frequency vocabulary. Returns nil for empty input and Other
// for recognizable text that matches no frequency keyword; the two are
// distinct states downstream (nil rows leave denominators, Other rows stay).
func ClassifyInspectionFrequency(text string) *string {
	cleaned := sanitizeString(text)
	if cleaned == "" {
		return nil
	}

	lower := strings.ToLower(cleaned)
	for _, rule := range inspectionFrequencyRules {
		if rule.matches(lower) {
			label := rule.label
			return &label
		}
	}

	other := FreqOther
	return &other
}

// unlicensedControlCodes maps the source register's shorthand codes onto the
// control-method vocabulary.
var unlicensedControlCodes = map[string]string{
	"police":             ControlPoliceAction,
	"police action":      ControlPoliceAction,
	"police picket":      ControlPoliceAction,
	"police pickets":     ControlPoliceAction,
	"special constables": ControlSpecialConstables,
	"special constable":  ControlSpecialConstables,
	"constables":         ControlSpecialConstables,
}

// ClassifyUnlicensedControl maps a raw control-method code to its label.
// Unrecognized non-empty values become Other Methods, never an error: the
// registers contain one-off phrasings that are still real methods.
func ClassifyUnlicensedControl(rawCode string) *string {
	cleaned := sanitizeString(rawCode)
	if cleaned == "" {
		return nil
	}

	if label, ok := unlicensedControlCodes[strings.ToLower(cleaned)]; ok {
		return &label
	}

	other := ControlOtherMethods
	return &other
}

// Magistrate outranks every committee reading, and subcommittee readings
// outrank bare committee: all three words co-occur in sentences like
// "visited by the magistrate and the subcommittee of the cantonment
// committee", and the most specific authority is the one recorded.
var committeeSupervisionRules = []classificationRule{
	{func(t string) bool { return strings.Contains(t, "magistrate") }, SupervisionMagistrate},
	{func(t string) bool {
		return strings.Contains(t, "subcommittee") && strings.Contains(t, "irregular")
	}, SupervisionIrregularSubcommittee},
	{func(t string) bool {
		return strings.Contains(t, "subcommittee") && strings.Contains(t, "regular")
	}, SupervisionRegularSubcommittee},
	{func(t string) bool { return strings.Contains(t, "subcommittee") }, SupervisionSubcommittee},
	{func(t string) bool { return strings.Contains(t, "committee") }, SupervisionCommittee},
}

// ClassifyCommitteeSupervision maps free-text committee-activity notes onto
// the supervision vocabulary, most specific authority first.
func ClassifyCommitteeSupervision(text string) *string {
	cleaned := sanitizeString(text)
	if cleaned == "" {
		return nil
	}

	// "sub-committee" and "subcommittee" both occur in the registers.
	lower := strings.ReplaceAll(strings.ToLower(cleaned), "sub-committee", "subcommittee")
	for _, rule := range committeeSupervisionRules {
		if rule.matches(lower) {
			label := rule.label
			return &label
		}
	}

	other := SupervisionOther
	return &other
}
