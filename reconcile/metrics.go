package reconcile

// rate is the single denominator guard every derived metric goes through:
// numerator/denominator*scale when the denominator is strictly positive,
// nil otherwise. A zero or missing denominator means "no data", never a
// fabricated 0 or Inf.
func rate(numerator float64, denominator *float64, scale float64) *float64 {
	if denominator == nil || *denominator <= 0 {
		return nil
	}
	value := numerator / *denominator * scale
	return &value
}

func intOrZero(v *int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// SurveillanceIndex is (women_added + avg_registered) / troop_strength * 1000.
// Missing numerator components count as zero; when both are missing there is
// nothing to measure and the result is nil.
func SurveillanceIndex(womenAdded *int, avgRegistered *float64, troopStrength *float64) *float64 {
	if womenAdded == nil && avgRegistered == nil {
		return nil
	}
	return rate(intOrZero(womenAdded)+floatOrZero(avgRegistered), troopStrength, 1000)
}

// PunishmentRate is (fined + imprisoned*2) / avg_registered * 100.
// Imprisonment carries twice the weight of a fine (severity weighting).
func PunishmentRate(fined *int, imprisoned *int, avgRegistered *float64) *float64 {
	if fined == nil && imprisoned == nil {
		return nil
	}
	return rate(intOrZero(fined)+intOrZero(imprisoned)*2, avgRegistered, 100)
}

// DiseaseRate is disease_count / avg_registered * 100.
func DiseaseRate(diseaseCount *int, avgRegistered *float64) *float64 {
	if diseaseCount == nil {
		return nil
	}
	return rate(intOrZero(diseaseCount), avgRegistered, 100)
}

// TroopDiseaseRate is total_admissions / avg_strength * 1000, venereal
// admissions per thousand troops.
func TroopDiseaseRate(totalAdmissions *int, avgStrength *float64) *float64 {
	if totalAdmissions == nil {
		return nil
	}
	return rate(intOrZero(totalAdmissions), avgStrength, 1000)
}
