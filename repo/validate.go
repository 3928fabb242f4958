package repo

import "github.com/clinsync/triage-api/schema"

// ValidateSubject checks the required subject attributes before a case may
// be submitted. Observation labels are never validated here: unknown labels
// simply score zero.
func ValidateSubject(s schema.Subject) error {
	if s.Age < 0 || s.Age > 130 {
		return &ValidationError{Field: "age", Reason: "must be between 0 and 130"}
	}
	if s.Sex == "" {
		return &ValidationError{Field: "sex", Reason: "required"}
	}
	if s.HeightCM <= 0 {
		return &ValidationError{Field: "height_cm", Reason: "must be positive"}
	}
	if s.WeightKG <= 0 {
		return &ValidationError{Field: "weight_kg", Reason: "must be positive"}
	}
	return nil
}
