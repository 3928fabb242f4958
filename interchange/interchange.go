// Package interchange renders the case collection for transfer between
// deployments: a flat CSV table for spreadsheet use and a structured
// full-fidelity dump that can be re-imported with merge-by-id semantics.
package interchange

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/clinsync/triage-api/schema"
)

// ImportFormatError reports a malformed interchange payload. Nothing from
// the payload is applied.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed import payload: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed import payload: %s", e.Reason)
}

func (e *ImportFormatError) Unwrap() error { return e.Err }

var csvHeader = []string{
	"id", "created_at", "creator_id",
	"age", "sex", "height_cm", "weight_kg", "bmi",
	"history", "symptoms", "imaging_features",
	"exposure", "immune_assay", "smear", "culture", "molecular_assay",
	"score", "category", "recommendation",
}

const multiValueSeparator = ";"

// WriteCSV renders one row per case in fixed column order. Multi-valued
// observation sets are joined with a semicolon.
func WriteCSV(w io.Writer, records []schema.CaseRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339),
			r.CreatorID,
			strconv.Itoa(r.Subject.Age),
			r.Subject.Sex,
			strconv.FormatFloat(r.Subject.HeightCM, 'f', -1, 64),
			strconv.FormatFloat(r.Subject.WeightKG, 'f', -1, 64),
			strconv.FormatFloat(r.Subject.BMI, 'f', -1, 64),
			strings.Join(r.Observations.History, multiValueSeparator),
			strings.Join(r.Observations.Symptoms, multiValueSeparator),
			strings.Join(r.Observations.ImagingFeatures, multiValueSeparator),
			r.Observations.Exposure,
			r.Observations.ImmuneAssay,
			r.Observations.Smear,
			r.Observations.Culture,
			r.Observations.MolecularAssay,
			strconv.Itoa(r.Score),
			r.Category,
			r.Recommendation,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDump renders the structured full-fidelity dump: a JSON array of
// complete case records.
func WriteDump(w io.Writer, records []schema.CaseRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ParseDump reads a structured dump back. The whole payload is validated
// before anything is returned, so a malformed file is rejected without
// partial application.
func ParseDump(r io.Reader) ([]schema.CaseRecord, error) {
	var records []schema.CaseRecord

	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, &ImportFormatError{Reason: "not a case record array", Err: err}
	}

	for i, rec := range records {
		if rec.ID == "" {
			return nil, &ImportFormatError{Reason: fmt.Sprintf("record %d has no id", i)}
		}
	}

	return records, nil
}
