package schema

import (
	"math"
	"strconv"
	"time"
)

const (
	CaseCollection = "cases"
)

// Subject holds the demographic attributes of the person a case describes.
type Subject struct {
	Age      int     `json:"age" bson:"age"`
	Sex      string  `json:"sex" bson:"sex"`
	HeightCM float64 `json:"height_cm" bson:"height_cm"`
	WeightKG float64 `json:"weight_kg" bson:"weight_kg"`
	BMI      float64 `json:"bmi" bson:"bmi"`
}

// ComputeBMI derives the body-mass index from height and weight. It returns
// zero when height is missing so that an incomplete subject never produces a
// nonsense index.
func (s Subject) ComputeBMI() float64 {
	if s.HeightCM <= 0 {
		return 0
	}
	m := s.HeightCM / 100
	return math.Round(s.WeightKG/(m*m)*10) / 10
}

// Observations holds the selected labels per category. History, symptoms and
// imaging features allow multiple simultaneous selections; the remaining
// categories are single-selection.
type Observations struct {
	History         []string `json:"history" bson:"history"`
	Symptoms        []string `json:"symptoms" bson:"symptoms"`
	ImagingFeatures []string `json:"imaging_features" bson:"imaging_features"`
	Exposure        string   `json:"exposure" bson:"exposure"`
	ImmuneAssay     string   `json:"immune_assay" bson:"immune_assay"`
	Smear           string   `json:"smear" bson:"smear"`
	Culture         string   `json:"culture" bson:"culture"`
	MolecularAssay  string   `json:"molecular_assay" bson:"molecular_assay"`
}

// CaseRecord is one recorded clinical observation set together with the
// classification snapshot taken at save time. The snapshot is never
// recomputed when the weight table later changes.
type CaseRecord struct {
	ID             string          `json:"id" bson:"id"`
	Subject        Subject         `json:"subject" bson:"subject"`
	Observations   Observations    `json:"observations" bson:"observations"`
	Score          int             `json:"score" bson:"score"`
	Category       string          `json:"category" bson:"category"`
	Recommendation string          `json:"recommendation" bson:"recommendation"`
	Advisory       *AdvisoryReport `json:"advisory,omitempty" bson:"advisory,omitempty"`
	CreatorID      string          `json:"creator_id" bson:"creator_id"`
	CreatedAt      int64           `json:"created_at" bson:"created_at"`
}

// NewCaseID returns a client-generated, time-derived case identifier.
func NewCaseID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
