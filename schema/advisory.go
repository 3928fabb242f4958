package schema

// FeatureImpact annotates how much a single observation contributed to the
// advisory assessment.
type FeatureImpact struct {
	Feature string  `json:"feature" bson:"feature"`
	Impact  float64 `json:"impact" bson:"impact"`
	Note    string  `json:"note,omitempty" bson:"note,omitempty"`
}

// AdvisoryReport is the output of the external annotation service. It is
// advisory only: the fusion score never replaces the deterministic case score
// unless an operator explicitly accepts it.
type AdvisoryReport struct {
	Narrative   string          `json:"narrative" bson:"narrative"`
	FusionScore float64         `json:"fusion_score" bson:"fusion_score"`
	Confidence  float64         `json:"confidence" bson:"confidence"`
	Anomalies   []string        `json:"anomalies" bson:"anomalies"`
	Action      string          `json:"action" bson:"action"`
	Impacts     []FeatureImpact `json:"impacts" bson:"impacts"`
	GeneratedAt int64           `json:"generated_at" bson:"generated_at"`
}
