package schema

const (
	ConfigurationCollection = "configuration"

	// WeightTableKey is the key of the singleton weight table document
	// inside the configuration collection.
	WeightTableKey = "weights"
)

type Category string

const (
	CategoryHistory        Category = "history"
	CategoryExposure       Category = "exposure"
	CategoryImagingFeature Category = "imaging-feature"
	CategoryImmuneAssay    Category = "immune-assay"
	CategorySmear          Category = "smear"
	CategoryCulture        Category = "culture"
	CategoryMolecularAssay Category = "molecular-assay"
	CategorySymptom        Category = "symptom"
)

// Categories is the fixed set of observation categories. Labels inside a
// category are free text and operator-editable; the category set is not.
var Categories = []Category{
	CategoryHistory,
	CategoryExposure,
	CategoryImagingFeature,
	CategoryImmuneAssay,
	CategorySmear,
	CategoryCulture,
	CategoryMolecularAssay,
	CategorySymptom,
}

// LabelWeights maps an observation label to its point value.
type LabelWeights map[string]int

// Threshold is one entry of the ordered risk threshold list. MaxScore is
// informational only; classification selects by the largest MinScore not
// exceeding the score.
type Threshold struct {
	ID             string `json:"id" bson:"id"`
	Label          string `json:"label" bson:"label"`
	MinScore       int    `json:"min_score" bson:"min_score"`
	MaxScore       int    `json:"max_score" bson:"max_score"`
	Recommendation string `json:"recommendation" bson:"recommendation"`
}

// WeightTable is the operator-editable scoring configuration. It is created
// once from defaults and afterwards only ever replaced wholesale.
type WeightTable struct {
	Categories map[Category]LabelWeights `json:"categories" bson:"categories"`
	Thresholds []Threshold               `json:"thresholds" bson:"thresholds"`
}

// Clone returns a deep copy so that no caller shares map state with the
// repository cache.
func (t WeightTable) Clone() WeightTable {
	c := WeightTable{
		Categories: make(map[Category]LabelWeights, len(t.Categories)),
		Thresholds: make([]Threshold, len(t.Thresholds)),
	}
	for cat, weights := range t.Categories {
		w := make(LabelWeights, len(weights))
		for label, v := range weights {
			w[label] = v
		}
		c.Categories[cat] = w
	}
	copy(c.Thresholds, t.Thresholds)
	return c
}

// DefaultWeightTable returns the built-in scoring configuration used until an
// administrator replaces it.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		Categories: map[Category]LabelWeights{
			CategoryHistory: {
				"prior-tb":                  25,
				"tb-contact-household":      20,
				"hiv-positive":              30,
				"diabetes":                  10,
				"immunosuppressive-therapy": 20,
				"malnutrition":              10,
				"smoking":                   5,
			},
			CategoryExposure: {
				"none":         0,
				"community":    5,
				"occupational": 10,
				"household":    20,
			},
			CategoryImagingFeature: {
				"normal":                0,
				"cavitation":            25,
				"upper-lobe-infiltrate": 15,
				"miliary-pattern":       25,
				"pleural-effusion":      12,
				"lymphadenopathy":       10,
			},
			CategoryImmuneAssay: {
				"negative":   0,
				"borderline": 5,
				"positive":   15,
			},
			CategorySmear: {
				"negative": 0,
				"scanty":   20,
				"positive": 40,
			},
			CategoryCulture: {
				"negative":     0,
				"pending":      0,
				"contaminated": 0,
				"positive":     50,
			},
			CategoryMolecularAssay: {
				"negative":      0,
				"indeterminate": 5,
				"trace":         25,
				"positive":      45,
			},
			CategorySymptom: {
				"cough-over-2-weeks": 10,
				"hemoptysis":         15,
				"fever":              5,
				"night-sweats":       8,
				"weight-loss":        10,
				"appetite-loss":      4,
				"chest-pain":         4,
				"fatigue":            3,
			},
		},
		Thresholds: []Threshold{
			{ID: "b3b7462f-36ea-40e1-922f-9ae7e57a515c", Label: "minimal", MinScore: 0, MaxScore: 10, Recommendation: "No further evaluation required. Routine follow-up."},
			{ID: "9d0b42f2-4f6f-4cf8-a33c-3a48e03531c9", Label: "low", MinScore: 11, MaxScore: 20, Recommendation: "Repeat clinical assessment in 4 weeks."},
			{ID: "8a35f8f6-df9f-46b7-9982-84a54e12b17d", Label: "moderate", MinScore: 21, MaxScore: 40, Recommendation: "Order chest imaging and immune assay if not done."},
			{ID: "4b5d86d4-0b6f-45a9-9f21-7e1f5b6a9c02", Label: "high", MinScore: 41, MaxScore: 60, Recommendation: "Collect sputum for smear, culture and molecular assay."},
			{ID: "f2a21c3d-5dd0-4f7a-8a3b-16f9b72d3a55", Label: "very-high", MinScore: 61, MaxScore: 99, Recommendation: "Isolate and fast-track full diagnostic work-up."},
			{ID: "07c9f5e1-95cf-41d2-b196-2cc0d8b6e4af", Label: "confirmed", MinScore: 100, MaxScore: 999, Recommendation: "Initiate standard anti-tuberculosis regimen and notify the public health registry."},
		},
	}
}
