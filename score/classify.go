package score

import (
	"math"
	"sort"
	"strings"

	"github.com/clinsync/triage-api/schema"
)

const (
	// PositiveLabel marks a pathogen-detection result that triggers the
	// diagnostic override.
	PositiveLabel = "positive"

	// ConfirmedLabel is the terminal risk category.
	ConfirmedLabel = "confirmed"

	// DefaultCategory is used when the threshold list is empty.
	DefaultCategory = "no risk"

	confirmedFallbackRecommendation = "Pathogen detection positive. Manage as a confirmed case per local protocol."

	lowBMIBound  = 18.5
	lowBMIPoints = 5

	youngAgeBound = 5
	oldAgeBound   = 65
	agePoints     = 5
)

// Result is the classification snapshot stored on a case at save time.
type Result struct {
	Score          int    `json:"score"`
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
}

// Classify computes the deterministic risk score and category for one
// observation set against a weight table. It is pure: identical inputs
// always produce identical results, and unknown or blank labels contribute
// zero rather than failing.
func Classify(subject schema.Subject, obs schema.Observations, table schema.WeightTable) Result {
	weights := table.Categories

	total := float64(labelPoints(weights[schema.CategoryExposure], obs.Exposure) +
		labelPoints(weights[schema.CategoryImmuneAssay], obs.ImmuneAssay) +
		labelPoints(weights[schema.CategorySmear], obs.Smear) +
		labelPoints(weights[schema.CategoryCulture], obs.Culture) +
		labelPoints(weights[schema.CategoryMolecularAssay], obs.MolecularAssay))

	for _, label := range obs.History {
		total += float64(labelPoints(weights[schema.CategoryHistory], label))
	}
	for _, label := range obs.Symptoms {
		total += float64(labelPoints(weights[schema.CategorySymptom], label))
	}

	total += imagingPoints(weights[schema.CategoryImagingFeature], obs.ImagingFeatures)

	bmi := subject.BMI
	if bmi == 0 {
		bmi = subject.ComputeBMI()
	}
	if bmi > 0 && bmi < lowBMIBound {
		total += lowBMIPoints
	}
	if subject.Age < youngAgeBound || subject.Age > oldAgeBound {
		total += agePoints
	}

	// rounding happens once, on the accumulated total
	s := int(math.Round(total))

	category, recommendation := categorize(s, obs, table.Thresholds)

	return Result{
		Score:          s,
		Category:       category,
		Recommendation: recommendation,
	}
}

func labelPoints(weights schema.LabelWeights, label string) int {
	if label == "" {
		return 0
	}
	return weights[label]
}

// imagingPoints applies the diminishing-returns rule: simultaneous imaging
// findings are clinically correlated, so only the highest-weighted selection
// counts at full value and every other selection counts at half.
func imagingPoints(weights schema.LabelWeights, labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}

	selected := make([]int, 0, len(labels))
	for _, label := range labels {
		selected = append(selected, labelPoints(weights, label))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(selected)))

	total := float64(selected[0])
	for _, w := range selected[1:] {
		total += float64(w) / 2
	}
	return total
}

func categorize(s int, obs schema.Observations, thresholds []schema.Threshold) (string, string) {
	if pathogenDetected(obs) {
		for _, t := range thresholds {
			if t.Label == ConfirmedLabel {
				return ConfirmedLabel, t.Recommendation
			}
		}
		return ConfirmedLabel, confirmedFallbackRecommendation
	}

	// max-matching-floor: the entry with the largest MinScore not exceeding
	// the score wins; MaxScore is informational and never disqualifies.
	best := -1
	for i, t := range thresholds {
		if t.Label == ConfirmedLabel {
			continue
		}
		if t.MinScore > s {
			continue
		}
		if best < 0 || t.MinScore > thresholds[best].MinScore {
			best = i
		}
	}
	if best >= 0 {
		return thresholds[best].Label, thresholds[best].Recommendation
	}

	// nothing qualifies: fall back to the lowest-bound entry
	for i, t := range thresholds {
		if t.Label == ConfirmedLabel {
			continue
		}
		if best < 0 || t.MinScore < thresholds[best].MinScore {
			best = i
		}
	}
	if best >= 0 {
		return thresholds[best].Label, thresholds[best].Recommendation
	}

	return DefaultCategory, ""
}

func pathogenDetected(obs schema.Observations) bool {
	return strings.EqualFold(obs.Smear, PositiveLabel) ||
		strings.EqualFold(obs.Culture, PositiveLabel) ||
		strings.EqualFold(obs.MolecularAssay, PositiveLabel)
}
