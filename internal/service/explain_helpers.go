package service

import (
	"fmt"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/ml"
)

// explanationBaseValue is the reference probability impacts are reported
// against; the decision threshold mirrors the classifier's class boundary.
const (
	explanationBaseValue = 0.3
	explanationThreshold = 0.5
)

// buildExplanation produces a per-feature impact breakdown. Impacts are a
// heuristic: each triggered risk rule pushes the score up, each healthy
// signal pulls it down, scaled so the magnitudes stay comparable to the
// probability scale.
func buildExplanation(features ml.FeatureVector, probability float64) dto.ExplanationResponse {
	impacts := []dto.FeatureImpact{
		{
			Name:   "Attendance",
			Impact: ruleImpact(features[ml.FeatAttendance] < 75, 0.15),
			Value:  fmt.Sprintf("%.0f%%", features[ml.FeatAttendance]),
		},
		{
			Name:   "Grades",
			Impact: ruleImpact(features[ml.FeatAverageGrade] < 70, 0.12),
			Value:  fmt.Sprintf("%.0f%%", features[ml.FeatAverageGrade]),
		},
		{
			Name:   "Fee Status",
			Impact: ruleImpact(features[ml.FeatFeeOverdue] == 1, 0.08),
			Value:  feeStatusLabel(features[ml.FeatFeeOverdue]),
		},
		{
			Name:   "Family Support",
			Impact: ruleImpact(features[ml.FeatFamilySupport] < 2, 0.05),
			Value:  scaleLabel(features[ml.FeatFamilySupport]),
		},
		{
			Name:   "Mental Health",
			Impact: ruleImpact(features[ml.FeatMentalHealth] < 2, 0.06),
			Value:  scaleLabel(features[ml.FeatMentalHealth]),
		},
		{
			Name:   "Financial Difficulty",
			Impact: ruleImpact(features[ml.FeatFinancialDifficulty] > 3, 0.07),
			Value:  difficultyLabel(features[ml.FeatFinancialDifficulty]),
		},
	}

	return dto.ExplanationResponse{
		Features:   impacts,
		BaseValue:  explanationBaseValue,
		Prediction: probability,
		Threshold:  explanationThreshold,
	}
}

func ruleImpact(triggered bool, magnitude float64) float64 {
	if triggered {
		return magnitude
	}
	return -magnitude / 3
}

func feeStatusLabel(flag float64) string {
	if flag == 1 {
		return "Overdue"
	}
	return "Clear"
}

func scaleLabel(value float64) string {
	switch {
	case value <= 2:
		return "Low"
	case value <= 3:
		return "Moderate"
	default:
		return "Good"
	}
}

// difficultyLabel reads the scale in the opposite direction: a high value is
// a bad sign.
func difficultyLabel(value float64) string {
	switch {
	case value <= 2:
		return "Low"
	case value <= 3:
		return "Moderate"
	default:
		return "High"
	}
}
