package ml

import "github.com/dropfixer/dropfixer-api/internal/models"

// Probability thresholds separating the three risk categories.
const (
	highRiskThreshold   = 0.70
	mediumRiskThreshold = 0.40
)

// LevelForProbability buckets the classifier probability into a category.
func LevelForProbability(p float64) string {
	switch {
	case p > highRiskThreshold:
		return models.RiskHigh
	case p > mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// RiskFactors derives qualitative factors from the feature vector. Each rule
// is evaluated independently of the others and of the classifier output.
func RiskFactors(v FeatureVector) []string {
	factors := []string{}
	if v[FeatAttendance] < 75 {
		factors = append(factors, "Low attendance rate")
	}
	if v[FeatAverageGrade] < 70 {
		factors = append(factors, "Poor academic performance")
	}
	if v[FeatFeeOverdue] == 1 {
		factors = append(factors, "Outstanding fees")
	}
	if v[FeatFamilySupport] < 2 {
		factors = append(factors, "Limited family support")
	}
	if v[FeatMentalHealth] < 2 {
		factors = append(factors, "Mental health concerns")
	}
	if v[FeatFinancialDifficulty] > 3 {
		factors = append(factors, "Financial difficulties")
	}
	return factors
}

var recommendationsByLevel = map[string][]string{
	models.RiskHigh: {
		"Schedule immediate counseling session",
		"Contact family/guardians",
		"Provide additional academic support",
		"Refer to financial aid office",
	},
	models.RiskMedium: {
		"Monitor attendance closely",
		"Provide study support resources",
		"Schedule regular check-ins",
		"Consider peer mentoring",
	},
	models.RiskLow: {
		"Continue regular monitoring",
		"Encourage participation in activities",
		"Maintain good communication",
	},
}

// Recommendations returns the intervention list for a risk category. Unknown
// categories yield an empty list.
func Recommendations(level string) []string {
	items, ok := recommendationsByLevel[level]
	if !ok {
		return []string{}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
