package dto

import "time"

// PredictionDetail is the classifier output for a single student.
type PredictionDetail struct {
	RiskLevel       string   `json:"risk_level"`
	Probability     float64  `json:"probability"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// PredictionResponse is the full predict endpoint payload.
type PredictionResponse struct {
	StudentID   uint             `json:"student_id"`
	StudentName string           `json:"student_name"`
	Prediction  PredictionDetail `json:"prediction"`
	Timestamp   time.Time        `json:"timestamp"`
}

// FeatureImpact describes one feature's contribution to a prediction.
type FeatureImpact struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
	Value  string  `json:"value"`
}

// ExplanationResponse summarises why the classifier scored a student the way
// it did.
type ExplanationResponse struct {
	Features   []FeatureImpact `json:"features"`
	BaseValue  float64         `json:"base_value"`
	Prediction float64         `json:"prediction"`
	Threshold  float64         `json:"threshold"`
}
