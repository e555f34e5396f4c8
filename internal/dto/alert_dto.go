package dto

import (
	"time"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

// AlertResponse is the wire form of a risk alert.
type AlertResponse struct {
	ID           uint      `json:"id"`
	StudentName  string    `json:"student_name"`
	Message      string    `json:"message"`
	RiskLevel    string    `json:"risk_level"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAlertResponse converts an alert model (with preloaded student).
func NewAlertResponse(alert models.Alert) AlertResponse {
	return AlertResponse{
		ID:           alert.ID,
		StudentName:  alert.Student.Name,
		Message:      alert.Message,
		RiskLevel:    alert.RiskLevel,
		Acknowledged: alert.Acknowledged,
		CreatedAt:    alert.CreatedAt,
	}
}

// NewAlertResponseSlice converts a batch of alerts.
func NewAlertResponseSlice(alerts []models.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, NewAlertResponse(alert))
	}
	return out
}
