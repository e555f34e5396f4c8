package models

import "time"

// Risk levels attached to alerts and predictions.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Alert is a persisted notification tied to a student's risk determination.
// The partial unique index keeps at most one unacknowledged alert per student
// and risk level, so concurrent predictions cannot create duplicates.
type Alert struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;index;uniqueIndex:ux_alerts_open,where:acknowledged = false" json:"student_id"`
	RiskLevel    string    `gorm:"size:10;not null;uniqueIndex:ux_alerts_open,where:acknowledged = false" json:"risk_level"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Acknowledged bool      `gorm:"not null;default:false" json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`

	Student User `gorm:"foreignKey:StudentID" json:"-"`
}
