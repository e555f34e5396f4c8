package models

import (
	"time"

	"gorm.io/datatypes"
)

// Fee payment statuses.
const (
	FeeStatusPaid    = "paid"
	FeeStatusPending = "pending"
	FeeStatusOverdue = "overdue"
)

// Attendance is a monthly attendance percentage for a student. Append-only.
type Attendance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	Percentage float64   `gorm:"not null" json:"percentage"`
	Month      string    `gorm:"size:20;not null" json:"month"`
	Year       int       `gorm:"not null" json:"year"`
	CreatedAt  time.Time `json:"created_at"`
}

// Grade is a per-subject score for a student in a given semester. Append-only.
type Grade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	Subject   string    `gorm:"size:100;not null" json:"subject"`
	Score     float64   `gorm:"not null" json:"score"`
	Semester  string    `gorm:"size:20;not null" json:"semester"`
	Year      int       `gorm:"not null" json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

// Fee records a billed amount and its payment status for a student.
type Fee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	Status     string    `gorm:"size:20;not null" json:"status"`
	AmountDue  float64   `gorm:"not null" json:"amount_due"`
	AmountPaid float64   `gorm:"default:0" json:"amount_paid"`
	DueDate    time.Time `gorm:"not null" json:"due_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// Survey stores free-form questionnaire responses keyed by question name.
type Survey struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	StudentID   uint              `gorm:"not null;index" json:"student_id"`
	Responses   datatypes.JSONMap `gorm:"not null" json:"responses"`
	SurveyType  string            `gorm:"size:50;not null" json:"survey_type"`
	CompletedAt time.Time         `json:"completed_at"`
}
