package dto

import "time"

// RosterEntry summarises one student for staff-facing listings.
type RosterEntry struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Attendance   float64    `json:"attendance"`
	AverageGrade float64    `json:"average_grade"`
	RiskLevel    string     `json:"risk_level"`
	LastLogin    *time.Time `json:"last_login"`
}
