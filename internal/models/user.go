package models

import "time"

// User roles recognised by the platform.
const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

// User represents any account in the system: students and the staff who monitor them.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:20;not null;index" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// IsStudent reports whether the account belongs to a student.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsPrivileged reports whether the account may view risk data for other students.
func (u User) IsPrivileged() bool {
	switch u.Role {
	case RoleTeacher, RoleCounselor, RoleAdmin:
		return true
	default:
		return false
	}
}
