package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

// AcademicRepository reads the attendance, grade, fee, and survey history
// owned by upstream data-entry processes. The risk pipeline only ever needs
// the most recent record, or an aggregate, per student.
type AcademicRepository interface {
	LatestAttendance(ctx context.Context, studentID uint) (*models.Attendance, error)
	AverageGrade(ctx context.Context, studentID uint) (*float64, error)
	LatestFee(ctx context.Context, studentID uint) (*models.Fee, error)
	LatestSurvey(ctx context.Context, studentID uint) (*models.Survey, error)
}

type academicRepository struct {
	db *gorm.DB
}

// NewAcademicRepository constructs an academic record repository.
func NewAcademicRepository(db *gorm.DB) AcademicRepository {
	return &academicRepository{db: db}
}

func (r *academicRepository) LatestAttendance(ctx context.Context, studentID uint) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&attendance).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &attendance, nil
}

func (r *academicRepository) AverageGrade(ctx context.Context, studentID uint) (*float64, error) {
	var result struct {
		Average *float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Grade{}).
		Select("AVG(score) AS average").
		Where("student_id = ?", studentID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	// AVG over zero rows yields NULL, meaning no grades recorded.
	return result.Average, nil
}

func (r *academicRepository) LatestFee(ctx context.Context, studentID uint) (*models.Fee, error) {
	var fee models.Fee
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&fee).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &fee, nil
}

func (r *academicRepository) LatestSurvey(ctx context.Context, studentID uint) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("completed_at DESC").
		First(&survey).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &survey, nil
}

// ignoreNotFound converts gorm.ErrRecordNotFound into a nil error so absent
// history reads as "no signal" instead of a failure.
func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
