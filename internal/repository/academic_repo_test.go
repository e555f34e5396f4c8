package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.Grade{},
		&models.Fee{},
		&models.Survey{},
		&models.Alert{},
	))

	return db
}

func TestAcademicRepositoryLatestRecords(t *testing.T) {
	db := setupTestDB(t, "repo_latest")
	repo := NewAcademicRepository(db)
	ctx := context.Background()

	studentID := uint(1)
	older := time.Now().UTC().Add(-48 * time.Hour)
	newer := time.Now().UTC().Add(-time.Hour)

	require.NoError(t, db.Create(&models.Attendance{StudentID: studentID, Percentage: 91, Month: "May", Year: 2024, CreatedAt: older}).Error)
	require.NoError(t, db.Create(&models.Attendance{StudentID: studentID, Percentage: 67, Month: "June", Year: 2024, CreatedAt: newer}).Error)

	attendance, err := repo.LatestAttendance(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, attendance)
	require.Equal(t, 67.0, attendance.Percentage)

	require.NoError(t, db.Create(&models.Fee{StudentID: studentID, Status: models.FeeStatusPaid, AmountDue: 1000, DueDate: newer, CreatedAt: older}).Error)
	require.NoError(t, db.Create(&models.Fee{StudentID: studentID, Status: models.FeeStatusOverdue, AmountDue: 2000, DueDate: newer, CreatedAt: newer}).Error)

	fee, err := repo.LatestFee(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, fee)
	require.Equal(t, models.FeeStatusOverdue, fee.Status)

	require.NoError(t, db.Create(&models.Survey{StudentID: studentID, SurveyType: "a", Responses: datatypes.JSONMap{"mental_health": 2}, CompletedAt: older}).Error)
	require.NoError(t, db.Create(&models.Survey{StudentID: studentID, SurveyType: "b", Responses: datatypes.JSONMap{"mental_health": 4}, CompletedAt: newer}).Error)

	survey, err := repo.LatestSurvey(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, survey)
	require.Equal(t, "b", survey.SurveyType)
}

func TestAcademicRepositoryAverageGrade(t *testing.T) {
	db := setupTestDB(t, "repo_average")
	repo := NewAcademicRepository(db)
	ctx := context.Background()

	studentID := uint(1)
	now := time.Now().UTC()
	for _, score := range []float64{60, 70, 80} {
		require.NoError(t, db.Create(&models.Grade{StudentID: studentID, Subject: "s", Score: score, Semester: "Spring 2024", Year: 2024, CreatedAt: now}).Error)
	}

	average, err := repo.AverageGrade(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, average)
	require.InDelta(t, 70.0, *average, 1e-9)
}

func TestAcademicRepositoryMissingHistoryIsNotAnError(t *testing.T) {
	db := setupTestDB(t, "repo_missing")
	repo := NewAcademicRepository(db)
	ctx := context.Background()

	attendance, err := repo.LatestAttendance(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, attendance)

	average, err := repo.AverageGrade(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, average)

	fee, err := repo.LatestFee(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, fee)

	survey, err := repo.LatestSurvey(ctx, 42)
	require.NoError(t, err)
	require.Nil(t, survey)
}
