package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dropfixer/dropfixer-api/internal/ml"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
)

func TestRosterServiceAggregatesStudents(t *testing.T) {
	db := newTestDB(t, "roster_aggregate")

	svc := NewRosterService(
		repository.NewUserRepository(db),
		repository.NewAcademicRepository(db),
		repository.NewAlertRepository(db),
		nil,
		time.Minute,
		zerolog.Nop(),
	)

	teacher := models.User{Name: "Sarah Wilson", Email: "teacher@demo.com", PasswordHash: "x", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)

	atRisk := models.User{Name: "Rahul Sharma", Email: "rahul@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&atRisk).Error)
	fresh := models.User{Name: "Kavya Nair", Email: "kavya@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&fresh).Error)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.Attendance{StudentID: atRisk.ID, Percentage: 58, Month: "June", Year: 2024, CreatedAt: now}).Error)
	require.NoError(t, db.Create(&models.Grade{StudentID: atRisk.ID, Subject: "Mathematics", Score: 64, Semester: "Spring 2024", Year: 2024, CreatedAt: now}).Error)
	require.NoError(t, db.Create(&models.Alert{StudentID: atRisk.ID, RiskLevel: models.RiskHigh, Message: "m", CreatedAt: now}).Error)

	entries, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]int{}
	for i, entry := range entries {
		byName[entry.Name] = i
	}

	risky := entries[byName["Rahul Sharma"]]
	require.Equal(t, 58.0, risky.Attendance)
	require.Equal(t, 64.0, risky.AverageGrade)
	require.Equal(t, models.RiskHigh, risky.RiskLevel)

	// Students with no history get the documented defaults and low risk.
	calm := entries[byName["Kavya Nair"]]
	require.Equal(t, float64(ml.DefaultAttendance), calm.Attendance)
	require.Equal(t, float64(ml.DefaultAverageGrade), calm.AverageGrade)
	require.Equal(t, models.RiskLow, calm.RiskLevel)
}

func TestRosterServiceCachesListing(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	db := newTestDB(t, "roster_cache")
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	svc := NewRosterService(
		repository.NewUserRepository(db),
		repository.NewAcademicRepository(db),
		repository.NewAlertRepository(db),
		redisClient,
		time.Minute,
		zerolog.Nop(),
	)

	student := models.User{Name: "Priya Patel", Email: "priya@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	first, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.True(t, mini.Exists(rosterCacheKey))

	// New students are invisible until the cache expires.
	another := models.User{Name: "Amit Kumar", Email: "amit@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&another).Error)

	cached, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)

	mini.FastForward(2 * time.Minute)

	refreshed, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, refreshed, 2)
}
