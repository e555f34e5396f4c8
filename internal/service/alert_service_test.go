package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
)

func TestAlertServiceEnsureOpenAlertIsIdempotent(t *testing.T) {
	db := newTestDB(t, "alert_idempotent")
	repo := repository.NewAlertRepository(db)
	svc := NewAlertService(repo, nil, zerolog.Nop())

	student := models.User{Name: "Rahul Sharma", Email: "rahul@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	ctx := context.Background()
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Where("student_id = ?", student.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var alert models.Alert
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&alert).Error)
	require.Equal(t, models.RiskHigh, alert.RiskLevel)
	require.Contains(t, alert.Message, "Rahul Sharma")
	require.Contains(t, alert.Message, "high risk of dropping out")
	require.False(t, alert.Acknowledged)
}

func TestAlertServiceNewAlertAfterAcknowledgement(t *testing.T) {
	db := newTestDB(t, "alert_reopen")
	repo := repository.NewAlertRepository(db)
	svc := NewAlertService(repo, nil, zerolog.Nop())

	student := models.User{Name: "Sneha Singh", Email: "sneha@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	ctx := context.Background()
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))

	var first models.Alert
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&first).Error)

	alreadyDone, err := svc.Acknowledge(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, alreadyDone)

	// Once the open alert is closed, the next determination opens a new one.
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Where("student_id = ?", student.ID).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestAlertServiceAcknowledgeIsOneWay(t *testing.T) {
	db := newTestDB(t, "alert_ack")
	repo := repository.NewAlertRepository(db)
	svc := NewAlertService(repo, nil, zerolog.Nop())

	student := models.User{Name: "Priya Patel", Email: "priya@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	ctx := context.Background()
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))

	var alert models.Alert
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&alert).Error)

	alreadyDone, err := svc.Acknowledge(ctx, alert.ID)
	require.NoError(t, err)
	require.False(t, alreadyDone)

	alreadyDone, err = svc.Acknowledge(ctx, alert.ID)
	require.NoError(t, err)
	require.True(t, alreadyDone)

	require.NoError(t, db.First(&alert, alert.ID).Error)
	require.True(t, alert.Acknowledged)
}

func TestAlertServiceAcknowledgeUnknownAlert(t *testing.T) {
	db := newTestDB(t, "alert_unknown")
	svc := NewAlertService(repository.NewAlertRepository(db), nil, zerolog.Nop())

	_, err := svc.Acknowledge(context.Background(), 9999)
	require.ErrorIs(t, err, ErrAlertNotFound)
}

func TestAlertServiceListRecentIncludesStudentName(t *testing.T) {
	db := newTestDB(t, "alert_list")
	repo := repository.NewAlertRepository(db)
	svc := NewAlertService(repo, nil, zerolog.Nop())

	student := models.User{Name: "Vikram Joshi", Email: "vikram@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	ctx := context.Background()
	require.NoError(t, svc.EnsureOpenAlert(ctx, student, models.RiskHigh))

	alerts, err := svc.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, "Vikram Joshi", alerts[0].StudentName)
	require.Equal(t, models.RiskHigh, alerts[0].RiskLevel)
	require.False(t, alerts[0].Acknowledged)
}
