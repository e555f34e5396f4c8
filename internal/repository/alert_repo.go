package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

// ErrAlertNotFound indicates the requested alert does not exist.
var ErrAlertNotFound = errors.New("alert not found")

// AlertRepository persists risk alerts.
type AlertRepository interface {
	// CreateIfAbsent inserts the alert unless an unacknowledged alert for
	// the same student and risk level already exists. Returns true when a
	// row was inserted. Relies on the partial unique index on alerts, so
	// concurrent callers cannot both insert.
	CreateIfAbsent(ctx context.Context, alert *models.Alert) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]models.Alert, error)
	GetByID(ctx context.Context, id uint) (models.Alert, error)
	Acknowledge(ctx context.Context, id uint) error
	OpenByStudent(ctx context.Context, studentID uint) (*models.Alert, error)
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository constructs an alert repository backed by GORM.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) CreateIfAbsent(ctx context.Context, alert *models.Alert) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(alert)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *alertRepository) ListRecent(ctx context.Context, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var alerts []models.Alert
	err := r.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id uint) (models.Alert, error) {
	var alert models.Alert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Alert{}, ErrAlertNotFound
		}
		return models.Alert{}, err
	}
	return alert, nil
}

func (r *alertRepository) Acknowledge(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ?", id).
		Update("acknowledged", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) OpenByStudent(ctx context.Context, studentID uint) (*models.Alert, error) {
	var alert models.Alert
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND acknowledged = ?", studentID, false).
		Order("created_at DESC").
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}
