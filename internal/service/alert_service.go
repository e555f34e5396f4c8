package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/observability"
	"github.com/dropfixer/dropfixer-api/internal/repository"
)

// ErrAlertNotFound indicates the requested alert does not exist.
var ErrAlertNotFound = errors.New("alert not found")

const alertEventSubject = "dropfixer.alerts.created"

// AlertService manages the lifecycle of risk alerts.
type AlertService interface {
	// EnsureOpenAlert creates a high-risk alert for the student unless an
	// unacknowledged one already exists. Safe to call on every prediction.
	EnsureOpenAlert(ctx context.Context, student models.User, level string) error
	ListRecent(ctx context.Context) ([]dto.AlertResponse, error)
	// Acknowledge flips the acknowledged flag. The flag never reverts;
	// acknowledging an already-acknowledged alert reports alreadyDone.
	Acknowledge(ctx context.Context, alertID uint) (alreadyDone bool, err error)
}

// alertEvent is the payload published when a new alert opens, for downstream
// notification consumers.
type alertEvent struct {
	AlertID   uint      `json:"alert_id"`
	StudentID uint      `json:"student_id"`
	RiskLevel string    `json:"risk_level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type alertService struct {
	repo   repository.AlertRepository
	nats   *nats.Conn
	logger zerolog.Logger
}

// NewAlertService constructs an alert service. The NATS connection is
// optional; when nil, alert events are simply not published.
func NewAlertService(repo repository.AlertRepository, natsConn *nats.Conn, logger zerolog.Logger) AlertService {
	return &alertService{
		repo:   repo,
		nats:   natsConn,
		logger: logger.With().Str("component", "alert_service").Logger(),
	}
}

func (s *alertService) EnsureOpenAlert(ctx context.Context, student models.User, level string) error {
	alert := models.Alert{
		StudentID: student.ID,
		RiskLevel: level,
		Message:   fmt.Sprintf("Student %s is at %s risk of dropping out. Immediate intervention recommended.", student.Name, level),
	}

	created, err := s.repo.CreateIfAbsent(ctx, &alert)
	if err != nil {
		return err
	}
	if !created {
		s.logger.Debug().Uint("student_id", student.ID).Msg("open alert already exists")
		return nil
	}

	observability.AlertsCreated().Inc()
	s.logger.Info().Uint("student_id", student.ID).Uint("alert_id", alert.ID).Str("risk_level", level).Msg("risk alert created")
	s.publishCreated(alert)
	return nil
}

func (s *alertService) ListRecent(ctx context.Context) ([]dto.AlertResponse, error) {
	alerts, err := s.repo.ListRecent(ctx, 50)
	if err != nil {
		return nil, err
	}
	return dto.NewAlertResponseSlice(alerts), nil
}

func (s *alertService) Acknowledge(ctx context.Context, alertID uint) (bool, error) {
	alert, err := s.repo.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return false, ErrAlertNotFound
		}
		return false, err
	}

	if alert.Acknowledged {
		return true, nil
	}

	if err := s.repo.Acknowledge(ctx, alertID); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return false, ErrAlertNotFound
		}
		return false, err
	}

	s.logger.Info().Uint("alert_id", alertID).Msg("alert acknowledged")
	return false, nil
}

func (s *alertService) publishCreated(alert models.Alert) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(alertEvent{
		AlertID:   alert.ID,
		StudentID: alert.StudentID,
		RiskLevel: alert.RiskLevel,
		Message:   alert.Message,
		CreatedAt: alert.CreatedAt,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode alert event")
		return
	}

	if err := s.nats.Publish(alertEventSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish alert event")
	}
}
