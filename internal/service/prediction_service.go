package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/ml"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/observability"
	"github.com/dropfixer/dropfixer-api/internal/repository"
)

// ErrStudentNotFound indicates the requested user does not exist or is not a student.
var ErrStudentNotFound = errors.New("student not found")

// Scorer abstracts the shared classifier for testability.
type Scorer interface {
	Score(v ml.FeatureVector) (bool, float64, error)
}

// PredictionService runs the risk-scoring pipeline for a single student.
type PredictionService interface {
	Predict(ctx context.Context, studentID uint) (dto.PredictionResponse, error)
	Explain(ctx context.Context, studentID uint) (dto.ExplanationResponse, error)
}

type predictionService struct {
	users    repository.UserRepository
	academic repository.AcademicRepository
	scorer   Scorer
	alerts   AlertService
	tracer   trace.Tracer
	logger   zerolog.Logger
	now      func() time.Time
}

// NewPredictionService wires the scoring pipeline.
func NewPredictionService(users repository.UserRepository, academic repository.AcademicRepository, scorer Scorer, alerts AlertService, logger zerolog.Logger) PredictionService {
	return &predictionService{
		users:    users,
		academic: academic,
		scorer:   scorer,
		alerts:   alerts,
		tracer:   otel.Tracer("github.com/dropfixer/dropfixer-api/internal/service/prediction"),
		logger:   logger.With().Str("component", "prediction_service").Logger(),
		now:      time.Now,
	}
}

func (s *predictionService) Predict(ctx context.Context, studentID uint) (dto.PredictionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "risk.predict", trace.WithAttributes(
		attribute.Int64("student_id", int64(studentID)),
	))
	defer span.End()

	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	signals, err := s.gatherSignals(ctx, studentID)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("gather student signals: %w", err)
	}

	features := ml.ExtractFeatures(signals)

	_, probability, err := s.scorer.Score(features)
	if err != nil {
		span.RecordError(err)
		return dto.PredictionResponse{}, fmt.Errorf("score student: %w", err)
	}

	level := ml.LevelForProbability(probability)
	span.SetAttributes(attribute.String("risk.level", level), attribute.Float64("risk.probability", probability))
	observability.Predictions().WithLabelValues(level).Inc()

	if level == models.RiskHigh {
		if err := s.alerts.EnsureOpenAlert(ctx, student, level); err != nil {
			// Alert persistence failing must not hide the safety-relevant score.
			s.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to ensure high-risk alert")
		}
	}

	return dto.PredictionResponse{
		StudentID:   student.ID,
		StudentName: student.Name,
		Prediction: dto.PredictionDetail{
			RiskLevel:       level,
			Probability:     probability,
			Factors:         ml.RiskFactors(features),
			Recommendations: ml.Recommendations(level),
		},
		Timestamp: s.now().UTC(),
	}, nil
}

// Explain reports per-feature contributions for a student's current score.
func (s *predictionService) Explain(ctx context.Context, studentID uint) (dto.ExplanationResponse, error) {
	if _, err := s.getStudent(ctx, studentID); err != nil {
		return dto.ExplanationResponse{}, err
	}

	signals, err := s.gatherSignals(ctx, studentID)
	if err != nil {
		return dto.ExplanationResponse{}, fmt.Errorf("gather student signals: %w", err)
	}

	features := ml.ExtractFeatures(signals)
	_, probability, err := s.scorer.Score(features)
	if err != nil {
		return dto.ExplanationResponse{}, fmt.Errorf("score student: %w", err)
	}

	return buildExplanation(features, probability), nil
}

func (s *predictionService) getStudent(ctx context.Context, studentID uint) (models.User, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrStudentNotFound
		}
		return models.User{}, err
	}
	if !student.IsStudent() {
		return models.User{}, ErrStudentNotFound
	}
	return student, nil
}

// gatherSignals assembles the transient per-student snapshot from the most
// recent attendance, grade average, fee, and survey records. Missing history
// simply leaves the corresponding signal unset.
func (s *predictionService) gatherSignals(ctx context.Context, studentID uint) (ml.StudentSignals, error) {
	var signals ml.StudentSignals

	attendance, err := s.academic.LatestAttendance(ctx, studentID)
	if err != nil {
		return signals, err
	}
	if attendance != nil {
		signals.AttendancePercentage = &attendance.Percentage
	}

	average, err := s.academic.AverageGrade(ctx, studentID)
	if err != nil {
		return signals, err
	}
	signals.AverageGrade = average

	fee, err := s.academic.LatestFee(ctx, studentID)
	if err != nil {
		return signals, err
	}
	if fee != nil {
		signals.FeeStatus = fee.Status
	}

	survey, err := s.academic.LatestSurvey(ctx, studentID)
	if err != nil {
		return signals, err
	}
	if survey != nil {
		signals.FamilySupport = surveyValue(survey.Responses, "family_support")
		signals.StudyHours = surveyValue(survey.Responses, "study_hours")
		signals.Extracurricular = surveyValue(survey.Responses, "extracurricular")
		signals.MentalHealth = surveyValue(survey.Responses, "mental_health")
		signals.FinancialDifficulty = surveyValue(survey.Responses, "financial_difficulty")
	}

	return signals, nil
}

func surveyValue(responses map[string]interface{}, key string) *float64 {
	raw, ok := responses[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
