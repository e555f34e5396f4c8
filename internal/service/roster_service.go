package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/ml"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
)

const rosterCacheKey = "roster:students"

// RosterService produces the staff-facing student listing.
type RosterService interface {
	ListStudents(ctx context.Context) ([]dto.RosterEntry, error)
}

type rosterService struct {
	users    repository.UserRepository
	academic repository.AcademicRepository
	alerts   repository.AlertRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewRosterService builds the roster aggregator. The cache is optional.
func NewRosterService(users repository.UserRepository, academic repository.AcademicRepository, alerts repository.AlertRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RosterService {
	return &rosterService{
		users:    users,
		academic: academic,
		alerts:   alerts,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "roster_service").Logger(),
	}
}

func (s *rosterService) ListStudents(ctx context.Context) ([]dto.RosterEntry, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, rosterCacheKey).Result(); err == nil {
			var entries []dto.RosterEntry
			if unmarshalErr := json.Unmarshal([]byte(cached), &entries); unmarshalErr == nil {
				s.logger.Debug().Msg("roster cache hit")
				return entries, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read roster cache")
		}
	}

	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RosterEntry, 0, len(students))
	for _, student := range students {
		entry, err := s.buildEntry(ctx, student)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, rosterCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store roster cache")
			}
		}
	}

	return entries, nil
}

func (s *rosterService) buildEntry(ctx context.Context, student models.User) (dto.RosterEntry, error) {
	entry := dto.RosterEntry{
		ID:           student.ID,
		Name:         student.Name,
		Email:        student.Email,
		Attendance:   ml.DefaultAttendance,
		AverageGrade: ml.DefaultAverageGrade,
		RiskLevel:    models.RiskLow,
		LastLogin:    student.LastLogin,
	}

	attendance, err := s.academic.LatestAttendance(ctx, student.ID)
	if err != nil {
		return dto.RosterEntry{}, err
	}
	if attendance != nil {
		entry.Attendance = attendance.Percentage
	}

	average, err := s.academic.AverageGrade(ctx, student.ID)
	if err != nil {
		return dto.RosterEntry{}, err
	}
	if average != nil {
		entry.AverageGrade = *average
	}

	alert, err := s.alerts.OpenByStudent(ctx, student.ID)
	if err != nil {
		return dto.RosterEntry{}, err
	}
	if alert != nil {
		entry.RiskLevel = alert.RiskLevel
	}

	return entry, nil
}
