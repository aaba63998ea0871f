// Package learner handles profile lookups, practice streaks, and the
// dashboard stats summary.
package learner

import (
	"context"
	"time"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/logger"
	"github.com/telugutor/backend/internal/mastery"
	"github.com/telugutor/backend/pkg/models"
)

// ProfileStore is the persistence contract for learner profiles.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.LearnerProfile, error)
	UpdateStreak(ctx context.Context, id string, streakDays int) error
	AddPracticeTime(ctx context.Context, id string, minutes int) error
	GetStats(ctx context.Context, id string, masteryThreshold float64) (*models.LearnerStats, error)
}

// Cache holds the last-practice marker that drives streak counting.
type Cache interface {
	CacheGet(ctx context.Context, key string) (string, error)
	CacheSet(ctx context.Context, key, value string, ttl time.Duration) error
}

// The last-practice marker only needs to survive until the day after
// tomorrow; past that the streak is broken anyway.
const lastPracticeTTL = 48 * time.Hour

// Service manages learner profiles.
type Service struct {
	store ProfileStore
	cache Cache
	log   *logger.Logger
	now   func() time.Time
}

// NewService creates a learner service.
func NewService(store ProfileStore, cache Cache, log *logger.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		log:   log.With("service", "learner"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile returns the learner's profile.
func (s *Service) GetProfile(ctx context.Context, learnerID string) (*models.LearnerProfile, error) {
	profile, err := s.store.GetByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.NotFoundf("learner %s", learnerID)
	}
	return profile, nil
}

// GetStats returns the dashboard counters.
func (s *Service) GetStats(ctx context.Context, learnerID string) (*models.LearnerStats, error) {
	stats, err := s.store.GetStats(ctx, learnerID, mastery.Threshold)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, apperr.NotFoundf("learner %s", learnerID)
	}
	return stats, nil
}

// RecordPracticeTime adds minutes to the learner's running total and rolls
// the daily streak forward.
func (s *Service) RecordPracticeTime(ctx context.Context, learnerID string, minutes int) (int, error) {
	if minutes <= 0 {
		return 0, apperr.Validationf("minutes must be positive, got %d", minutes)
	}
	if err := s.store.AddPracticeTime(ctx, learnerID, minutes); err != nil {
		return 0, err
	}
	return s.UpdateStreak(ctx, learnerID)
}

// UpdateStreak advances the streak counter: practicing on consecutive days
// increments it, a same-day repeat leaves it unchanged, and a gap resets it
// to one. Returns the new streak.
func (s *Service) UpdateStreak(ctx context.Context, learnerID string) (int, error) {
	profile, err := s.store.GetByID(ctx, learnerID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, apperr.NotFoundf("learner %s", learnerID)
	}

	today := s.now().Truncate(24 * time.Hour)
	cacheKey := "last_practice:" + learnerID

	lastPractice, err := s.cache.CacheGet(ctx, cacheKey)
	if err != nil {
		return 0, err
	}

	newStreak := 1
	if lastPractice != "" {
		lastDay, parseErr := time.Parse("2006-01-02", lastPractice)
		if parseErr == nil {
			switch int(today.Sub(lastDay).Hours() / 24) {
			case 0:
				// Already practiced today
				return profile.StreakDays, nil
			case 1:
				newStreak = profile.StreakDays + 1
			}
		}
	}

	if err := s.store.UpdateStreak(ctx, learnerID, newStreak); err != nil {
		return 0, err
	}
	if err := s.cache.CacheSet(ctx, cacheKey, today.Format("2006-01-02"), lastPracticeTTL); err != nil {
		// Losing the marker only risks an extra streak increment tomorrow.
		s.log.Warn("failed to cache last practice date", "learner_id", learnerID, "error", err)
	}
	return newStreak, nil
}
