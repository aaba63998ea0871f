package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telugutor/backend/pkg/models"
)

// LearnerRepository handles database operations for learner profiles.
type LearnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository creates a new repository instance
func NewLearnerRepository(db *sqlx.DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// GetByID returns a learner profile, or nil when the id is unknown.
func (r *LearnerRepository) GetByID(ctx context.Context, id string) (*models.LearnerProfile, error) {
	var profile models.LearnerProfile
	query := r.db.Rebind("SELECT * FROM learners WHERE id = ?")
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %w", err)
	}
	return &profile, nil
}

// Create inserts a new learner profile and fills in the generated id.
func (r *LearnerRepository) Create(ctx context.Context, profile *models.LearnerProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	query := r.db.Rebind(`
		INSERT INTO learners (id, email, native_language, target_goal, daily_time_minutes)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.NativeLanguage,
		profile.TargetGoal,
		profile.DailyTimeMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to create learner: %w", err)
	}
	return nil
}

// UpdateStreak sets the learner's streak counter.
func (r *LearnerRepository) UpdateStreak(ctx context.Context, id string, streakDays int) error {
	query := r.db.Rebind(`
		UPDATE learners SET streak_days = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, streakDays, id); err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}

// AddPracticeTime adds minutes to the learner's running practice total.
func (r *LearnerRepository) AddPracticeTime(ctx context.Context, id string, minutes int) error {
	query := r.db.Rebind(`
		UPDATE learners
		SET total_practice_minutes = total_practice_minutes + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, minutes, id); err != nil {
		return fmt.Errorf("failed to add practice time: %w", err)
	}
	return nil
}

// SetProficiencyLevel records the placement-test outcome.
func (r *LearnerRepository) SetProficiencyLevel(ctx context.Context, id string, level int) error {
	query := r.db.Rebind(`
		UPDATE learners SET proficiency_level = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, level, id); err != nil {
		return fmt.Errorf("failed to set proficiency level: %w", err)
	}
	return nil
}

// GetReminderTargets returns the Telegram chat ID for every learner who has
// linked one. Used by the reminder scheduler.
func (r *LearnerRepository) GetReminderTargets(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT id, telegram_chat_id FROM learners WHERE telegram_chat_id IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder targets: %w", err)
	}
	defer rows.Close()

	targets := make(map[string]int64)
	for rows.Next() {
		var learnerID string
		var chatID int64
		if err := rows.Scan(&learnerID, &chatID); err != nil {
			return nil, fmt.Errorf("failed to scan reminder target: %w", err)
		}
		targets[learnerID] = chatID
	}
	return targets, rows.Err()
}

// GetStats aggregates the dashboard counters for a learner. The mastered
// count uses the threshold passed by the caller so it stays consistent with
// the skill service.
func (r *LearnerRepository) GetStats(ctx context.Context, id string, masteryThreshold float64) (*models.LearnerStats, error) {
	query := r.db.Rebind(`
		SELECT
			l.streak_days,
			l.total_practice_minutes,
			(SELECT COUNT(*) FROM spaced_repetition_items s WHERE s.learner_id = l.id) AS vocabulary_count,
			(SELECT COUNT(*) FROM learner_skills k WHERE k.learner_id = l.id AND k.mastery_score >= ?) AS concepts_mastered,
			(SELECT COUNT(*) FROM skill_concepts) AS total_concepts
		FROM learners l
		WHERE l.id = ?
	`)
	var stats models.LearnerStats
	err := r.db.GetContext(ctx, &stats, query, masteryThreshold, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner stats: %w", err)
	}
	return &stats, nil
}
