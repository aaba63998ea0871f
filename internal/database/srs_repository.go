package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telugutor/backend/internal/sm2"
	"github.com/telugutor/backend/pkg/models"
)

// SRSRepository handles database operations for spaced repetition items.
type SRSRepository struct {
	db *sqlx.DB
}

// NewSRSRepository creates a new repository instance
func NewSRSRepository(db *sqlx.DB) *SRSRepository {
	return &SRSRepository{db: db}
}

// GetItem returns a spaced repetition item, or nil when the id is unknown.
func (r *SRSRepository) GetItem(ctx context.Context, id string) (*models.SpacedRepetitionItem, error) {
	var item models.SpacedRepetitionItem
	query := r.db.Rebind("SELECT * FROM spaced_repetition_items WHERE id = ?")
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get srs item: %w", err)
	}
	return &item, nil
}

// GetDueItems returns up to limit items whose next review time has passed,
// earliest due first.
func (r *SRSRepository) GetDueItems(ctx context.Context, learnerID string, limit int) ([]models.SpacedRepetitionItem, error) {
	query := r.db.Rebind(`
		SELECT * FROM spaced_repetition_items
		WHERE learner_id = ? AND next_review <= ?
		ORDER BY next_review ASC
		LIMIT ?
	`)
	var items []models.SpacedRepetitionItem
	if err := r.db.SelectContext(ctx, &items, query, learnerID, time.Now().UTC(), limit); err != nil {
		return nil, fmt.Errorf("failed to get due items: %w", err)
	}
	return items, nil
}

// GetAllItems returns every tracked item for a learner, due or not.
func (r *SRSRepository) GetAllItems(ctx context.Context, learnerID string) ([]models.SpacedRepetitionItem, error) {
	query := r.db.Rebind("SELECT * FROM spaced_repetition_items WHERE learner_id = ?")
	var items []models.SpacedRepetitionItem
	if err := r.db.SelectContext(ctx, &items, query, learnerID); err != nil {
		return nil, fmt.Errorf("failed to get srs items: %w", err)
	}
	return items, nil
}

// UpdateItem writes the post-review scheduling state in a single UPDATE so
// concurrent submissions against the same row serialize on the row lock.
// Returns the updated item.
func (r *SRSRepository) UpdateItem(ctx context.Context, id string, ease float64, intervalDays, repetitions int, nextReview, lastReview time.Time) (*models.SpacedRepetitionItem, error) {
	query := r.db.Rebind(`
		UPDATE spaced_repetition_items SET
			ease_factor = ?,
			interval_days = ?,
			repetitions = ?,
			next_review = ?,
			last_review = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query, ease, intervalDays, repetitions, nextReview, lastReview, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update srs item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("srs item %s not found", id)
	}
	return r.GetItem(ctx, id)
}

// AddItem inserts a new item with default SM-2 state, or fetches the
// existing row when the (learner, vocab) pair is already tracked. The
// insert-or-fetch is deliberate: re-adding never resets a schedule.
func (r *SRSRepository) AddItem(ctx context.Context, learnerID, vocabID string) (*models.SpacedRepetitionItem, error) {
	insert := r.db.Rebind(`
		INSERT INTO spaced_repetition_items (
			id, learner_id, vocab_id, ease_factor, interval_days, repetitions, next_review
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, vocab_id) DO NOTHING
	`)
	_, err := r.db.ExecContext(ctx, insert,
		uuid.New().String(),
		learnerID,
		vocabID,
		sm2.DefaultEaseFactor,
		1,
		0,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add srs item: %w", err)
	}

	var item models.SpacedRepetitionItem
	query := r.db.Rebind("SELECT * FROM spaced_repetition_items WHERE learner_id = ? AND vocab_id = ?")
	if err := r.db.GetContext(ctx, &item, query, learnerID, vocabID); err != nil {
		return nil, fmt.Errorf("failed to fetch srs item after insert: %w", err)
	}
	return &item, nil
}

// LearnersWithDueItems returns each learner with at least one due item and
// their due count. Used by the reminder scheduler.
func (r *SRSRepository) LearnersWithDueItems(ctx context.Context) (map[string]int, error) {
	query := r.db.Rebind(`
		SELECT learner_id, COUNT(*) AS due
		FROM spaced_repetition_items
		WHERE next_review <= ?
		GROUP BY learner_id
	`)
	rows, err := r.db.QueryxContext(ctx, query, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to count due items per learner: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var learnerID string
		var due int
		if err := rows.Scan(&learnerID, &due); err != nil {
			return nil, fmt.Errorf("failed to scan due count: %w", err)
		}
		counts[learnerID] = due
	}
	return counts, rows.Err()
}
