package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telugutor/backend/pkg/models"
)

const conceptColumns = "id, name, category, description, prerequisites"

// SkillRepository handles database operations for skill concepts and
// learner mastery records.
type SkillRepository struct {
	db *sqlx.DB
}

// NewSkillRepository creates a new repository instance
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// GetAllConcepts returns the concept catalog in its seeded order. That
// order doubles as the deterministic tiebreak for recommendation ranking.
func (r *SkillRepository) GetAllConcepts(ctx context.Context) ([]models.SkillConcept, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT "+conceptColumns+" FROM skill_concepts ORDER BY position, name")
	if err != nil {
		return nil, fmt.Errorf("failed to get skill concepts: %w", err)
	}
	defer rows.Close()

	var concepts []models.SkillConcept
	for rows.Next() {
		concept, err := scanSkillConcept(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill concept: %w", err)
		}
		concepts = append(concepts, *concept)
	}
	return concepts, rows.Err()
}

// GetConceptByID returns a concept, or nil when the id is unknown.
func (r *SkillRepository) GetConceptByID(ctx context.Context, id string) (*models.SkillConcept, error) {
	query := r.db.Rebind("SELECT " + conceptColumns + " FROM skill_concepts WHERE id = ?")
	concept, err := scanSkillConcept(r.db.QueryRowxContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill concept: %w", err)
	}
	return concept, nil
}

// GetLearnerSkills returns all mastery rows for a learner.
func (r *SkillRepository) GetLearnerSkills(ctx context.Context, learnerID string) ([]models.LearnerSkill, error) {
	query := r.db.Rebind("SELECT * FROM learner_skills WHERE learner_id = ?")
	var skills []models.LearnerSkill
	if err := r.db.SelectContext(ctx, &skills, query, learnerID); err != nil {
		return nil, fmt.Errorf("failed to get learner skills: %w", err)
	}
	return skills, nil
}

// GetLearnerSkill returns one learner's mastery of one concept, or nil when
// the concept has never been practiced.
func (r *SkillRepository) GetLearnerSkill(ctx context.Context, learnerID, conceptID string) (*models.LearnerSkill, error) {
	var skill models.LearnerSkill
	query := r.db.Rebind("SELECT * FROM learner_skills WHERE learner_id = ? AND concept_id = ?")
	err := r.db.GetContext(ctx, &skill, query, learnerID, conceptID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner skill: %w", err)
	}
	return &skill, nil
}

// UpsertLearnerSkill inserts or overwrites a learner's mastery record in a
// single statement, so concurrent practice submissions for the same concept
// serialize in the store. Returns the stored row.
func (r *SkillRepository) UpsertLearnerSkill(ctx context.Context, learnerID, conceptID string, masteryScore float64, attempts int) (*models.LearnerSkill, error) {
	query := r.db.Rebind(`
		INSERT INTO learner_skills (id, learner_id, concept_id, mastery_score, attempts, last_practiced)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, concept_id) DO UPDATE SET
			mastery_score = excluded.mastery_score,
			attempts = excluded.attempts,
			last_practiced = excluded.last_practiced
	`)
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		learnerID,
		conceptID,
		masteryScore,
		attempts,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert learner skill: %w", err)
	}
	return r.GetLearnerSkill(ctx, learnerID, conceptID)
}

// GetMasteredConcepts returns the concept IDs whose mastery score meets the
// threshold for a learner.
func (r *SkillRepository) GetMasteredConcepts(ctx context.Context, learnerID string, threshold float64) ([]string, error) {
	query := r.db.Rebind("SELECT concept_id FROM learner_skills WHERE learner_id = ? AND mastery_score >= ?")
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, learnerID, threshold); err != nil {
		return nil, fmt.Errorf("failed to get mastered concepts: %w", err)
	}
	return ids, nil
}

func scanSkillConcept(row rowScanner) (*models.SkillConcept, error) {
	var concept models.SkillConcept
	var prereqJSON string
	err := row.Scan(
		&concept.ID,
		&concept.Name,
		&concept.Category,
		&concept.Description,
		&prereqJSON,
	)
	if err != nil {
		return nil, err
	}
	if prereqJSON != "" {
		if err := json.Unmarshal([]byte(prereqJSON), &concept.Prerequisites); err != nil {
			return nil, fmt.Errorf("failed to parse prerequisites: %w", err)
		}
	}
	return &concept, nil
}
