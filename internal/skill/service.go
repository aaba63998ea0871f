// Package skill orchestrates the prerequisite-linked concept graph:
// mastery updates, prerequisite checks, and next-concept recommendations.
package skill

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/logger"
	"github.com/telugutor/backend/internal/mastery"
	"github.com/telugutor/backend/pkg/models"
)

// Store is the persistence contract for concepts and mastery records.
type Store interface {
	GetAllConcepts(ctx context.Context) ([]models.SkillConcept, error)
	GetConceptByID(ctx context.Context, id string) (*models.SkillConcept, error)
	GetLearnerSkills(ctx context.Context, learnerID string) ([]models.LearnerSkill, error)
	GetLearnerSkill(ctx context.Context, learnerID, conceptID string) (*models.LearnerSkill, error)
	UpsertLearnerSkill(ctx context.Context, learnerID, conceptID string, masteryScore float64, attempts int) (*models.LearnerSkill, error)
	GetMasteredConcepts(ctx context.Context, learnerID string, threshold float64) ([]string, error)
}

// DefaultRecommendationLimit is how many concepts a recommendation request
// returns when the caller doesn't specify.
const DefaultRecommendationLimit = 3

// Recommendation priority: concepts with every prerequisite mastered score a
// flat bonus, then partial progress adds up to 50 more. Unmet-prerequisite
// concepts can therefore never outrank a met one.
const (
	prereqMetPriority = 100.0
	progressWeight    = 50.0
)

// Service computes graph state and recommendations for learners.
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a skill graph service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.With("service", "skill")}
}

// GetGraph returns the full concept catalog plus the learner's mastery rows.
// Concepts are never filtered; the client renders locked state itself.
func (s *Service) GetGraph(ctx context.Context, learnerID string) (*models.SkillGraph, error) {
	concepts, err := s.store.GetAllConcepts(ctx)
	if err != nil {
		return nil, err
	}
	masteries, err := s.store.GetLearnerSkills(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return &models.SkillGraph{Concepts: concepts, Masteries: masteries}, nil
}

// GetConcept returns a single concept from the catalog.
func (s *Service) GetConcept(ctx context.Context, conceptID string) (*models.SkillConcept, error) {
	concept, err := s.store.GetConceptByID(ctx, conceptID)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperr.NotFoundf("concept %s", conceptID)
	}
	return concept, nil
}

// UpdateMastery records one practice attempt and returns the updated
// mastery row. A concept never practiced before starts from score 0.
func (s *Service) UpdateMastery(ctx context.Context, learnerID, conceptID string, success bool, difficulty int) (*models.LearnerSkill, error) {
	if !mastery.ValidDifficulty(difficulty) {
		return nil, apperr.Validationf("difficulty must be between 1 and 5, got %d", difficulty)
	}

	concept, err := s.store.GetConceptByID(ctx, conceptID)
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, apperr.NotFoundf("concept %s", conceptID)
	}

	currentScore := 0.0
	attempts := 0
	if current, err := s.store.GetLearnerSkill(ctx, learnerID, conceptID); err != nil {
		return nil, err
	} else if current != nil {
		currentScore = current.MasteryScore
		attempts = current.Attempts
	}

	newScore, newAttempts := mastery.Advance(currentScore, attempts, success, difficulty)

	updated, err := s.store.UpsertLearnerSkill(ctx, learnerID, conceptID, newScore, newAttempts)
	if err != nil {
		return nil, err
	}

	s.log.Debug("mastery updated",
		"concept_id", conceptID,
		"success", success,
		"mastery_score", newScore,
		"attempts", newAttempts,
	)
	return updated, nil
}

// GetNextConcepts recommends up to limit concepts to practice next.
// Already-mastered concepts are excluded; the rest rank by prerequisite
// satisfaction first and partial progress second. Ties keep catalog order.
func (s *Service) GetNextConcepts(ctx context.Context, learnerID string, limit int) ([]models.NextConcept, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	concepts, err := s.store.GetAllConcepts(ctx)
	if err != nil {
		return nil, err
	}
	masteredIDs, err := s.store.GetMasteredConcepts(ctx, learnerID, mastery.Threshold)
	if err != nil {
		return nil, err
	}
	skills, err := s.store.GetLearnerSkills(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	mastered := make(map[string]bool, len(masteredIDs))
	for _, id := range masteredIDs {
		mastered[id] = true
	}
	scores := make(map[string]float64, len(skills))
	for _, sk := range skills {
		scores[sk.ConceptID] = sk.MasteryScore
	}
	names := make(map[string]string, len(concepts))
	for _, c := range concepts {
		names[c.ID] = c.Name
	}

	type candidate struct {
		next     models.NextConcept
		priority float64
	}
	var candidates []candidate
	for _, concept := range concepts {
		if mastered[concept.ID] {
			continue
		}

		prereqsMet := true
		var unmet []string
		for _, prereq := range concept.Prerequisites {
			if !mastered[prereq] {
				prereqsMet = false
				unmet = append(unmet, prereq)
			}
		}

		score := scores[concept.ID]
		priority := score * progressWeight
		if prereqsMet {
			priority += prereqMetPriority
		}

		candidates = append(candidates, candidate{
			next: models.NextConcept{
				Concept:          concept,
				Reason:           recommendationReason(prereqsMet, unmet, names, score),
				PrerequisitesMet: prereqsMet,
			},
			priority: priority,
		})
	}

	// Stable sort keeps the catalog order of equal-priority candidates,
	// which is the documented tiebreak.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	results := make([]models.NextConcept, len(candidates))
	for i, c := range candidates {
		results[i] = c.next
	}
	return results, nil
}

// CheckPrerequisites reports whether every prerequisite of the concept is
// mastered. An unknown concept fails closed.
func (s *Service) CheckPrerequisites(ctx context.Context, learnerID, conceptID string) (bool, error) {
	concept, err := s.store.GetConceptByID(ctx, conceptID)
	if err != nil {
		return false, err
	}
	if concept == nil {
		return false, nil
	}
	if len(concept.Prerequisites) == 0 {
		return true, nil
	}

	masteredIDs, err := s.store.GetMasteredConcepts(ctx, learnerID, mastery.Threshold)
	if err != nil {
		return false, err
	}
	mastered := make(map[string]bool, len(masteredIDs))
	for _, id := range masteredIDs {
		mastered[id] = true
	}
	for _, prereq := range concept.Prerequisites {
		if !mastered[prereq] {
			return false, nil
		}
	}
	return true, nil
}

func recommendationReason(prereqsMet bool, unmet []string, names map[string]string, score float64) string {
	if !prereqsMet {
		if len(unmet) > 2 {
			unmet = unmet[:2]
		}
		cited := make([]string, len(unmet))
		for i, id := range unmet {
			if name, ok := names[id]; ok {
				cited[i] = name
			} else {
				cited[i] = id
			}
		}
		return "Complete prerequisites first: " + strings.Join(cited, ", ")
	}
	if score == 0.0 {
		return "New concept ready to learn"
	}
	if score < 0.5 {
		return fmt.Sprintf("Continue practicing (%d%% mastery)", int(score*100))
	}
	return fmt.Sprintf("Almost there! (%d%% mastery)", int(score*100))
}
