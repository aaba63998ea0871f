// Package review orchestrates spaced repetition sessions: loading due
// items, applying the SM-2 engine to submissions, and tracking new
// vocabulary.
package review

import (
	"context"
	"time"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/logger"
	"github.com/telugutor/backend/internal/sm2"
	"github.com/telugutor/backend/pkg/models"
)

// SRSStore is the persistence contract for spaced repetition items.
type SRSStore interface {
	GetItem(ctx context.Context, id string) (*models.SpacedRepetitionItem, error)
	GetDueItems(ctx context.Context, learnerID string, limit int) ([]models.SpacedRepetitionItem, error)
	GetAllItems(ctx context.Context, learnerID string) ([]models.SpacedRepetitionItem, error)
	UpdateItem(ctx context.Context, id string, ease float64, intervalDays, repetitions int, nextReview, lastReview time.Time) (*models.SpacedRepetitionItem, error)
	AddItem(ctx context.Context, learnerID, vocabID string) (*models.SpacedRepetitionItem, error)
}

// VocabStore is the read-only persistence contract for dictionary entries.
type VocabStore interface {
	GetByID(ctx context.Context, id string) (*models.VocabularyItem, error)
}

// DefaultSessionLimit caps a due session when the caller doesn't ask for a
// specific size.
const DefaultSessionLimit = 20

// Service coordinates the SM-2 engine with the backing store.
type Service struct {
	srs   SRSStore
	vocab VocabStore
	log   *logger.Logger
	now   func() time.Time
}

// NewService creates a review service.
func NewService(srs SRSStore, vocab VocabStore, log *logger.Logger) *Service {
	return &Service{
		srs:   srs,
		vocab: vocab,
		log:   log.With("service", "review"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetDueSession assembles a review session for the learner: up to limit due
// items (earliest due first) joined with their vocabulary entries. Items
// whose vocabulary record has disappeared are skipped and not counted.
func (s *Service) GetDueSession(ctx context.Context, learnerID string, limit int) (*models.ReviewSession, error) {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}

	dueItems, err := s.srs.GetDueItems(ctx, learnerID, limit)
	if err != nil {
		return nil, err
	}
	allItems, err := s.srs.GetAllItems(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	details := make([]models.ReviewItemDetail, 0, len(dueItems))
	for _, item := range dueItems {
		vocab, err := s.vocab.GetByID(ctx, item.VocabID)
		if err != nil {
			return nil, err
		}
		if vocab == nil {
			s.log.Warn("due item references missing vocabulary", "item_id", item.ID, "vocab_id", item.VocabID)
			continue
		}
		details = append(details, models.ReviewItemDetail{
			SRSItem:    item,
			Vocabulary: *vocab,
		})
	}

	return &models.ReviewSession{
		DueItems:   details,
		TotalDue:   len(details),
		TotalItems: len(allItems),
	}, nil
}

// SubmitReview applies one recall rating to an item. The SM-2 transition
// runs on the item's current state and the result is persisted as a single
// update, with last_review stamped to the submission time.
func (s *Service) SubmitReview(ctx context.Context, learnerID, itemID string, quality sm2.Quality) (*models.ReviewResult, error) {
	if !quality.Valid() {
		return nil, apperr.Validationf("quality must be between 0 and 5, got %d", quality)
	}

	item, err := s.srs.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFoundf("review item %s", itemID)
	}
	if item.LearnerID != learnerID {
		return nil, apperr.Unauthorizedf("review item %s belongs to another learner", itemID)
	}

	newEase, newInterval, newReps := sm2.Next(item.EaseFactor, item.IntervalDays, item.Repetitions, quality)

	now := s.now()
	nextReview := now.AddDate(0, 0, newInterval)

	updated, err := s.srs.UpdateItem(ctx, itemID, newEase, newInterval, newReps, nextReview, now)
	if err != nil {
		return nil, err
	}

	s.log.Debug("review processed",
		"item_id", itemID,
		"quality", int(quality),
		"interval_days", newInterval,
		"repetitions", newReps,
	)

	return &models.ReviewResult{
		ItemID:       updated.ID,
		NextReview:   updated.NextReview,
		IntervalDays: updated.IntervalDays,
		EaseFactor:   updated.EaseFactor,
		Repetitions:  updated.Repetitions,
	}, nil
}

// AddItem starts tracking a vocabulary entry for the learner. Adding an
// already-tracked entry returns the existing record with its schedule
// intact.
func (s *Service) AddItem(ctx context.Context, learnerID, vocabID string) (*models.ReviewResult, error) {
	if vocabID == "" {
		return nil, apperr.Validationf("vocab_id is required")
	}

	vocab, err := s.vocab.GetByID(ctx, vocabID)
	if err != nil {
		return nil, err
	}
	if vocab == nil {
		return nil, apperr.NotFoundf("vocabulary item %s", vocabID)
	}

	item, err := s.srs.AddItem(ctx, learnerID, vocabID)
	if err != nil {
		return nil, err
	}

	return &models.ReviewResult{
		ItemID:       item.ID,
		NextReview:   item.NextReview,
		IntervalDays: item.IntervalDays,
		EaseFactor:   item.EaseFactor,
		Repetitions:  item.Repetitions,
	}, nil
}
