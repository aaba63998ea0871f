package models

import "time"

// SpacedRepetitionItem tracks one learner's review schedule for a single
// vocabulary entry using the SM-2 algorithm state.
type SpacedRepetitionItem struct {
	ID           string     `json:"id" db:"id"`
	LearnerID    string     `json:"learner_id" db:"learner_id"`
	VocabID      string     `json:"vocab_id" db:"vocab_id"`
	EaseFactor   float64    `json:"ease_factor" db:"ease_factor"`     // SM-2 ease factor, never below 1.3
	IntervalDays int        `json:"interval_days" db:"interval_days"` // days until next review
	Repetitions  int        `json:"repetitions" db:"repetitions"`     // consecutive successful recalls
	NextReview   time.Time  `json:"next_review" db:"next_review"`
	LastReview   *time.Time `json:"last_review" db:"last_review"` // nil until first review
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ReviewItemDetail pairs a scheduled item with its vocabulary entry.
type ReviewItemDetail struct {
	SRSItem    SpacedRepetitionItem `json:"srs_item"`
	Vocabulary VocabularyItem       `json:"vocabulary"`
}

// ReviewSession is the payload returned for a due-items request.
type ReviewSession struct {
	DueItems   []ReviewItemDetail `json:"due_items"`
	TotalDue   int                `json:"total_due"`
	TotalItems int                `json:"total_items"`
}

// ReviewResult reports the updated schedule after a review submission
// or a newly added item.
type ReviewResult struct {
	ItemID       string    `json:"item_id"`
	NextReview   time.Time `json:"next_review"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	Repetitions  int       `json:"repetitions"`
}
