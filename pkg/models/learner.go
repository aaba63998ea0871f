package models

import "time"

// LearnerProfile describes a registered learner. Credentials live with the
// auth layer, not here.
type LearnerProfile struct {
	ID                   string    `json:"id" db:"id"`
	Email                string    `json:"email" db:"email"`
	NativeLanguage       string    `json:"native_language" db:"native_language"`
	TargetGoal           string    `json:"target_goal" db:"target_goal"`
	DailyTimeMinutes     int       `json:"daily_time_minutes" db:"daily_time_minutes"`
	ProficiencyLevel     *int      `json:"proficiency_level" db:"proficiency_level"` // nil until placement
	StreakDays           int       `json:"streak_days" db:"streak_days"`
	TotalPracticeMinutes int       `json:"total_practice_minutes" db:"total_practice_minutes"`
	TelegramChatID       *int64    `json:"telegram_chat_id,omitempty" db:"telegram_chat_id"` // set when the learner links Telegram reminders
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// LearnerStats is the dashboard summary for a learner.
type LearnerStats struct {
	StreakDays           int `json:"streak_days" db:"streak_days"`
	TotalPracticeMinutes int `json:"total_practice_minutes" db:"total_practice_minutes"`
	VocabularyCount      int `json:"vocabulary_count" db:"vocabulary_count"`
	ConceptsMastered     int `json:"concepts_mastered" db:"concepts_mastered"`
	TotalConcepts        int `json:"total_concepts" db:"total_concepts"`
}
