package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// initializeSchema creates the tables if they don't exist. The DDL sticks to
// types both postgres and sqlite accept; IDs are UUID strings generated by
// the application so neither driver needs a uuid extension.
func initializeSchema(db *sqlx.DB) error {
	statements := []struct {
		table string
		ddl   string
	}{
		{"learners", `
			CREATE TABLE IF NOT EXISTS learners (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				native_language TEXT NOT NULL DEFAULT '',
				target_goal TEXT NOT NULL DEFAULT '',
				daily_time_minutes INTEGER NOT NULL DEFAULT 15,
				proficiency_level INTEGER,
				streak_days INTEGER NOT NULL DEFAULT 0,
				total_practice_minutes INTEGER NOT NULL DEFAULT 0,
				telegram_chat_id BIGINT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"vocabulary_items", `
			CREATE TABLE IF NOT EXISTS vocabulary_items (
				id TEXT PRIMARY KEY,
				telugu_word TEXT NOT NULL,
				transliteration TEXT NOT NULL DEFAULT '',
				english_meaning TEXT NOT NULL,
				example_sentence TEXT NOT NULL DEFAULT '',
				domains TEXT NOT NULL DEFAULT '[]',
				difficulty_level INTEGER NOT NULL DEFAULT 1
			)
		`},
		{"spaced_repetition_items", `
			CREATE TABLE IF NOT EXISTS spaced_repetition_items (
				id TEXT PRIMARY KEY,
				learner_id TEXT NOT NULL,
				vocab_id TEXT NOT NULL,
				ease_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
				interval_days INTEGER NOT NULL DEFAULT 1,
				repetitions INTEGER NOT NULL DEFAULT 0,
				next_review TIMESTAMP NOT NULL,
				last_review TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(learner_id, vocab_id)
			)
		`},
		{"skill_concepts", `
			CREATE TABLE IF NOT EXISTS skill_concepts (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				category TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				prerequisites TEXT NOT NULL DEFAULT '[]',
				position INTEGER NOT NULL DEFAULT 0
			)
		`},
		{"learner_skills", `
			CREATE TABLE IF NOT EXISTS learner_skills (
				id TEXT PRIMARY KEY,
				learner_id TEXT NOT NULL,
				concept_id TEXT NOT NULL,
				mastery_score DOUBLE PRECISION NOT NULL DEFAULT 0,
				attempts INTEGER NOT NULL DEFAULT 0,
				last_practiced TIMESTAMP,
				UNIQUE(learner_id, concept_id)
			)
		`},
	}

	for _, s := range statements {
		if _, err := db.Exec(s.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.table, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_srs_due ON spaced_repetition_items (learner_id, next_review)`,
		`CREATE INDEX IF NOT EXISTS idx_learner_skills_learner ON learner_skills (learner_id)`,
	}
	for _, ddl := range indexes {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
