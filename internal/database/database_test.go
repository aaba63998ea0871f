package database

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedLearnerRow(t *testing.T, db *sqlx.DB, id, email string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO learners (id, email) VALUES (?, ?)", id, email)
	require.NoError(t, err)
}

func seedVocabRow(t *testing.T, db *sqlx.DB, id, word, meaning string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO vocabulary_items (id, telugu_word, english_meaning, domains, difficulty_level)
		VALUES (?, ?, ?, '["greetings"]', 2)
	`, id, word, meaning)
	require.NoError(t, err)
}

func seedConceptRow(t *testing.T, db *sqlx.DB, id, name string, position int, prereqJSON string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO skill_concepts (id, name, category, prerequisites, position)
		VALUES (?, ?, 'tense', ?, ?)
	`, id, name, prereqJSON, position)
	require.NoError(t, err)
}

func seedSRSRow(t *testing.T, db *sqlx.DB, id, learnerID, vocabID string, nextReview time.Time) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO spaced_repetition_items (id, learner_id, vocab_id, next_review)
		VALUES (?, ?, ?, ?)
	`, id, learnerID, vocabID, nextReview)
	require.NoError(t, err)
}
