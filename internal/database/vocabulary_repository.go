package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/telugutor/backend/pkg/models"
)

const vocabColumns = "id, telugu_word, transliteration, english_meaning, example_sentence, domains, difficulty_level"

// VocabularyRepository reads dictionary entries. Vocabulary rows are owned
// by the content pipeline, so there are no write methods here.
type VocabularyRepository struct {
	db *sqlx.DB
}

// NewVocabularyRepository creates a new repository instance
func NewVocabularyRepository(db *sqlx.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// GetByID returns a vocabulary item, or nil when the id is unknown.
func (r *VocabularyRepository) GetByID(ctx context.Context, id string) (*models.VocabularyItem, error) {
	query := r.db.Rebind("SELECT " + vocabColumns + " FROM vocabulary_items WHERE id = ?")
	item, err := scanVocabularyItem(r.db.QueryRowxContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary item: %w", err)
	}
	return item, nil
}

// GetAll returns the full dictionary.
func (r *VocabularyRepository) GetAll(ctx context.Context) ([]models.VocabularyItem, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT "+vocabColumns+" FROM vocabulary_items ORDER BY telugu_word")
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary items: %w", err)
	}
	defer rows.Close()

	var items []models.VocabularyItem
	for rows.Next() {
		item, err := scanVocabularyItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVocabularyItem(row rowScanner) (*models.VocabularyItem, error) {
	var item models.VocabularyItem
	var domainsJSON string
	err := row.Scan(
		&item.ID,
		&item.TeluguWord,
		&item.Transliteration,
		&item.EnglishMeaning,
		&item.ExampleSentence,
		&domainsJSON,
		&item.DifficultyLevel,
	)
	if err != nil {
		return nil, err
	}
	if domainsJSON != "" {
		if err := json.Unmarshal([]byte(domainsJSON), &item.Domains); err != nil {
			return nil, fmt.Errorf("failed to parse domains: %w", err)
		}
	}
	return &item, nil
}
