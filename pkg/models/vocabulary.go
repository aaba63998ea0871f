package models

// VocabularyItem is a Telugu dictionary entry. Rows are owned by the
// content-management process; the API only ever reads them.
type VocabularyItem struct {
	ID              string   `json:"id" db:"id"`
	TeluguWord      string   `json:"telugu_word" db:"telugu_word"`
	Transliteration string   `json:"transliteration" db:"transliteration"`
	EnglishMeaning  string   `json:"english_meaning" db:"english_meaning"`
	ExampleSentence string   `json:"example_sentence" db:"example_sentence"`
	Domains         []string `json:"domains"`
	DifficultyLevel int      `json:"difficulty_level" db:"difficulty_level"` // 1-5 scale
}
