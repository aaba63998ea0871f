package models

import "time"

// SkillCategory groups concepts in the prerequisite graph.
type SkillCategory string

const (
	CategoryTense         SkillCategory = "tense"
	CategoryMarker        SkillCategory = "marker"
	CategoryCase          SkillCategory = "case"
	CategoryPronunciation SkillCategory = "pronunciation"
	CategoryScript        SkillCategory = "script"
)

// SkillConcept is a node in the prerequisite graph. The prerequisite
// relation is acyclic by construction of the seed dataset.
type SkillConcept struct {
	ID            string        `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Category      SkillCategory `json:"category" db:"category"`
	Description   string        `json:"description" db:"description"`
	Prerequisites []string      `json:"prerequisites"` // concept IDs, catalog order
}

// LearnerSkill is one learner's mastery of one concept.
type LearnerSkill struct {
	ID            string     `json:"id" db:"id"`
	LearnerID     string     `json:"learner_id" db:"learner_id"`
	ConceptID     string     `json:"concept_id" db:"concept_id"`
	MasteryScore  float64    `json:"mastery_score" db:"mastery_score"` // clamped to [0,1]
	Attempts      int        `json:"attempts" db:"attempts"`
	LastPracticed *time.Time `json:"last_practiced" db:"last_practiced"`
}

// SkillGraph is the full concept catalog plus the learner's mastery rows.
type SkillGraph struct {
	Concepts  []SkillConcept `json:"concepts"`
	Masteries []LearnerSkill `json:"masteries"`
}

// NextConcept is one entry in a ranked recommendation list.
type NextConcept struct {
	Concept          SkillConcept `json:"concept"`
	Reason           string       `json:"reason"`
	PrerequisitesMet bool         `json:"prerequisites_met"`
}
