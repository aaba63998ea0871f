package skill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/logger"
	"github.com/telugutor/backend/internal/mastery"
	"github.com/telugutor/backend/pkg/models"
)

type fakeSkillStore struct {
	concepts []models.SkillConcept
	skills   map[string]*models.LearnerSkill // keyed learnerID+"/"+conceptID
}

func newFakeSkillStore(concepts ...models.SkillConcept) *fakeSkillStore {
	return &fakeSkillStore{
		concepts: concepts,
		skills:   make(map[string]*models.LearnerSkill),
	}
}

func (f *fakeSkillStore) GetAllConcepts(_ context.Context) ([]models.SkillConcept, error) {
	return append([]models.SkillConcept(nil), f.concepts...), nil
}

func (f *fakeSkillStore) GetConceptByID(_ context.Context, id string) (*models.SkillConcept, error) {
	for _, c := range f.concepts {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSkillStore) GetLearnerSkills(_ context.Context, learnerID string) ([]models.LearnerSkill, error) {
	var out []models.LearnerSkill
	for _, s := range f.skills {
		if s.LearnerID == learnerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSkillStore) GetLearnerSkill(_ context.Context, learnerID, conceptID string) (*models.LearnerSkill, error) {
	s, ok := f.skills[learnerID+"/"+conceptID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSkillStore) UpsertLearnerSkill(_ context.Context, learnerID, conceptID string, masteryScore float64, attempts int) (*models.LearnerSkill, error) {
	key := learnerID + "/" + conceptID
	f.skills[key] = &models.LearnerSkill{
		ID:           key,
		LearnerID:    learnerID,
		ConceptID:    conceptID,
		MasteryScore: masteryScore,
		Attempts:     attempts,
	}
	copied := *f.skills[key]
	return &copied, nil
}

func (f *fakeSkillStore) GetMasteredConcepts(_ context.Context, learnerID string, threshold float64) ([]string, error) {
	var ids []string
	for _, s := range f.skills {
		if s.LearnerID == learnerID && s.MasteryScore >= threshold {
			ids = append(ids, s.ConceptID)
		}
	}
	return ids, nil
}

func (f *fakeSkillStore) setMastery(learnerID, conceptID string, score float64, attempts int) {
	key := learnerID + "/" + conceptID
	f.skills[key] = &models.LearnerSkill{
		ID:           key,
		LearnerID:    learnerID,
		ConceptID:    conceptID,
		MasteryScore: score,
		Attempts:     attempts,
	}
}

func concept(id, name string, prereqs ...string) models.SkillConcept {
	return models.SkillConcept{
		ID:            id,
		Name:          name,
		Category:      models.CategoryTense,
		Prerequisites: prereqs,
	}
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return NewService(store, log)
}

func TestGetGraphReturnsFullCatalog(t *testing.T) {
	store := newFakeSkillStore(
		concept("c1", "Present tense"),
		concept("c2", "Past tense", "c1"),
	)
	store.setMastery("learner-1", "c1", 0.9, 4)

	svc := newTestService(t, store)
	graph, err := svc.GetGraph(context.Background(), "learner-1")
	require.NoError(t, err)

	assert.Len(t, graph.Concepts, 2, "concepts are never filtered by mastery")
	assert.Len(t, graph.Masteries, 1)
}

func TestUpdateMasteryFirstAttemptDefaults(t *testing.T) {
	store := newFakeSkillStore(concept("c1", "Present tense"))
	svc := newTestService(t, store)

	updated, err := svc.UpdateMastery(context.Background(), "learner-1", "c1", true, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, updated.MasteryScore, 1e-9)
	assert.Equal(t, 1, updated.Attempts)
}

func TestUpdateMasteryAccumulates(t *testing.T) {
	store := newFakeSkillStore(concept("c1", "Present tense"))
	svc := newTestService(t, store)

	_, err := svc.UpdateMastery(context.Background(), "learner-1", "c1", true, 3)
	require.NoError(t, err)
	updated, err := svc.UpdateMastery(context.Background(), "learner-1", "c1", false, 3)
	require.NoError(t, err)

	assert.InDelta(t, 0.05, updated.MasteryScore, 1e-9)
	assert.Equal(t, 2, updated.Attempts)
}

func TestUpdateMasteryStaysBounded(t *testing.T) {
	store := newFakeSkillStore(concept("c1", "Present tense"))
	svc := newTestService(t, store)

	for i := 0; i < 25; i++ {
		updated, err := svc.UpdateMastery(context.Background(), "learner-1", "c1", true, 5)
		require.NoError(t, err)
		assert.LessOrEqual(t, updated.MasteryScore, 1.0)
	}
	skill, _ := store.GetLearnerSkill(context.Background(), "learner-1", "c1")
	assert.Equal(t, 1.0, skill.MasteryScore)
	assert.Equal(t, 25, skill.Attempts)
}

func TestUpdateMasteryValidation(t *testing.T) {
	store := newFakeSkillStore(concept("c1", "Present tense"))
	svc := newTestService(t, store)

	_, err := svc.UpdateMastery(context.Background(), "learner-1", "c1", true, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.UpdateMastery(context.Background(), "learner-1", "c1", true, 6)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.UpdateMastery(context.Background(), "learner-1", "missing", true, 3)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetNextConceptsExcludesMastered(t *testing.T) {
	store := newFakeSkillStore(
		concept("c1", "Script basics"),
		concept("c2", "Present tense"),
	)
	store.setMastery("learner-1", "c1", mastery.Threshold, 5)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 10)
	require.NoError(t, err)

	require.Len(t, next, 1)
	assert.Equal(t, "c2", next[0].Concept.ID)
}

func TestGetNextConceptsGating(t *testing.T) {
	store := newFakeSkillStore(
		concept("locked", "Past tense", "base"),
		concept("open", "Present tense"),
		concept("base", "Script basics"),
	)
	// Partial progress on the locked concept, none on the open one: the
	// prerequisite gate must still outrank progress.
	store.setMastery("learner-1", "locked", 0.6, 3)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 10)
	require.NoError(t, err)

	require.Len(t, next, 3)
	assert.True(t, next[0].PrerequisitesMet)
	assert.True(t, next[1].PrerequisitesMet)
	assert.Equal(t, "locked", next[2].Concept.ID)
	assert.False(t, next[2].PrerequisitesMet)
}

func TestGetNextConceptsProgressBreaksTies(t *testing.T) {
	store := newFakeSkillStore(
		concept("c1", "Present tense"),
		concept("c2", "Past tense"),
	)
	store.setMastery("learner-1", "c2", 0.4, 2)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 10)
	require.NoError(t, err)

	require.Len(t, next, 2)
	assert.Equal(t, "c2", next[0].Concept.ID, "partial progress ranks higher")
}

func TestGetNextConceptsCatalogOrderTiebreak(t *testing.T) {
	store := newFakeSkillStore(
		concept("c1", "Script basics"),
		concept("c2", "Present tense"),
		concept("c3", "Past tense"),
	)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 10)
	require.NoError(t, err)

	require.Len(t, next, 3)
	assert.Equal(t, "c1", next[0].Concept.ID)
	assert.Equal(t, "c2", next[1].Concept.ID)
	assert.Equal(t, "c3", next[2].Concept.ID)
}

func TestGetNextConceptsLimit(t *testing.T) {
	store := newFakeSkillStore(
		concept("c1", "A"),
		concept("c2", "B"),
		concept("c3", "C"),
		concept("c4", "D"),
	)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 2)
	require.NoError(t, err)
	assert.Len(t, next, 2)

	next, err = svc.GetNextConcepts(context.Background(), "learner-1", 0)
	require.NoError(t, err)
	assert.Len(t, next, 3, "zero falls back to the default limit")
}

func TestGetNextConceptsReasons(t *testing.T) {
	store := newFakeSkillStore(
		concept("base1", "Script basics"),
		concept("base2", "Vowel signs"),
		concept("base3", "Consonant clusters"),
		concept("locked", "Sandhi rules", "base1", "base2", "base3"),
		concept("fresh", "Present tense"),
		concept("started", "Past tense"),
		concept("nearly", "Future tense"),
	)
	store.setMastery("learner-1", "started", 0.3, 2)
	store.setMastery("learner-1", "nearly", 0.7, 6)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 10)
	require.NoError(t, err)

	reasons := make(map[string]string)
	met := make(map[string]bool)
	for _, n := range next {
		reasons[n.Concept.ID] = n.Reason
		met[n.Concept.ID] = n.PrerequisitesMet
	}

	assert.Equal(t, "New concept ready to learn", reasons["fresh"])
	assert.Equal(t, "Continue practicing (30% mastery)", reasons["started"])
	assert.Equal(t, "Almost there! (70% mastery)", reasons["nearly"])
	// Only the first two unmet prerequisites are cited, by name.
	assert.Equal(t, "Complete prerequisites first: Script basics, Vowel signs", reasons["locked"])
	assert.False(t, met["locked"])
}

func TestGetNextConceptsUnmetNeverMarkedMet(t *testing.T) {
	store := newFakeSkillStore(
		concept("base", "Script basics"),
		concept("child", "Past tense", "base"),
	)
	// Just under the threshold: prerequisite is not mastered.
	store.setMastery("learner-1", "base", 0.79, 3)

	svc := newTestService(t, store)
	next, err := svc.GetNextConcepts(context.Background(), "learner-1", 10)
	require.NoError(t, err)

	for _, n := range next {
		if n.Concept.ID == "child" {
			assert.False(t, n.PrerequisitesMet)
		}
	}
}

func TestCheckPrerequisites(t *testing.T) {
	store := newFakeSkillStore(
		concept("base", "Script basics"),
		concept("child", "Past tense", "base"),
	)
	svc := newTestService(t, store)
	ctx := context.Background()

	met, err := svc.CheckPrerequisites(ctx, "learner-1", "unknown")
	require.NoError(t, err)
	assert.False(t, met, "unknown concept fails closed")

	met, err = svc.CheckPrerequisites(ctx, "learner-1", "base")
	require.NoError(t, err)
	assert.True(t, met, "no prerequisites is vacuously true")

	met, err = svc.CheckPrerequisites(ctx, "learner-1", "child")
	require.NoError(t, err)
	assert.False(t, met)

	store.setMastery("learner-1", "base", mastery.Threshold, 5)
	met, err = svc.CheckPrerequisites(ctx, "learner-1", "child")
	require.NoError(t, err)
	assert.True(t, met)
}

func TestGetConcept(t *testing.T) {
	store := newFakeSkillStore(concept("c1", "Present tense"))
	svc := newTestService(t, store)

	got, err := svc.GetConcept(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Present tense", got.Name)

	_, err = svc.GetConcept(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
