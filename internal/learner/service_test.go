package learner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/logger"
	"github.com/telugutor/backend/pkg/models"
)

type fakeProfileStore struct {
	profiles      map[string]*models.LearnerProfile
	stats         map[string]*models.LearnerStats
	addedMinutes  int
	streakUpdates []int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: make(map[string]*models.LearnerProfile),
		stats:    make(map[string]*models.LearnerStats),
	}
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*models.LearnerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) UpdateStreak(_ context.Context, id string, streakDays int) error {
	f.profiles[id].StreakDays = streakDays
	f.streakUpdates = append(f.streakUpdates, streakDays)
	return nil
}

func (f *fakeProfileStore) AddPracticeTime(_ context.Context, id string, minutes int) error {
	f.profiles[id].TotalPracticeMinutes += minutes
	f.addedMinutes += minutes
	return nil
}

func (f *fakeProfileStore) GetStats(_ context.Context, id string, _ float64) (*models.LearnerStats, error) {
	s, ok := f.stats[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

type fakeCache struct {
	values  map[string]string
	setErr  error
	lastTTL time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) CacheGet(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) CacheSet(_ context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	f.lastTTL = ttl
	return nil
}

func newTestService(t *testing.T, store *fakeProfileStore, cache *fakeCache, now time.Time) *Service {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	svc := NewService(store, cache, log)
	svc.now = func() time.Time { return now }
	return svc
}

func seedLearner(store *fakeProfileStore, id string, streak int) {
	store.profiles[id] = &models.LearnerProfile{
		ID:         id,
		Email:      id + "@example.com",
		StreakDays: streak,
	}
}

func TestGetProfile(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 3)
	svc := newTestService(t, store, newFakeCache(), time.Now())

	profile, err := svc.GetProfile(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 3, profile.StreakDays)

	_, err = svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetStats(t *testing.T) {
	store := newFakeProfileStore()
	store.stats["learner-1"] = &models.LearnerStats{
		StreakDays:       5,
		VocabularyCount:  42,
		ConceptsMastered: 3,
		TotalConcepts:    12,
	}
	svc := newTestService(t, store, newFakeCache(), time.Now())

	stats, err := svc.GetStats(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 42, stats.VocabularyCount)

	_, err = svc.GetStats(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateStreakFirstPractice(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 0)
	cache := newFakeCache()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, cache, now)

	streak, err := svc.UpdateStreak(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, "2025-03-10", cache.values["last_practice:learner-1"])
	assert.Equal(t, lastPracticeTTL, cache.lastTTL)
}

func TestUpdateStreakSameDayUnchanged(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 4)
	cache := newFakeCache()
	cache.values["last_practice:learner-1"] = "2025-03-10"
	now := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)
	svc := newTestService(t, store, cache, now)

	streak, err := svc.UpdateStreak(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 4, streak)
	assert.Empty(t, store.streakUpdates, "same-day practice must not touch the store")
}

func TestUpdateStreakConsecutiveDayIncrements(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 4)
	cache := newFakeCache()
	cache.values["last_practice:learner-1"] = "2025-03-09"
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, cache, now)

	streak, err := svc.UpdateStreak(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 5, streak)
	assert.Equal(t, 5, store.profiles["learner-1"].StreakDays)
}

func TestUpdateStreakGapResets(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 10)
	cache := newFakeCache()
	cache.values["last_practice:learner-1"] = "2025-03-05"
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, cache, now)

	streak, err := svc.UpdateStreak(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestUpdateStreakUnknownLearner(t *testing.T) {
	svc := newTestService(t, newFakeProfileStore(), newFakeCache(), time.Now())
	_, err := svc.UpdateStreak(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateStreakCacheWriteFailureIsNonFatal(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 0)
	cache := newFakeCache()
	cache.setErr = context.DeadlineExceeded
	svc := newTestService(t, store, cache, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	streak, err := svc.UpdateStreak(context.Background(), "learner-1")
	require.NoError(t, err, "a lost marker must not fail the request")
	assert.Equal(t, 1, streak)
}

func TestRecordPracticeTime(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 0)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, store, newFakeCache(), now)

	streak, err := svc.RecordPracticeTime(context.Background(), "learner-1", 25)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 25, store.addedMinutes)
	assert.Equal(t, 25, store.profiles["learner-1"].TotalPracticeMinutes)
}

func TestRecordPracticeTimeValidation(t *testing.T) {
	store := newFakeProfileStore()
	seedLearner(store, "learner-1", 0)
	svc := newTestService(t, store, newFakeCache(), time.Now())

	_, err := svc.RecordPracticeTime(context.Background(), "learner-1", 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.RecordPracticeTime(context.Background(), "learner-1", -5)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Zero(t, store.addedMinutes)
}
