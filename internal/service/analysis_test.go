package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/personalens-api/internal/engine"
	"github.com/yourusername/personalens-api/internal/model"
)

type mockAnalysisStore struct {
	inserted   []*model.Analysis
	insertErr  error
	records    map[string]*model.Analysis
	history    []model.AnalysisSummary
	historyErr error
	lastLimit  int
}

func newMockAnalysisStore() *mockAnalysisStore {
	return &mockAnalysisStore{records: make(map[string]*model.Analysis)}
}

func (m *mockAnalysisStore) Insert(_ context.Context, a *model.Analysis) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, a)
	m.records[a.AnalysisID] = a
	return nil
}

func (m *mockAnalysisStore) FindByID(_ context.Context, analysisID string, userID uuid.UUID) (*model.Analysis, error) {
	a, ok := m.records[analysisID]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	return a, nil
}

func (m *mockAnalysisStore) History(_ context.Context, userID uuid.UUID, limit int) ([]model.AnalysisSummary, error) {
	m.lastLimit = limit
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	if len(m.history) > limit {
		return m.history[:limit], nil
	}
	return m.history, nil
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		_, err := svc.Analyze(context.Background(), text, "cv.pdf", uuid.New())
		assert.ErrorIs(t, err, ErrNoText)
	}

	// Nothing persisted on failure
	assert.Empty(t, store.inserted)
}

func TestAnalyzeWeightedTotal(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)

	// No skill keywords in this text: skill total 0.0.
	// Personality: leadership 12, creativity 10 ("built"), teamwork 10
	// ("team") -> average 6.4, total 0*0.7 + 6.4*0.3 = 1.92.
	text := "Led the team and built a new platform"

	result, err := svc.Analyze(context.Background(), text, "cv.pdf", uuid.New())
	require.NoError(t, err)

	assert.InDelta(t, 1.92, result.TotalScore, 1e-9)
	assert.Equal(t, 12, result.Personality["leadership"])
	assert.Equal(t, 10, result.Personality["creativity"])
	assert.Equal(t, 10, result.Personality["teamwork"])
	assert.Empty(t, result.DetectedSkills)
}

func TestAnalyzeHappyPath(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)
	userID := uuid.New()

	text := "Python engineer. Led a team, built Docker pipelines, analyzed metrics."

	result, err := svc.Analyze(context.Background(), text, "jane_doe_cv.pdf", userID)
	require.NoError(t, err)

	// Identifier and timestamp are set at orchestration time
	_, parseErr := uuid.Parse(result.AnalysisID)
	assert.NoError(t, parseErr)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, "jane_doe_cv.pdf", result.Filename)
	assert.False(t, result.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, result.CreatedAt.Location())

	// Engine outputs pass through unchanged
	skills := engine.AnalyzeSkills(text)
	personality := engine.AnalyzePersonality(text)
	assert.Equal(t, skills.Clusters, result.Clusters)
	assert.Equal(t, skills.DetectedSkills, result.DetectedSkills)
	assert.Equal(t, personality, result.Personality)

	assert.GreaterOrEqual(t, result.TotalScore, 0.0)
	assert.LessOrEqual(t, result.TotalScore, 100.0)

	// Exactly one write-through; stored value equals the returned one
	require.Len(t, store.inserted, 1)
	assert.Equal(t, result, store.inserted[0])
}

func TestAnalyzeSurfacesPersistenceError(t *testing.T) {
	store := newMockAnalysisStore()
	store.insertErr = errors.New("duplicate key value violates unique constraint")
	svc := NewAnalysisService(store)

	_, err := svc.Analyze(context.Background(), "Led a team", "cv.pdf", uuid.New())

	require.Error(t, err)
	assert.ErrorContains(t, err, "storing analysis")
}

func TestGetByIDRoundTrip(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)
	userID := uuid.New()

	created, err := svc.Analyze(context.Background(), "Led a team, Python, Docker", "cv.pdf", userID)
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), created.AnalysisID, userID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestGetByIDOwnerMismatchReadsAsNotFound(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)
	owner := uuid.New()

	created, err := svc.Analyze(context.Background(), "Led a team", "cv.pdf", owner)
	require.NoError(t, err)

	// Another user cannot tell the record apart from a missing one
	_, err = svc.GetByID(context.Background(), created.AnalysisID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(context.Background(), "no-such-id", owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryDefaultLimit(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)

	_, err := svc.History(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, store.lastLimit)

	_, err = svc.History(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastLimit)
}

func TestHistoryTotalAndTruncation(t *testing.T) {
	now := time.Now().UTC()
	store := newMockAnalysisStore()
	// Store returns newest-first
	store.history = []model.AnalysisSummary{
		{AnalysisID: "a3", Filename: "three.pdf", TotalScore: 30, CreatedAt: now},
		{AnalysisID: "a2", Filename: "two.pdf", TotalScore: 20, CreatedAt: now.Add(-time.Hour)},
		{AnalysisID: "a1", Filename: "one.pdf", TotalScore: 10, CreatedAt: now.Add(-2 * time.Hour)},
	}
	svc := NewAnalysisService(store)

	history, err := svc.History(context.Background(), uuid.New(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, history.Total)
	require.Len(t, history.Analyses, 2)
	assert.Equal(t, "a3", history.Analyses[0].AnalysisID)
	assert.Equal(t, "a2", history.Analyses[1].AnalysisID)
}

func TestHistoryEmptyIsNotNil(t *testing.T) {
	store := newMockAnalysisStore()
	svc := NewAnalysisService(store)

	history, err := svc.History(context.Background(), uuid.New(), 10)
	require.NoError(t, err)

	assert.Equal(t, 0, history.Total)
	assert.NotNil(t, history.Analyses)
}
