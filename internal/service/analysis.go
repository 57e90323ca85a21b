package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/personalens-api/internal/engine"
	"github.com/yourusername/personalens-api/internal/model"
)

var (
	// ErrNoText means the extractor produced no usable text; nothing is persisted
	ErrNoText = errors.New("no text could be extracted from the document")
	// ErrNotFound covers both a missing analysis and one owned by another
	// user — the two cases are indistinguishable on purpose
	ErrNotFound = errors.New("analysis not found")
)

// Weighting between the skill total and the personality average
const (
	skillWeight       = 0.7
	personalityWeight = 0.3
)

// DefaultHistoryLimit bounds history queries when the caller gives no limit
const DefaultHistoryLimit = 50

// AnalysisStore is the persistence contract the orchestrator writes through.
// Owner filtering happens inside the store query itself.
type AnalysisStore interface {
	Insert(ctx context.Context, a *model.Analysis) error
	FindByID(ctx context.Context, analysisID string, userID uuid.UUID) (*model.Analysis, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]model.AnalysisSummary, error)
}

// AnalysisService orchestrates one CV analysis run: text gate, both scoring
// engines, weighted total, identifier and timestamp, single write-through.
type AnalysisService struct {
	store AnalysisStore
}

func NewAnalysisService(store AnalysisStore) *AnalysisService {
	return &AnalysisService{store: store}
}

// Analyze scores extracted CV text and persists the result. The two engines
// are independent pure functions; a persistence failure is surfaced to the
// caller, not retried.
func (s *AnalysisService) Analyze(ctx context.Context, text, filename string, userID uuid.UUID) (*model.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	skills := engine.AnalyzeSkills(text)
	personality := engine.AnalyzePersonality(text)

	personalityAvg := 0.0
	if len(personality) > 0 {
		sum := 0
		for _, v := range personality {
			sum += v
		}
		personalityAvg = float64(sum) / float64(len(personality))
	}

	totalScore := math.Round((skills.TotalScore*skillWeight+personalityAvg*personalityWeight)*100) / 100

	analysis := &model.Analysis{
		AnalysisID:     uuid.NewString(),
		UserID:         userID,
		Filename:       filename,
		TotalScore:     totalScore,
		Clusters:       skills.Clusters,
		DetectedSkills: skills.DetectedSkills,
		Personality:    personality,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, analysis); err != nil {
		return nil, fmt.Errorf("storing analysis: %w", err)
	}

	log.Info().
		Str("analysisId", analysis.AnalysisID).
		Str("userId", userID.String()).
		Float64("totalScore", totalScore).
		Int("detectedSkills", len(skills.DetectedSkills)).
		Msg("CV analysis complete")

	return analysis, nil
}

// GetByID fetches one analysis; the owner match is part of the store query,
// so a record belonging to another user reads as not found.
func (s *AnalysisService) GetByID(ctx context.Context, analysisID string, userID uuid.UUID) (*model.Analysis, error) {
	analysis, err := s.store.FindByID(ctx, analysisID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching analysis: %w", err)
	}
	if analysis == nil {
		return nil, ErrNotFound
	}
	return analysis, nil
}

// History returns the user's analyses newest-first, projected to summaries
func (s *AnalysisService) History(ctx context.Context, userID uuid.UUID, limit int) (*model.AnalysisHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	items, err := s.store.History(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	if items == nil {
		items = []model.AnalysisSummary{}
	}

	return &model.AnalysisHistory{Total: len(items), Analyses: items}, nil
}
