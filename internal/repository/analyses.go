package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/personalens-api/internal/model"
)

type AnalysisRepo struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

// Insert writes one analysis record. analysis_id is the primary key, so a
// duplicate identifier is rejected by the database.
func (r *AnalysisRepo) Insert(ctx context.Context, a *model.Analysis) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analyses (analysis_id, user_id, filename, total_score,
		                      clusters, detected_skills, personality, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.AnalysisID, a.UserID, a.Filename, a.TotalScore,
		a.Clusters, a.DetectedSkills, a.Personality, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}
	return nil
}

// FindByID returns one analysis, or nil when no record matches the
// (analysis_id, user_id) pair. Requiring the owner in the same query keeps
// another user's record indistinguishable from a missing one.
func (r *AnalysisRepo) FindByID(ctx context.Context, analysisID string, userID uuid.UUID) (*model.Analysis, error) {
	var a model.Analysis
	err := r.pool.QueryRow(ctx, `
		SELECT analysis_id, user_id, filename, total_score,
		       clusters, detected_skills, personality, created_at
		FROM analyses
		WHERE analysis_id = $1 AND user_id = $2
	`, analysisID, userID).Scan(
		&a.AnalysisID, &a.UserID, &a.Filename, &a.TotalScore,
		&a.Clusters, &a.DetectedSkills, &a.Personality, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding analysis: %w", err)
	}
	return &a, nil
}

// History returns the user's analyses newest-first, limited, projected to
// the summary columns
func (r *AnalysisRepo) History(ctx context.Context, userID uuid.UUID, limit int) ([]model.AnalysisSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT analysis_id, filename, total_score, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var items []model.AnalysisSummary
	for rows.Next() {
		var item model.AnalysisSummary
		if err := rows.Scan(&item.AnalysisID, &item.Filename, &item.TotalScore, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
