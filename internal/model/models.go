package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a PersonaLens account
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DetectedSkill is a single skill keyword found in the CV text,
// tagged with the cluster it belongs to
type DetectedSkill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Analysis is one persisted CV analysis run.
// All scores lie in [0,100]. TotalScore is derived from the skill total
// and the personality average; it is never set directly.
type Analysis struct {
	AnalysisID     string          `json:"analysisId"`
	UserID         uuid.UUID       `json:"userId"`
	Filename       string          `json:"filename"`
	TotalScore     float64         `json:"totalScore"`
	Clusters       map[string]int  `json:"clusters"`
	DetectedSkills []DetectedSkill `json:"detectedSkills"`
	Personality    map[string]int  `json:"personality"`
	CreatedAt      time.Time       `json:"timestamp"`
}

// AnalysisSummary is the history list projection: identifier, filename,
// total score and timestamp only
type AnalysisSummary struct {
	AnalysisID string    `json:"analysisId"`
	Filename   string    `json:"filename"`
	TotalScore float64   `json:"totalScore"`
	CreatedAt  time.Time `json:"timestamp"`
}

// AnalysisHistory wraps the history list with its total count
type AnalysisHistory struct {
	Total    int               `json:"total"`
	Analyses []AnalysisSummary `json:"analyses"`
}
