package engine

import (
	"math"
	"strings"

	"github.com/yourusername/personalens-api/internal/model"
)

// SkillCluster is a named group of canonical skill keywords.
// The tables below are static configuration: loaded once, never mutated.
type SkillCluster struct {
	Name   string
	Skills []string
}

// skillClusters is the keyword universe for skill detection. Matching is a
// case-insensitive substring test, so a short keyword can match inside a
// longer word ("Java" matches "JavaScript"). That recall bias is a known
// tradeoff; changing it to word-boundary matching would change historical
// score semantics.
var skillClusters = []SkillCluster{
	{
		Name: "technical",
		Skills: []string{
			"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
			"React", "Angular", "Vue", "Next.js", "Node.js", "Django", "Flask",
			"Spring", "FastAPI", "Express", "Machine Learning", "Deep Learning",
			"AI", "TensorFlow", "PyTorch", "Scikit-learn",
		},
	},
	{
		Name: "soft_skills",
		Skills: []string{
			"Leadership", "Communication", "Teamwork", "Problem Solving",
			"Critical Thinking", "Creativity", "Adaptability", "Time Management",
			"Collaboration", "Presentation", "Negotiation", "Mentoring",
		},
	},
	{
		Name: "languages",
		Skills: []string{
			"English", "Spanish", "French", "German", "Chinese", "Japanese",
			"Arabic", "Portuguese", "Russian", "Italian",
		},
	},
	{
		Name: "tools",
		Skills: []string{
			"Git", "GitHub", "GitLab", "Docker", "Kubernetes", "Jenkins",
			"CI/CD", "AWS", "Azure", "GCP", "Terraform", "Ansible",
			"Jira", "Confluence", "Slack", "VS Code",
		},
	},
	{
		Name: "certifications",
		Skills: []string{
			"AWS Certified", "Azure Certified", "PMP", "Scrum Master",
			"Google Cloud Certified", "CISSP", "CKA", "CKAD",
			"CompTIA", "Oracle Certified",
		},
	},
}

// SkillAnalysis is the result of one skill scan
type SkillAnalysis struct {
	Clusters       map[string]int
	DetectedSkills []model.DetectedSkill
	TotalScore     float64
}

// AnalyzeSkills scans CV text for the configured skill keywords and groups
// hits by cluster. Per-cluster scores are integer percentages of the
// cluster's keyword list; TotalScore is the percentage of the whole keyword
// universe found, rounded to two decimals. Empty text gives all zeros.
// Pure function of (text, static tables).
func AnalyzeSkills(text string) SkillAnalysis {
	return analyzeSkills(skillClusters, text)
}

func analyzeSkills(clusters []SkillCluster, text string) SkillAnalysis {
	textLower := strings.ToLower(text)

	result := SkillAnalysis{
		Clusters:       make(map[string]int, len(clusters)),
		DetectedSkills: []model.DetectedSkill{},
	}

	totalSkills := 0
	foundSkills := 0

	for _, cluster := range clusters {
		clusterFound := 0

		for _, skill := range cluster.Skills {
			totalSkills++
			if strings.Contains(textLower, strings.ToLower(skill)) {
				clusterFound++
				foundSkills++
				result.DetectedSkills = append(result.DetectedSkills, model.DetectedSkill{
					Name:     skill,
					Category: cluster.Name,
				})
			}
		}

		// Integer percentage per cluster; an empty cluster scores 0
		score := 0
		if len(cluster.Skills) > 0 {
			score = int(math.Round(float64(clusterFound) / float64(len(cluster.Skills)) * 100))
		}
		result.Clusters[cluster.Name] = score
	}

	if totalSkills > 0 {
		result.TotalScore = round2(float64(foundSkills) / float64(totalSkills) * 100)
	}

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
