package engine

import "strings"

// Trait is a named personality signal: a keyword set plus the per-keyword
// scaling factor applied to its occurrence count.
type Trait struct {
	Name     string
	Factor   int
	Keywords []string
}

// personalityTraits holds the trait keyword tables. Static configuration,
// same lifetime rules as the skill clusters.
var personalityTraits = []Trait{
	{
		Name:   "leadership",
		Factor: 12,
		Keywords: []string{
			"led", "managed", "mentored", "coordinated", "owned", "directed",
			"supervised", "guided", "orchestrated", "spearheaded", "championed",
		},
	},
	{
		Name:   "communication",
		Factor: 10,
		Keywords: []string{
			"presented", "communicated", "explained", "articulated", "conveyed",
			"demonstrated", "trained", "taught", "spoke", "wrote", "documented",
		},
	},
	{
		Name:   "analytical",
		Factor: 10,
		Keywords: []string{
			"analyzed", "evaluated", "assessed", "investigated", "researched",
			"studied", "examined", "measured", "calculated", "optimized",
		},
	},
	{
		Name:   "creativity",
		Factor: 10,
		Keywords: []string{
			"designed", "created", "innovated", "developed", "invented",
			"conceived", "pioneered", "built", "crafted", "engineered",
		},
	},
	{
		Name:   "teamwork",
		Factor: 10,
		Keywords: []string{
			"collaborated", "team", "worked with", "partnered", "cooperated",
			"cross-functional", "group", "pair", "together", "joint",
		},
	},
}

// AnalyzePersonality scores professional-writing signals in CV text.
// Each trait keyword counts at most once regardless of how often it appears
// (presence, not frequency); the trait score is min(count*factor, 100).
// This is a writing-style heuristic, not psychological profiling.
// Pure function of (text, static tables).
func AnalyzePersonality(text string) map[string]int {
	return analyzePersonality(personalityTraits, text)
}

func analyzePersonality(traits []Trait, text string) map[string]int {
	textLower := strings.ToLower(text)

	scores := make(map[string]int, len(traits))
	for _, trait := range traits {
		count := 0
		for _, keyword := range trait.Keywords {
			if strings.Contains(textLower, strings.ToLower(keyword)) {
				count++
			}
		}

		score := count * trait.Factor
		if score > 100 {
			score = 100
		}
		scores[trait.Name] = score
	}

	return scores
}
