package models

import (
	"strconv"
	"strings"
)

// MatchResult is the decoded body of a successful scoring call. The simple
// service variant fills only Score, MatchedSkills and MissingSkills; the
// richer variant adds preferred/critical tiers, ordered suggestions and the
// sub-score breakdown.
type MatchResult struct {
	Score            float64         `json:"score"`
	MatchedSkills    []string        `json:"matched_skills,omitempty"`
	MissingSkills    []string        `json:"missing_skills,omitempty"`
	MatchedPreferred []string        `json:"matched_preferred,omitempty"`
	MissingCritical  []string        `json:"missing_critical,omitempty"`
	Suggestions      []string        `json:"suggestions,omitempty"`
	Breakdown        *ScoreBreakdown `json:"breakdown,omitempty"`
}

type ScoreBreakdown struct {
	RequiredMatch   float64 `json:"required_match"`
	PreferredMatch  float64 `json:"preferred_match"`
	CategoryMatches float64 `json:"category_matches"`
}

type ScoreTier string

const (
	TierExcellent ScoreTier = "excellent"
	TierGood      ScoreTier = "good"
	TierFair      ScoreTier = "fair"
	TierWeak      ScoreTier = "weak"
)

// TierFor buckets a 0-100 score for rendering. Scores of 80 and above are
// the top tier.
func TierFor(score float64) ScoreTier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierFair
	default:
		return TierWeak
	}
}

// Tier returns the rendering tier for the result's score.
func (r *MatchResult) Tier() ScoreTier {
	return TierFor(r.Score)
}

// FormatScore prints a score with one decimal, dropping a trailing .0 so
// whole numbers render bare.
func FormatScore(score float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(score, 'f', 1, 64), ".0")
}
