package domain

import "math"

// RiskLevel grades a score.
type RiskLevel string

const (
	LevelLow    RiskLevel = "Low"
	LevelMedium RiskLevel = "Medium"
	LevelHigh   RiskLevel = "High"
)

// LevelForScore derives the level from a score via the fixed thresholds.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score < 40:
		return LevelLow
	case score < 70:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// Clamp bounds a score to [0,100].
func Clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// CategoryScore is one exposure dimension. Level is always LevelForScore(Score).
type CategoryScore struct {
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	Level       RiskLevel `json:"level"`
	Weight      float64   `json:"weight"`
	Signals     []string  `json:"signals"`
	Description string    `json:"description"`
}

// OverallScore combines weighted category scores into the final 0-100 score.
func OverallScore(categories []CategoryScore) int {
	sum := 0.0
	for _, c := range categories {
		sum += c.Score * c.Weight
	}
	return int(math.Round(Clamp(sum)))
}
