package models

import "time"

// Achievement is an unlocked badge on a player record.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// RuleKind selects the predicate an AchievementDefinition is checked with.
type RuleKind string

const (
	RuleAttempts      RuleKind = "attempts"       // len(attempts) >= Min
	RuleTotalScore    RuleKind = "total_score"    // score >= Min
	RuleBestScore     RuleKind = "best_score"     // any attempt scored >= Min
	RuleHighScores    RuleKind = "high_scores"    // attempts scored >= HighScoreThreshold, count >= Min
	RuleGameAttempted RuleKind = "game_attempted" // any attempt on GameID
	RuleGameScore     RuleKind = "game_score"     // attempt on GameID scored >= Min
	RuleSkillAttempts RuleKind = "skill_attempts" // attempts tagged Skill, count >= Min
	RuleDistinctGames RuleKind = "distinct_games" // distinct game ids >= Min
	RuleDailyStreak   RuleKind = "daily_streak"   // consecutive UTC days ending on the latest attempt >= Min
)

// HighScoreThreshold is the score an attempt needs to count towards high_scores rules.
const HighScoreThreshold = 85

// Rule is the declarative unlock condition of an achievement.
type Rule struct {
	Kind   RuleKind `yaml:"kind" json:"kind"`
	Min    int      `yaml:"min,omitempty" json:"min,omitempty"`
	GameID string   `yaml:"game_id,omitempty" json:"game_id,omitempty"`
	Skill  string   `yaml:"skill,omitempty" json:"skill,omitempty"`
}

// AchievementDefinition: static config (loaded from catalog/achievements.yaml)
type AchievementDefinition struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Category    string `yaml:"category" json:"category"`
	Rule        Rule   `yaml:"rule" json:"rule"`
}

// Unlock builds the player-side record for this definition.
func (d AchievementDefinition) Unlock(at time.Time) Achievement {
	return Achievement{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Category:    d.Category,
		UnlockedAt:  at,
	}
}
