package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"sourcing-trainer/models"
)

// AchievementEngine diffs the achievements a player already holds against the ones
// their current state satisfies.
type AchievementEngine struct {
	defs []models.AchievementDefinition
}

// LoadAchievements parses an achievements YAML document.
func LoadAchievements(data []byte) ([]models.AchievementDefinition, error) {
	var doc struct {
		Achievements []models.AchievementDefinition `yaml:"achievements"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	return doc.Achievements, nil
}

// NewAchievementEngine validates defs (unique, non-empty ids) and keeps their order.
func NewAchievementEngine(defs []models.AchievementDefinition) (*AchievementEngine, error) {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("achievement %q has no id", d.Name)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate achievement id %q", d.ID)
		}
		seen[d.ID] = true
	}
	return &AchievementEngine{defs: defs}, nil
}

// Definitions returns the catalog in order.
func (e *AchievementEngine) Definitions() []models.AchievementDefinition {
	return append([]models.AchievementDefinition(nil), e.defs...)
}

// CheckNewAchievements returns every definition not yet unlocked by p whose rule now
// holds, in catalog order. Rules that cannot be evaluated are skipped and reported in err;
// the returned definitions are still valid in that case.
func (e *AchievementEngine) CheckNewAchievements(p *models.Player) ([]models.AchievementDefinition, error) {
	var (
		out  []models.AchievementDefinition
		errs []error
	)
	for _, d := range e.defs {
		if p.HasAchievement(d.ID) {
			continue
		}
		ok, err := EvaluateRule(d.Rule, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("achievement %s: %w", d.ID, err))
			continue
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, errors.Join(errs...)
}

// Unlock converts defs into achievement records stamped with at.
func Unlock(defs []models.AchievementDefinition, at time.Time) []models.Achievement {
	out := make([]models.Achievement, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Unlock(at))
	}
	return out
}

// EvaluateRule is the single interpreter for achievement rules. It reads the whole
// player state every time and never mutates it.
func EvaluateRule(r models.Rule, p *models.Player) (bool, error) {
	attempts := p.Attempts
	switch r.Kind {
	case models.RuleAttempts:
		return len(attempts) >= r.Min, nil
	case models.RuleTotalScore:
		return p.Score >= r.Min, nil
	case models.RuleBestScore:
		for _, a := range attempts {
			if a.Score >= r.Min {
				return true, nil
			}
		}
		return false, nil
	case models.RuleHighScores:
		n := 0
		for _, a := range attempts {
			if a.Score >= models.HighScoreThreshold {
				n++
			}
		}
		return n >= r.Min, nil
	case models.RuleGameAttempted:
		if r.GameID == "" {
			return false, errors.New("game_attempted rule needs game_id")
		}
		for _, a := range attempts {
			if a.GameID == r.GameID {
				return true, nil
			}
		}
		return false, nil
	case models.RuleGameScore:
		if r.GameID == "" {
			return false, errors.New("game_score rule needs game_id")
		}
		for _, a := range attempts {
			if a.GameID == r.GameID && a.Score >= r.Min {
				return true, nil
			}
		}
		return false, nil
	case models.RuleSkillAttempts:
		n := 0
		for _, a := range attempts {
			if a.Skill == r.Skill {
				n++
			}
		}
		return n >= r.Min, nil
	case models.RuleDistinctGames:
		games := make(map[string]struct{})
		for _, a := range attempts {
			games[a.GameID] = struct{}{}
		}
		return len(games) >= r.Min, nil
	case models.RuleDailyStreak:
		return dailyStreak(attempts) >= r.Min, nil
	}
	return false, fmt.Errorf("unknown rule kind %q", r.Kind)
}

// dailyStreak counts consecutive UTC days with at least one attempt, ending on the day
// of the latest attempt.
func dailyStreak(attempts []models.Attempt) int {
	if len(attempts) == 0 {
		return 0
	}
	days := make(map[int64]bool, len(attempts))
	latest := int64(math.MinInt64)
	for _, a := range attempts {
		d := utcDay(a.Timestamp)
		days[d] = true
		if d > latest {
			latest = d
		}
	}
	streak := 0
	for d := latest; days[d]; d-- {
		streak++
	}
	return streak
}

func utcDay(t time.Time) int64 {
	const secondsPerDay = 24 * 60 * 60
	s := t.Unix()
	d := s / secondsPerDay
	if s%secondsPerDay < 0 {
		d--
	}
	return d
}
