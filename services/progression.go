package services

import "math"

// BasePointsPerLevel scales the level curve: level n → n+1 needs floor(100 * n^1.2) points.
const BasePointsPerLevel = 100

// pointsForNextLevel returns the points required to go from level to level+1.
func pointsForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(float64(BasePointsPerLevel) * math.Pow(float64(level), 1.2))
}

// RankThresholds: minimum level per rank.
var RankThresholds = []struct {
	Name     string
	MinLevel int
}{
	{"Intern", 1},
	{"Sourcer", 5},
	{"Senior Sourcer", 10},
	{"Talent Scout", 25},
	{"Headhunter", 50},
}

// Progress is the level view of a player's total score.
type Progress struct {
	Level              int    `json:"level"`
	Rank               string `json:"rank"`
	PointsIntoLevel    int    `json:"points_into_level"`
	PointsForNextLevel int    `json:"points_for_next_level"`
}

// ProgressFor derives level and rank from score. Negative scores count as zero.
func ProgressFor(score int) Progress {
	if score < 0 {
		score = 0
	}
	level := 1
	remaining := score
	for {
		need := pointsForNextLevel(level)
		if remaining < need {
			return Progress{
				Level:              level,
				Rank:               rankFor(level),
				PointsIntoLevel:    remaining,
				PointsForNextLevel: need,
			}
		}
		remaining -= need
		level++
	}
}

func rankFor(level int) string {
	for i := len(RankThresholds) - 1; i >= 0; i-- {
		if level >= RankThresholds[i].MinLevel {
			return RankThresholds[i].Name
		}
	}
	return RankThresholds[0].Name
}
