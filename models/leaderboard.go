package models

import (
	"fmt"
	"time"
)

// LeaderboardWindow scopes which attempts count towards a ranking.
type LeaderboardWindow string

const (
	WindowAllTime LeaderboardWindow = "all"
	WindowDaily   LeaderboardWindow = "daily"
	WindowWeekly  LeaderboardWindow = "weekly"
	WindowMonthly LeaderboardWindow = "monthly"
)

// Windows lists every supported window, all-time first.
var Windows = []LeaderboardWindow{WindowAllTime, WindowDaily, WindowWeekly, WindowMonthly}

// Duration is the lookback of a window; zero for all-time.
func (w LeaderboardWindow) Duration() time.Duration {
	switch w {
	case WindowDaily:
		return 24 * time.Hour
	case WindowWeekly:
		return 7 * 24 * time.Hour
	case WindowMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// ParseWindow maps a query value to a window. Empty means all-time.
func ParseWindow(s string) (LeaderboardWindow, error) {
	switch LeaderboardWindow(s) {
	case "", WindowAllTime:
		return WindowAllTime, nil
	case WindowDaily, WindowWeekly, WindowMonthly:
		return LeaderboardWindow(s), nil
	}
	return "", fmt.Errorf("unknown leaderboard window %q", s)
}

// LeaderboardEntry is one ranked row of a projected leaderboard.
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	PlayerID         string `json:"player_id"`
	Name             string `json:"name"`
	Score            int    `json:"score"`
	AttemptCount     int    `json:"attempt_count"`
	AchievementCount int    `json:"achievement_count"`
}

// LeaderboardSnapshot is the published form of a leaderboard.
type LeaderboardSnapshot struct {
	Window      LeaderboardWindow  `json:"window"`
	GeneratedAt time.Time          `json:"generated_at"`
	Entries     []LeaderboardEntry `json:"entries"`
}
