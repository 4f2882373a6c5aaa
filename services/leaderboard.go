package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sourcing-trainer/models"
	"sourcing-trainer/store"
)

// Project ranks players for window. players must already be in store order; ties keep
// that order. Windowed views count only attempts in [now-window, now] and leave out
// players who scored nothing in the window.
func Project(players []models.Player, window models.LeaderboardWindow, now time.Time) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(players))
	lookback := window.Duration()
	cutoff := now.Add(-lookback)

	for i := range players {
		p := &players[i]
		entry := models.LeaderboardEntry{
			PlayerID:         p.ID,
			Name:             p.Name,
			AchievementCount: len(p.Achievements),
		}
		if lookback == 0 {
			entry.Score = p.Score
			entry.AttemptCount = len(p.Attempts)
			entries = append(entries, entry)
			continue
		}
		for _, a := range p.Attempts {
			if a.Timestamp.Before(cutoff) || a.Timestamp.After(now) {
				continue
			}
			entry.Score += a.Score
			entry.AttemptCount++
		}
		if entry.Score == 0 {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// LeaderboardService recomputes leaderboards from the player store on every call.
type LeaderboardService struct {
	Players store.PlayerStore
	Now     func() time.Time
}

func NewLeaderboardService(players store.PlayerStore) *LeaderboardService {
	return &LeaderboardService{Players: players}
}

func (s *LeaderboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Leaderboard returns at most limit entries; limit <= 0 returns all of them.
func (s *LeaderboardService) Leaderboard(ctx context.Context, window models.LeaderboardWindow, limit int) ([]models.LeaderboardEntry, error) {
	snap, err := s.Snapshot(ctx, window)
	if err != nil {
		return nil, err
	}
	entries := snap.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *LeaderboardService) Snapshot(ctx context.Context, window models.LeaderboardWindow) (*models.LeaderboardSnapshot, error) {
	players, err := s.Players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %v", ErrPersistence, err)
	}
	now := s.now()
	return &models.LeaderboardSnapshot{
		Window:      window,
		GeneratedAt: now,
		Entries:     Project(players, window, now),
	}, nil
}
