package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcing-trainer/models"
	"sourcing-trainer/store"
)

func player(id string, attempts ...models.Attempt) models.Player {
	p := models.Player{ID: id, Name: id, Attempts: attempts}
	p.Score = p.AttemptScoreSum()
	return p
}

func at(ago time.Duration, score int) models.Attempt {
	return models.Attempt{GameID: "boolean-basics", Score: score, Timestamp: testNow.Add(-ago)}
}

func TestProjectAllTimeIsStable(t *testing.T) {
	players := []models.Player{
		player("ann", at(time.Hour, 50)),
		player("ben", at(time.Hour, 80)),
		player("cat", at(time.Hour, 50)),
		player("dan"),
	}
	got := Project(players, models.WindowAllTime, testNow)
	require.Len(t, got, 4)

	var order []string
	for i, e := range got {
		assert.Equal(t, i+1, e.Rank)
		order = append(order, e.PlayerID)
	}
	assert.Equal(t, []string{"ben", "ann", "cat", "dan"}, order)
	assert.Equal(t, 0, got[3].Score)
}

func TestProjectWindowExcludesOldAttempts(t *testing.T) {
	day := 24 * time.Hour
	players := []models.Player{
		player("old", at(40*day, 100)),
		player("mixed", at(40*day, 100), at(2*day, 30)),
		player("recent", at(time.Hour, 20)),
	}

	got := Project(players, models.WindowMonthly, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, "mixed", got[0].PlayerID)
	assert.Equal(t, 30, got[0].Score)
	assert.Equal(t, 1, got[0].AttemptCount)
	assert.Equal(t, "recent", got[1].PlayerID)

	got = Project(players, models.WindowDaily, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "recent", got[0].PlayerID)
	assert.Equal(t, 1, got[0].Rank)

	got = Project(players, models.WindowAllTime, testNow)
	require.Len(t, got, 3)
	assert.Equal(t, 130, got[0].Score)
}

func TestProjectIgnoresFutureAttempts(t *testing.T) {
	players := []models.Player{player("skew", at(-time.Hour, 40))}
	assert.Empty(t, Project(players, models.WindowWeekly, testNow))
}

func TestLeaderboardServiceLimit(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryPlayerStore()
	for i, name := range []string{"ann", "ben", "cat"} {
		p := &models.Player{Name: name, NameKey: name, SessionToken: name + "-token"}
		require.NoError(t, s.Create(ctx, p))
		p.Attempts = []models.Attempt{at(time.Hour, 10*(i+1))}
		p.Score = p.AttemptScoreSum()
		require.NoError(t, s.SaveProgress(ctx, p))
	}
	svc := NewLeaderboardService(s)
	svc.Now = func() time.Time { return testNow }

	top, err := svc.Leaderboard(ctx, models.WindowWeekly, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "cat", top[0].Name)
	assert.Equal(t, "ben", top[1].Name)

	snap, err := svc.Snapshot(ctx, models.WindowAllTime)
	require.NoError(t, err)
	assert.Equal(t, testNow, snap.GeneratedAt)
	assert.Len(t, snap.Entries, 3)
}
