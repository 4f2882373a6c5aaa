package workers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sourcing-trainer/models"
	"sourcing-trainer/services"
	"sourcing-trainer/store"
)

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failOn  string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeUploader) Upload(_ context.Context, key string, body []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if key == f.failOn {
		return "", errors.New("bucket unavailable")
	}
	f.objects[key] = body
	f.types[key] = contentType
	return "https://cdn.test/" + key, nil
}

func seededLeaderboard(t *testing.T, now time.Time) *services.LeaderboardService {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryPlayerStore()
	for i, name := range []string{"ann", "ben"} {
		p := &models.Player{Name: name, NameKey: name, SessionToken: name}
		require.NoError(t, s.Create(ctx, p))
		p.Attempts = []models.Attempt{{GameID: "boolean-basics", Score: 40 + i, Timestamp: now.Add(-40 * 24 * time.Hour)}}
		p.Score = p.AttemptScoreSum()
		require.NoError(t, s.SaveProgress(ctx, p))
	}
	lb := services.NewLeaderboardService(s)
	lb.Now = func() time.Time { return now }
	return lb
}

func TestPublishAllUploadsEveryWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	up := newFakeUploader()
	pub := NewLeaderboardPublisher(seededLeaderboard(t, now), up, zap.NewNop())

	require.NoError(t, pub.PublishAll(context.Background()))
	require.Len(t, up.objects, len(models.Windows))

	var all models.LeaderboardSnapshot
	require.NoError(t, json.Unmarshal(up.objects["leaderboards/all.json"], &all))
	assert.Equal(t, models.WindowAllTime, all.Window)
	require.Len(t, all.Entries, 2)
	assert.Equal(t, "ben", all.Entries[0].Name)
	assert.Equal(t, "application/json", up.types["leaderboards/all.json"])

	var monthly models.LeaderboardSnapshot
	require.NoError(t, json.Unmarshal(up.objects["leaderboards/monthly.json"], &monthly))
	assert.Empty(t, monthly.Entries)
}

func TestPublishAllContinuesPastFailures(t *testing.T) {
	now := time.Now().UTC()
	up := newFakeUploader()
	up.failOn = SnapshotKey(models.WindowDaily)
	pub := NewLeaderboardPublisher(seededLeaderboard(t, now), up, zap.NewNop())

	err := pub.PublishAll(context.Background())
	assert.ErrorContains(t, err, "daily")
	assert.Len(t, up.objects, len(models.Windows)-1)
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "leaderboards/weekly.json", SnapshotKey(models.WindowWeekly))
}
