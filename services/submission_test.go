package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcing-trainer/models"
)

func samplePlayer() *models.Player {
	return &models.Player{
		ID:    "p-1",
		Name:  "Ava",
		Score: 120,
		Attempts: []models.Attempt{
			{GameID: "boolean-basics", Score: 70, Timestamp: testNow.Add(-2 * time.Hour)},
			{GameID: "cold-outreach", Score: 50, Timestamp: testNow.Add(-time.Hour)},
		},
		Achievements: []models.Achievement{{ID: "first-steps", UnlockedAt: testNow.Add(-2 * time.Hour)}},
	}
}

func TestSubmissionRollbackRestoresSnapshot(t *testing.T) {
	r := NewRoster()
	before := samplePlayer()
	sub := r.Begin(before)
	assert.Equal(t, SubmissionPending, sub.State())

	next := before.Clone()
	next.Attempts = append(next.Attempts, models.Attempt{GameID: "xray-search", Score: 90, Timestamp: testNow})
	next.Score += 90
	require.NoError(t, sub.Apply(next))

	live, _ := r.Get(before.ID)
	assert.Equal(t, 210, live.Score)

	// Mutating the caller's copy after Begin must not leak into the snapshot.
	before.Attempts[0].Score = 0
	before.Score = -1

	require.NoError(t, sub.Rollback())
	assert.Equal(t, SubmissionRolledBack, sub.State())

	live, _ = r.Get(samplePlayer().ID)
	if diff := cmp.Diff(samplePlayer(), live); diff != "" {
		t.Errorf("rolled back player mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionCommit(t *testing.T) {
	r := NewRoster()
	sub := r.Begin(samplePlayer())

	persisted := samplePlayer()
	persisted.Score = 200
	require.NoError(t, sub.Commit(persisted))
	assert.Equal(t, SubmissionCommitted, sub.State())

	live, ok := r.Get("p-1")
	require.True(t, ok)
	assert.Equal(t, 200, live.Score)
}

func TestSubmissionSettledOnce(t *testing.T) {
	r := NewRoster()
	sub := r.Begin(samplePlayer())
	require.NoError(t, sub.Commit(samplePlayer()))

	assert.ErrorIs(t, sub.Rollback(), ErrSubmissionSettled)
	assert.ErrorIs(t, sub.Apply(samplePlayer()), ErrSubmissionSettled)
	assert.ErrorIs(t, sub.Commit(samplePlayer()), ErrSubmissionSettled)
	assert.Equal(t, SubmissionCommitted, sub.State())
}

func TestSubmissionStateString(t *testing.T) {
	assert.Equal(t, "pending", SubmissionPending.String())
	assert.Equal(t, "committed", SubmissionCommitted.String())
	assert.Equal(t, "rolled_back", SubmissionRolledBack.String())
	assert.Equal(t, "SubmissionState(9)", SubmissionState(9).String())
}

func TestRosterReturnsCopies(t *testing.T) {
	r := NewRoster()
	r.Put(samplePlayer())

	got, _ := r.Get("p-1")
	got.Attempts[0].Score = 0
	got.Achievements = nil

	again, _ := r.Get("p-1")
	assert.Equal(t, 70, again.Attempts[0].Score)
	assert.Len(t, again.Achievements, 1)

	_, ok := r.Get("missing")
	assert.False(t, ok)
}
