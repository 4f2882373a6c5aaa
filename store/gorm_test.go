package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sourcing-trainer/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), Config())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func newPlayer(name string) *models.Player {
	return &models.Player{
		Name:         name,
		NameKey:      name,
		SessionToken: uuid.NewString(),
	}
}

func TestGormPlayerStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewGormPlayerStore(newTestDB(t))

	p := newPlayer("ava")
	require.NoError(t, s.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	byToken, err := s.GetBySessionToken(ctx, p.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byToken.ID)

	byID, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ava", byID.Name)

	byName, err := s.GetByNameKey(ctx, "ava")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)

	_, err = s.GetBySessionToken(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormPlayerStore_DuplicateNameConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewGormPlayerStore(newTestDB(t))

	require.NoError(t, s.Create(ctx, newPlayer("ava")))
	err := s.Create(ctx, newPlayer("ava"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGormPlayerStore_SaveProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewGormPlayerStore(newTestDB(t))

	p := newPlayer("ava")
	require.NoError(t, s.Create(ctx, p))

	ts := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	p.Attempts = append(p.Attempts, models.Attempt{
		GameID: "boolean-basics", GameTitle: "Boolean Basics", Submission: "(a OR b)",
		Score: 78, Skill: "boolean", Timestamp: ts, Feedback: "SCORE: 78",
	})
	p.Score = 78
	p.Achievements = append(p.Achievements, models.Achievement{ID: "first-steps", Name: "First Steps", UnlockedAt: ts})
	require.NoError(t, s.SaveProgress(ctx, p))

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 78, got.Score)
	require.Len(t, got.Attempts, 1)
	assert.Equal(t, "boolean-basics", got.Attempts[0].GameID)
	assert.True(t, got.Attempts[0].Timestamp.Equal(ts))
	require.Len(t, got.Achievements, 1)
	assert.Equal(t, "first-steps", got.Achievements[0].ID)
}

func TestGormPlayerStore_SaveProgressUnknownPlayer(t *testing.T) {
	s := NewGormPlayerStore(newTestDB(t))
	err := s.SaveProgress(context.Background(), &models.Player{ID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormPlayerStore_ListIsStable(t *testing.T) {
	ctx := context.Background()
	s := NewGormPlayerStore(newTestDB(t))
	for _, name := range []string{"ava", "ben", "cy"} {
		require.NoError(t, s.Create(ctx, newPlayer(name)))
	}
	players, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "ava", players[0].Name)
	assert.Equal(t, "cy", players[2].Name)
}

func TestGormPlayerStore_SetPinHash(t *testing.T) {
	ctx := context.Background()
	s := NewGormPlayerStore(newTestDB(t))
	p := newPlayer("ava")
	require.NoError(t, s.Create(ctx, p))

	require.NoError(t, s.SetPinHash(ctx, p.ID, "hash"))
	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PinHash)
}

func TestGormOverrideStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := NewGormOverrideStore(newTestDB(t))

	title := "Boolean 101"
	require.NoError(t, s.UpsertOverride(ctx, &models.GameOverride{GameID: "boolean-basics", Title: &title}))

	inactive := false
	title2 := "Boolean 102"
	require.NoError(t, s.UpsertOverride(ctx, &models.GameOverride{GameID: "boolean-basics", Title: &title2, Active: &inactive}))

	out, err := s.ListOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Boolean 102", *out[0].Title)
	require.NotNil(t, out[0].Active)
	assert.False(t, *out[0].Active)
}
