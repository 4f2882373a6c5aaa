package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcing-trainer/models"
)

func TestMemoryPlayerStore_ClonesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlayerStore()
	p := newPlayer("ava")
	require.NoError(t, s.Create(ctx, p))

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Attempts = append(got.Attempts, models.Attempt{Score: 50})
	got.Score = 50

	again, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Attempts)
	assert.Zero(t, again.Score)

	require.NoError(t, s.SaveProgress(ctx, got))
	saved, err := s.GetBySessionToken(ctx, p.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, 50, saved.Score)
	assert.Len(t, saved.Attempts, 1)
}

func TestMemoryPlayerStore_Conflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlayerStore()
	require.NoError(t, s.Create(ctx, newPlayer("ava")))
	assert.ErrorIs(t, s.Create(ctx, newPlayer("ava")), ErrConflict)
	_, err := s.GetByNameKey(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
