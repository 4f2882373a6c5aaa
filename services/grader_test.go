package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAIGraderWithoutKey(t *testing.T) {
	g, err := NewGenAIGrader(context.Background(), GenAIConfig{})
	require.NoError(t, err)

	_, err = g.Grade(context.Background(), "grade me")
	assert.ErrorIs(t, err, ErrGraderNotConfigured)
}

func TestDefaultGenAIConfig(t *testing.T) {
	cfg := DefaultGenAIConfig("key")
	assert.Equal(t, "key", cfg.APIKey)
	assert.NotEmpty(t, cfg.Model)
	assert.Positive(t, cfg.MaxOutputTokens)
}

func TestGraderFunc(t *testing.T) {
	var got string
	g := GraderFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "SCORE: 1", nil
	})
	out, err := g.Grade(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "SCORE: 1", out)
	assert.Equal(t, "p", got)
}
