package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sourcing-trainer/models"
)

var sampleEntries = []models.LeaderboardEntry{
	{Rank: 1, PlayerID: "p1", Name: "Ava", Score: 178, AttemptCount: 2, AchievementCount: 3},
	{Rank: 2, PlayerID: "p2", Name: "Sam", Score: 40, AttemptCount: 1, AchievementCount: 1},
}

func TestWriteLeaderboardTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLeaderboard(&buf, "table", sampleEntries))
	out := buf.String()
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Ava")
	assert.Contains(t, out, "178")
}

func TestWriteLeaderboardYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLeaderboard(&buf, "yaml", sampleEntries))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Sam", got[1]["name"])
}

func TestWriteLeaderboardUnknownFormat(t *testing.T) {
	assert.Error(t, writeLeaderboard(&bytes.Buffer{}, "xml", sampleEntries))
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "leaderboard"}, names)
}

func TestLeaderboardCommandRejectsBadWindow(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"leaderboard", "--window", "yearly"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
